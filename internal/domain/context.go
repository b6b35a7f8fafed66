package domain

import "time"

// CommandContext carries the per-invocation state a command needs: who asked,
// when "now" is, and the filter/report settings chosen for this pass. The
// core components hold no state between calls; everything session-like lives
// here and is supplied by the caller.
type CommandContext struct {
	Operator  string
	Timestamp time.Time

	Filter FilterSettings
	Report ReportSettings
}

func NewCommandContext(operator string) *CommandContext {
	return &CommandContext{
		Operator:  operator,
		Timestamp: time.Now(),
		Filter: FilterSettings{
			Period:  PeriodAll,
			SortKey: SortPublishDateDesc,
		},
	}
}

// Now returns the context timestamp, falling back to the wall clock when the
// context was built without one. Commands derive every relative window from
// this single instant so one invocation sees one consistent "now".
func (c *CommandContext) Now() time.Time {
	if c == nil || c.Timestamp.IsZero() {
		return time.Now()
	}
	return c.Timestamp
}
