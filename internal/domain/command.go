package domain

type CommandType string

const (
	CommandFetch     CommandType = "fetch"
	CommandDashboard CommandType = "dashboard"
	CommandGoals     CommandType = "goals"
	CommandReport    CommandType = "report"
	CommandExport    CommandType = "export"
	CommandHelp      CommandType = "help"
	CommandUnknown   CommandType = "unknown"
)

func (c CommandType) String() string {
	return string(c)
}

func (c CommandType) IsValid() bool {
	switch c {
	case CommandFetch, CommandDashboard, CommandGoals,
		CommandReport, CommandExport, CommandHelp:
		return true
	default:
		return false
	}
}
