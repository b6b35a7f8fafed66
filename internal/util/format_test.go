package util

import "testing"

func TestFormatComma(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{12345, "12,345"},
		{1234567, "1,234,567"},
		{-1234567, "-1,234,567"},
	}

	for _, tt := range tests {
		if got := FormatComma(tt.in); got != tt.want {
			t.Fatalf("FormatComma(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(92.456, 1); got != "92.5" {
		t.Fatalf("expected 92.5, got %q", got)
	}
	if got := FormatPercent(90, 0); got != "90" {
		t.Fatalf("expected 90, got %q", got)
	}
}

func TestTruncateStringByRunes(t *testing.T) {
	if got := TruncateString("こんにちは世界", 5); got != "こんにちは..." {
		t.Fatalf("expected rune-based truncation, got %q", got)
	}
	if got := TruncateString("short", 10); got != "short" {
		t.Fatalf("short strings must pass through, got %q", got)
	}
}

func TestContainsFold(t *testing.T) {
	if !ContainsFold("Minecraft 建築", "minecraft") {
		t.Fatalf("expected case-insensitive match")
	}
	if ContainsFold("雑談", "apex") {
		t.Fatalf("unexpected match")
	}
}
