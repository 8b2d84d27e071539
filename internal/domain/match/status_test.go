package match

import "testing"

func TestMapProviderStatus(t *testing.T) {
	t.Parallel()

	cases := []struct {
		provider string
		want     string
	}{
		{"FINISHED", StatusFinished},
		{"SCHEDULED", StatusNotStarted},
		{"TIMED", StatusNotStarted},
		{"IN_PLAY", StatusLive},
		{"PAUSED", StatusHalfTime},
		{"POSTPONED", StatusPostponed},
		{"SUSPENDED", StatusSuspended},
		{"CANCELED", StatusCancelled},
		{"AWARDED", StatusAwarded},
	}
	for _, tc := range cases {
		if got := MapProviderStatus(tc.provider); got != tc.want {
			t.Fatalf("MapProviderStatus(%q) = %q, want %q", tc.provider, got, tc.want)
		}
	}
}

func TestMapProviderStatus_UnknownPassesThrough(t *testing.T) {
	t.Parallel()

	if got := MapProviderStatus("EXTRA_TIME"); got != "EXTRA_TIME" {
		t.Fatalf("unexpected mapped status: %q", got)
	}
	if got := MapProviderStatus("  timed "); got != StatusNotStarted {
		t.Fatalf("expected trim and uppercase before mapping, got %q", got)
	}
}

func TestIsTerminalStatus(t *testing.T) {
	t.Parallel()

	for _, status := range []string{StatusFinished, StatusCancelled, StatusAwarded} {
		if !IsTerminalStatus(status) {
			t.Fatalf("expected %q to be terminal", status)
		}
	}
	for _, status := range []string{StatusNotStarted, StatusLive, StatusHalfTime, StatusPostponed, StatusSuspended} {
		if IsTerminalStatus(status) {
			t.Fatalf("expected %q to be non terminal", status)
		}
	}
}
