package match

import "strings"

const (
	StatusNotStarted = "NS"
	StatusFinished   = "FT"
	StatusLive       = "LIVE"
	StatusHalfTime   = "HT"
	StatusPostponed  = "PST"
	StatusSuspended  = "SUS"
	StatusCancelled  = "CANC"
	StatusAwarded    = "AWD"
)

// MapProviderStatus converts a provider match status into the internal
// status code. Unknown provider values pass through unchanged so new
// provider states remain visible in stored rows instead of being
// silently collapsed.
func MapProviderStatus(providerStatus string) string {
	status := strings.ToUpper(strings.TrimSpace(providerStatus))
	switch status {
	case "FINISHED":
		return StatusFinished
	case "SCHEDULED", "TIMED":
		return StatusNotStarted
	case "IN_PLAY":
		return StatusLive
	case "PAUSED":
		return StatusHalfTime
	case "POSTPONED":
		return StatusPostponed
	case "SUSPENDED":
		return StatusSuspended
	case "CANCELED":
		return StatusCancelled
	case "AWARDED":
		return StatusAwarded
	default:
		return status
	}
}

// IsTerminalStatus reports whether a status describes a match that will
// not produce further score changes.
func IsTerminalStatus(status string) bool {
	switch status {
	case StatusFinished, StatusCancelled, StatusAwarded:
		return true
	default:
		return false
	}
}
