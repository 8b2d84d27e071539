package team

import "fmt"

// Team is a club known to the pipeline, keyed by the provider's team ID.
// LeagueID tracks the most recently seen competition for the club; a
// club appearing in several competitions keeps only the latest one.
type Team struct {
	ID        int64
	Name      string
	ShortName string
	Crest     string
	LeagueID  int64
}

func (t Team) Validate() error {
	if t.ID <= 0 {
		return fmt.Errorf("team id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}
