package league

import "fmt"

// League is a competition tracked by the prediction pipeline. The ID is
// the provider's competition identifier and the code its short handle,
// for example "PL" for the Premier League.
type League struct {
	ID      int64
	Code    string
	Name    string
	Country string
	Emblem  string
}

func (l League) Validate() error {
	if l.ID <= 0 {
		return fmt.Errorf("league id is required")
	}
	if l.Code == "" {
		return fmt.Errorf("league code is required")
	}
	if l.Name == "" {
		return fmt.Errorf("league name is required")
	}

	return nil
}
