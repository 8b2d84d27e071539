package footballdata

// Payload shapes for the competition matches endpoint. Only the fields
// the ingestion pipeline consumes are declared.

type matchesEnvelope struct {
	Competition competitionItem `json:"competition"`
	Matches     []matchItem     `json:"matches"`
}

type competitionItem struct {
	ID     int64    `json:"id"`
	Name   string   `json:"name"`
	Code   string   `json:"code"`
	Emblem string   `json:"emblem"`
	Area   areaItem `json:"area"`
}

type areaItem struct {
	Name string `json:"name"`
}

type matchItem struct {
	ID       int64     `json:"id"`
	UTCDate  string    `json:"utcDate"`
	Status   string    `json:"status"`
	Matchday int       `json:"matchday"`
	Area     areaItem  `json:"area"`
	HomeTeam teamItem  `json:"homeTeam"`
	AwayTeam teamItem  `json:"awayTeam"`
	Score    scoreItem `json:"score"`
}

type teamItem struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
	TLA       string `json:"tla"`
	Crest     string `json:"crest"`
}

type scoreItem struct {
	Winner   string        `json:"winner"`
	FullTime scorePairItem `json:"fullTime"`
	HalfTime scorePairItem `json:"halfTime"`
}

type scorePairItem struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}
