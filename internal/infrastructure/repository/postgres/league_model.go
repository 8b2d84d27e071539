package postgres

import "time"

type leagueTableModel struct {
	ID        int64     `db:"id"`
	Code      string    `db:"code"`
	Name      string    `db:"name"`
	Country   string    `db:"country"`
	Emblem    string    `db:"emblem"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type leagueInsertModel struct {
	ID      int64  `db:"id"`
	Code    string `db:"code"`
	Name    string `db:"name"`
	Country string `db:"country"`
	Emblem  string `db:"emblem"`
}
