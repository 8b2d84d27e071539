package querybuilder

import (
	"testing"
	"time"
)

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("id", "status").
		From("matches").
		Where(Eq("status", "NS"), IsNull("home_win_prob")).
		OrderBy("match_date ASC").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id, status FROM matches WHERE status = $1 AND home_win_prob IS NULL ORDER BY match_date ASC LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != "NS" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilderComparisons(t *testing.T) {
	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	query, args, err := Select("id").
		From("matches").
		Where(Gte("match_date", from), Lt("home_score", 5)).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id FROM matches WHERE match_date >= $1 AND home_score < $2"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("teams").
		Columns("id", "name").
		Values(int64(57), "Arsenal FC").
		Suffix("ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO teams (id, name) VALUES ($1, $2) ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != int64(57) || args[1] != "Arsenal FC" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModel(t *testing.T) {
	type leagueModel struct {
		ID      int64  `db:"id"`
		Name    string `db:"name"`
		Country string `db:"country"`
		Scratch string `db:"-"`
	}

	query, args, err := InsertModel("leagues", leagueModel{ID: 2021, Name: "Premier League", Country: "England"}, "ON CONFLICT (id) DO NOTHING")
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO leagues (id, name, country) VALUES ($1, $2, $3) ON CONFLICT (id) DO NOTHING"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("matches").
		Set("home_odd", 1.85).
		SetExpr("updated_at", "NOW()").
		Where(Eq("id", int64(11)), EqLiteral("status", "NS")).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE matches SET home_odd = $1, updated_at = NOW() WHERE id = $2 AND status = 'NS'"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != 1.85 || args[1] != int64(11) {
		t.Fatalf("unexpected args: %+v", args)
	}
}
