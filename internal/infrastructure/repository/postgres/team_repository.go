package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/ozanbudak/footsight/internal/domain/team"
	qb "github.com/ozanbudak/footsight/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) Upsert(ctx context.Context, t team.Team) error {
	insertModel := teamInsertModel{
		ID:        t.ID,
		Name:      t.Name,
		ShortName: t.ShortName,
		Crest:     t.Crest,
		LeagueID:  t.LeagueID,
	}
	query, args, err := qb.InsertModel("teams", insertModel, `ON CONFLICT (id)
DO UPDATE SET
    name = EXCLUDED.name,
    short_name = EXCLUDED.short_name,
    crest = EXCLUDED.crest,
    league_id = EXCLUDED.league_id,
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert team query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert team: %w", err)
	}
	return nil
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	query, args, err := qb.Select("*").From("teams").
		OrderBy("name").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapTeamRow(row))
	}
	return out, nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID int64) (team.Team, bool, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(qb.Eq("id", teamID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build select team by id query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("select team by id: %w", err)
	}
	return mapTeamRow(row), true, nil
}

func mapTeamRow(row teamTableModel) team.Team {
	return team.Team{
		ID:        row.ID,
		Name:      row.Name,
		ShortName: row.ShortName,
		Crest:     row.Crest,
		LeagueID:  row.LeagueID,
	}
}
