package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/ozanbudak/footsight/internal/domain/league"
	qb "github.com/ozanbudak/footsight/internal/platform/querybuilder"
)

type LeagueRepository struct {
	db *sqlx.DB
}

func NewLeagueRepository(db *sqlx.DB) *LeagueRepository {
	return &LeagueRepository{db: db}
}

func (r *LeagueRepository) Upsert(ctx context.Context, l league.League) error {
	insertModel := leagueInsertModel{
		ID:      l.ID,
		Code:    l.Code,
		Name:    l.Name,
		Country: l.Country,
		Emblem:  l.Emblem,
	}
	query, args, err := qb.InsertModel("leagues", insertModel, `ON CONFLICT (id)
DO UPDATE SET
    code = EXCLUDED.code,
    name = EXCLUDED.name,
    country = EXCLUDED.country,
    emblem = EXCLUDED.emblem,
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert league query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert league: %w", err)
	}
	return nil
}

func (r *LeagueRepository) List(ctx context.Context) ([]league.League, error) {
	query, args, err := qb.Select("*").From("leagues").
		OrderBy("code").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select leagues query: %w", err)
	}

	var rows []leagueTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select leagues: %w", err)
	}

	out := make([]league.League, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapLeagueRow(row))
	}
	return out, nil
}

func (r *LeagueRepository) GetByCode(ctx context.Context, code string) (league.League, bool, error) {
	query, args, err := qb.Select("*").From("leagues").
		Where(qb.Eq("code", code)).
		Limit(1).
		ToSQL()
	if err != nil {
		return league.League{}, false, fmt.Errorf("build select league by code query: %w", err)
	}

	var row leagueTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return league.League{}, false, nil
		}
		return league.League{}, false, fmt.Errorf("select league by code: %w", err)
	}
	return mapLeagueRow(row), true, nil
}

func mapLeagueRow(row leagueTableModel) league.League {
	return league.League{
		ID:      row.ID,
		Code:    row.Code,
		Name:    row.Name,
		Country: row.Country,
		Emblem:  row.Emblem,
	}
}
