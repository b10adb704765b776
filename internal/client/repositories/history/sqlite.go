package history

import (
	"context"
	"fmt"

	"github.com/mindcard/mindcard-cli/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Insert(ctx context.Context, res *Result) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO practice_history
			(id, deck_id, deck_title, total_cards, correct_count, duration_seconds, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, res.ID, res.DeckID, res.DeckTitle, res.TotalCards, res.CorrectCount, res.DurationSeconds, res.FinishedAt)
	if err != nil {
		return fmt.Errorf("insert practice result: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Recent(ctx context.Context, limit int) ([]*Result, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, deck_id, deck_title, total_cards, correct_count, duration_seconds, finished_at
		FROM practice_history
		ORDER BY finished_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list practice results: %w", err)
	}
	defer rows.Close()

	var results []*Result
	for rows.Next() {
		res := &Result{}
		if err := rows.Scan(&res.ID, &res.DeckID, &res.DeckTitle, &res.TotalCards,
			&res.CorrectCount, &res.DurationSeconds, &res.FinishedAt); err != nil {
			return nil, fmt.Errorf("scan practice result: %w", err)
		}
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate practice results: %w", err)
	}
	return results, nil
}

func (r *SQLiteRepository) Prune(ctx context.Context, keep int) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM practice_history
		WHERE id NOT IN (
			SELECT id FROM practice_history ORDER BY finished_at DESC LIMIT ?
		)
	`, keep)
	if err != nil {
		return fmt.Errorf("prune practice history: %w", err)
	}
	return nil
}
