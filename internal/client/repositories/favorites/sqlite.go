package favorites

import (
	"context"
	"fmt"

	"github.com/mvolkov/tastebook/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) List(ctx context.Context) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT cookbook_id FROM favorites ORDER BY cookbook_id`)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *SQLiteRepository) Add(ctx context.Context, cookbookID int64) error {
	_, err := r.db.ExecContext(ctx, `INSERT OR IGNORE INTO favorites (cookbook_id) VALUES (?)`, cookbookID)
	if err != nil {
		return fmt.Errorf("add favorite %d: %w", cookbookID, err)
	}
	return nil
}

func (r *SQLiteRepository) Remove(ctx context.Context, cookbookID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM favorites WHERE cookbook_id = ?`, cookbookID)
	if err != nil {
		return fmt.Errorf("remove favorite %d: %w", cookbookID, err)
	}
	return nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM favorites`)
	if err != nil {
		return fmt.Errorf("clear favorites: %w", err)
	}
	return nil
}
