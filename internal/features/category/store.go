package category

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db: db,
	}
}

func (s *Store) createOne(ctx context.Context, category *Category) error {
	query := `INSERT INTO categories(category_id, name, slug, created_at) VALUES($1, $2, $3, $4)`

	_, err := s.db.ExecContext(
		ctx,
		query,
		category.CategoryID,
		category.Name,
		category.Slug,
		category.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf(
			"failed to insert category in category store: %w",
			err,
		)
	}

	return nil
}

func (s *Store) updateOne(ctx context.Context, category *Category) (bool, error) {
	query := `UPDATE categories SET name = $1, slug = $2, updated_at = now() WHERE category_id = $3`

	res, err := s.db.ExecContext(
		ctx,
		query,
		category.Name,
		category.Slug,
		category.CategoryID,
	)
	if err != nil {
		return false, fmt.Errorf(
			"failed to update category in category store: %w",
			err,
		)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf(
			"failed to read rows affected in category store: %w",
			err,
		)
	}

	return affected > 0, nil
}

func (s *Store) findAll(ctx context.Context) ([]*Category, error) {
	query := `SELECT category_id, name, slug, created_at FROM categories ORDER BY created_at`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to get all categories from category store: %w",
			err,
		)
	}
	defer rows.Close()

	var categories []*Category
	for rows.Next() {
		var category Category
		err := rows.Scan(
			&category.CategoryID,
			&category.Name,
			&category.Slug,
			&category.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf(
				"failed to scan category from category store: %w",
				err,
			)
		}
		categories = append(categories, &category)
	}

	return categories, rows.Err()
}

func (s *Store) findByName(ctx context.Context, name string) (*Category, error) {
	return s.findOne(ctx, `SELECT category_id, name, slug, created_at FROM categories WHERE name = $1`, name)
}

func (s *Store) findBySlug(ctx context.Context, slug string) (*Category, error) {
	return s.findOne(ctx, `SELECT category_id, name, slug, created_at FROM categories WHERE slug = $1`, slug)
}

func (s *Store) findOne(ctx context.Context, query string, arg any) (*Category, error) {
	var category Category
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&category.CategoryID,
		&category.Name,
		&category.Slug,
		&category.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf(
			"failed to scan category from category store: %w",
			err,
		)
	}

	return &category, nil
}

func (s *Store) deleteOne(ctx context.Context, categoryID uuid.UUID) (bool, error) {
	query := `DELETE FROM categories WHERE category_id = $1`

	res, err := s.db.ExecContext(ctx, query, categoryID)
	if err != nil {
		return false, fmt.Errorf(
			"failed to delete category in category store: %w",
			err,
		)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf(
			"failed to read rows affected in category store: %w",
			err,
		)
	}

	return affected > 0, nil
}
