package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/craftandcart/storefront/internal/features/category"
	"github.com/google/uuid"
)

// selectColumns deliberately excludes the photo payload; listings never
// carry image bytes. The category columns come from a read-time join so
// category edits show through immediately.
const selectColumns = `
	p.product_id, p.name, p.slug, p.description, p.price, p.quantity,
	p.category_id, p.created_at,
	c.category_id, c.name, c.slug, c.created_at`

const fromProducts = ` FROM products p LEFT JOIN categories c ON c.category_id = p.category_id`

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db: db,
	}
}

func (s *Store) createOne(ctx context.Context, product *Product, photo *Photo) error {
	query := `INSERT INTO products(product_id, name, slug, description, price, quantity, category_id, photo, photo_content_type, created_at)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	var photoData []byte
	var photoContentType sql.NullString
	if photo != nil {
		photoData = photo.Data
		photoContentType = sql.NullString{String: photo.ContentType, Valid: true}
	}

	_, err := s.db.ExecContext(
		ctx,
		query,
		product.ProductID,
		product.Name,
		product.Slug,
		product.Description,
		product.Price,
		product.Quantity,
		nullableUUID(product.CategoryID),
		photoData,
		photoContentType,
		product.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf(
			"failed to insert product in product store: %w",
			err,
		)
	}

	return nil
}

func (s *Store) updateOne(ctx context.Context, product *Product, photo *Photo) (bool, error) {
	query := `UPDATE products
		SET name = $1, slug = $2, description = $3, price = $4, quantity = $5, category_id = $6, updated_at = now()
		WHERE product_id = $7`
	args := []any{
		product.Name,
		product.Slug,
		product.Description,
		product.Price,
		product.Quantity,
		nullableUUID(product.CategoryID),
		product.ProductID,
	}

	if photo != nil {
		query = `UPDATE products
			SET name = $1, slug = $2, description = $3, price = $4, quantity = $5, category_id = $6, photo = $7, photo_content_type = $8, updated_at = now()
			WHERE product_id = $9`
		args = []any{
			product.Name,
			product.Slug,
			product.Description,
			product.Price,
			product.Quantity,
			nullableUUID(product.CategoryID),
			photo.Data,
			photo.ContentType,
			product.ProductID,
		}
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf(
			"failed to update product in product store: %w",
			err,
		)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf(
			"failed to read rows affected in product store: %w",
			err,
		)
	}

	return affected > 0, nil
}

func (s *Store) findRecent(ctx context.Context, limit int) ([]*Product, error) {
	query := `SELECT` + selectColumns + fromProducts + ` ORDER BY p.created_at DESC LIMIT $1`
	return s.queryProducts(ctx, query, limit)
}

func (s *Store) findPage(ctx context.Context, offset, limit int) ([]*Product, error) {
	query := `SELECT` + selectColumns + fromProducts + ` ORDER BY p.created_at DESC LIMIT $1 OFFSET $2`
	return s.queryProducts(ctx, query, limit, offset)
}

func (s *Store) findBySlug(ctx context.Context, slug string) (*Product, error) {
	query := `SELECT` + selectColumns + fromProducts + ` WHERE p.slug = $1`

	products, err := s.queryProducts(ctx, query, slug)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, nil
	}

	return products[0], nil
}

func (s *Store) findPhoto(ctx context.Context, productID uuid.UUID) (*Photo, error) {
	query := `SELECT photo, photo_content_type FROM products WHERE product_id = $1`

	var data []byte
	var contentType sql.NullString

	err := s.db.QueryRowContext(ctx, query, productID).Scan(&data, &contentType)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf(
			"failed to get photo from product store: %w",
			err,
		)
	}

	return &Photo{
		Data:        data,
		ContentType: contentType.String,
	}, nil
}

func (s *Store) countAll(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf(
			"failed to count products in product store: %w",
			err,
		)
	}

	return count, nil
}

func (s *Store) search(ctx context.Context, keyword string) ([]*Product, error) {
	query := `SELECT` + selectColumns + fromProducts + `
		WHERE p.name ILIKE $1 OR p.description ILIKE $1
		ORDER BY p.created_at DESC`

	return s.queryProducts(ctx, query, "%"+keyword+"%")
}

func (s *Store) findRelated(ctx context.Context, productID, categoryID uuid.UUID, limit int) ([]*Product, error) {
	query := `SELECT` + selectColumns + fromProducts + `
		WHERE p.category_id = $1 AND p.product_id != $2
		ORDER BY p.created_at DESC LIMIT $3`

	return s.queryProducts(ctx, query, categoryID, productID, limit)
}

func (s *Store) findByCategoryID(ctx context.Context, categoryID uuid.UUID) ([]*Product, error) {
	query := `SELECT` + selectColumns + fromProducts + ` WHERE p.category_id = $1 ORDER BY p.created_at DESC`
	return s.queryProducts(ctx, query, categoryID)
}

func (s *Store) deleteOne(ctx context.Context, productID uuid.UUID) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE product_id = $1`, productID)
	if err != nil {
		return false, fmt.Errorf(
			"failed to delete product in product store: %w",
			err,
		)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf(
			"failed to read rows affected in product store: %w",
			err,
		)
	}

	return affected > 0, nil
}

func (s *Store) queryProducts(ctx context.Context, query string, args ...any) ([]*Product, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to query products from product store: %w",
			err,
		)
	}
	defer rows.Close()

	var products []*Product
	for rows.Next() {
		product, err := scanRowIntoProduct(rows)
		if err != nil {
			return nil, fmt.Errorf(
				"failed to scan product from product store: %w",
				err,
			)
		}
		products = append(products, product)
	}

	return products, rows.Err()
}

func scanRowIntoProduct(rows *sql.Rows) (*Product, error) {
	var product Product
	var categoryID uuid.NullUUID
	var joinedID uuid.NullUUID
	var joinedName, joinedSlug sql.NullString
	var joinedCreatedAt sql.NullTime

	err := rows.Scan(
		&product.ProductID,
		&product.Name,
		&product.Slug,
		&product.Description,
		&product.Price,
		&product.Quantity,
		&categoryID,
		&product.CreatedAt,
		&joinedID,
		&joinedName,
		&joinedSlug,
		&joinedCreatedAt,
	)
	if err != nil {
		return nil, err
	}

	product.CategoryID = categoryID.UUID

	// a dangling category reference joins to nothing; the product then
	// reads back with no category
	if joinedID.Valid {
		product.Category = &category.Category{
			CategoryID: joinedID.UUID,
			Name:       joinedName.String,
			Slug:       joinedSlug.String,
			CreatedAt:  joinedCreatedAt.Time,
		}
	}

	return &product, nil
}

func nullableUUID(id uuid.UUID) uuid.NullUUID {
	return uuid.NullUUID{
		UUID:  id,
		Valid: id != uuid.Nil,
	}
}
