// Hudson - Live Shopping Session Control
// Copyright 2026 Pavoi
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pavoi/hudson

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/pavoi/hudson/internal/models"
)

// CreateBrand inserts a brand and fills in its ID and CreatedAt.
func (db *DB) CreateBrand(ctx context.Context, brand *models.Brand) (err error) {
	defer func(start time.Time) { observe("create_brand", start, err) }(time.Now())

	brand.CreatedAt = timestamp()
	err = db.conn.QueryRowContext(ctx,
		`INSERT INTO brands (name, slug, created_at) VALUES ($1, $2, $3) RETURNING id`,
		brand.Name, brand.Slug, brand.CreatedAt,
	).Scan(&brand.ID)
	if err != nil {
		if isUniqueConstraintError(err) {
			return models.ErrSlugTaken
		}
		return fmt.Errorf("failed to create brand: %w", err)
	}
	return nil
}

// GetBrand retrieves a brand by ID.
func (db *DB) GetBrand(ctx context.Context, id int64) (*models.Brand, error) {
	var b models.Brand
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, name, slug, created_at FROM brands WHERE id = $1`, id,
	).Scan(&b.ID, &b.Name, &b.Slug, &b.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrBrandNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get brand %d: %w", id, err)
	}
	return &b, nil
}

// ListBrands returns all brands ordered by name.
func (db *DB) ListBrands(ctx context.Context) ([]models.Brand, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT id, name, slug, created_at FROM brands ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list brands: %w", err)
	}
	defer closeWithLog(rows, "rows")

	brands := []models.Brand{}
	for rows.Next() {
		var b models.Brand
		if err := rows.Scan(&b.ID, &b.Name, &b.Slug, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan brand: %w", err)
		}
		brands = append(brands, b)
	}
	return brands, rows.Err()
}

// CreateProduct inserts a product with its images in one transaction. Image
// positions are assigned from slice order starting at 0.
func (db *DB) CreateProduct(ctx context.Context, product *models.Product) (err error) {
	defer func(start time.Time) { observe("create_product", start, err) }(time.Now())

	tx, rollback, err := db.beginTx(ctx)
	if err != nil {
		return err
	}
	defer rollback()

	if err := requireBrand(ctx, tx, product.BrandID); err != nil {
		return err
	}

	product.CreatedAt = timestamp()
	err = tx.QueryRowContext(ctx,
		`INSERT INTO products (brand_id, name, talking_points, original_price_cents, sale_price_cents, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		product.BrandID, product.Name, nullString(product.TalkingPoints),
		product.OriginalPriceCents, nullInt64(product.SalePriceCents), product.CreatedAt,
	).Scan(&product.ID)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	for i := range product.Images {
		img := &product.Images[i]
		img.ProductID = product.ID
		img.Position = i
		err = tx.QueryRowContext(ctx,
			`INSERT INTO product_images (product_id, position, url, alt_text) VALUES ($1, $2, $3, $4) RETURNING id`,
			img.ProductID, img.Position, img.URL, nullString(img.AltText),
		).Scan(&img.ID)
		if err != nil {
			return fmt.Errorf("failed to create product image %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit product: %w", err)
	}
	return nil
}

// GetProduct retrieves a product with its images.
func (db *DB) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	p, err := scanProduct(db.conn.QueryRowContext(ctx, productSelect+` WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product %d: %w", id, err)
	}

	images, err := db.productImages(ctx, []int64{p.ID})
	if err != nil {
		return nil, err
	}
	p.Images = images[p.ID]
	if p.Images == nil {
		p.Images = []models.ProductImage{}
	}
	return p, nil
}

// ListProducts returns the products of a brand with their images.
func (db *DB) ListProducts(ctx context.Context, brandID int64) ([]models.Product, error) {
	if _, err := db.GetBrand(ctx, brandID); err != nil {
		return nil, err
	}

	rows, err := db.conn.QueryContext(ctx, productSelect+` WHERE brand_id = $1 ORDER BY name, id`, brandID)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer closeWithLog(rows, "rows")

	products := []models.Product{}
	ids := []int64{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *p)
		ids = append(ids, p.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	images, err := db.productImages(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range products {
		products[i].Images = images[products[i].ID]
		if products[i].Images == nil {
			products[i].Images = []models.ProductImage{}
		}
	}
	return products, nil
}

const productSelect = `SELECT id, brand_id, name, talking_points, original_price_cents, sale_price_cents, created_at FROM products`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*models.Product, error) {
	var (
		p             models.Product
		talkingPoints sql.NullString
		salePrice     sql.NullInt64
	)
	if err := row.Scan(&p.ID, &p.BrandID, &p.Name, &talkingPoints, &p.OriginalPriceCents, &salePrice, &p.CreatedAt); err != nil {
		return nil, err
	}
	p.TalkingPoints = stringPtr(talkingPoints)
	p.SalePriceCents = int64Ptr(salePrice)
	return &p, nil
}

// productImages loads images for the given products keyed by product ID,
// each list ordered by position.
func (db *DB) productImages(ctx context.Context, productIDs []int64) (map[int64][]models.ProductImage, error) {
	out := make(map[int64][]models.ProductImage, len(productIDs))
	for _, id := range productIDs {
		rows, err := db.conn.QueryContext(ctx,
			`SELECT id, product_id, position, url, alt_text FROM product_images WHERE product_id = $1 ORDER BY position`, id)
		if err != nil {
			return nil, fmt.Errorf("failed to query product images: %w", err)
		}
		images, err := scanImages(rows)
		closeWithLog(rows, "rows")
		if err != nil {
			return nil, err
		}
		out[id] = images
	}
	return out, nil
}

func scanImages(rows *sql.Rows) ([]models.ProductImage, error) {
	images := []models.ProductImage{}
	for rows.Next() {
		var (
			img models.ProductImage
			alt sql.NullString
		)
		if err := rows.Scan(&img.ID, &img.ProductID, &img.Position, &img.URL, &alt); err != nil {
			return nil, fmt.Errorf("failed to scan product image: %w", err)
		}
		img.AltText = stringPtr(alt)
		images = append(images, img)
	}
	return images, rows.Err()
}

// queryer is satisfied by *sql.DB and *sql.Tx.
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func requireBrand(ctx context.Context, q queryer, brandID int64) error {
	var one int
	err := q.QueryRowContext(ctx, `SELECT 1 FROM brands WHERE id = $1`, brandID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ErrBrandNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to check brand %d: %w", brandID, err)
	}
	return nil
}
