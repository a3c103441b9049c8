package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domain "realty/backend/internal/domain/listing"

	"github.com/jackc/pgx/v5"
)

// ListingRepository persists listings and their photos in PostgreSQL.
type ListingRepository struct {
	pool Pool
}

// NewListingRepository constructs a repository.
func NewListingRepository(pool Pool) *ListingRepository {
	return &ListingRepository{pool: pool}
}

// FindMany returns the summary projection of listings matching the filter.
// The thumbnail is the first photo of each listing, empty when it has none.
func (r *ListingRepository) FindMany(ctx context.Context, filter domain.SearchFilter) ([]*domain.Summary, error) {
	query := `
SELECT l.id, l.address, l.city, l.price, l.bedrooms, l.bathrooms, l.property_type,
       COALESCE((SELECT p.url FROM photos p WHERE p.listing_id = l.id ORDER BY p.created_at, p.id LIMIT 1), '')
FROM listings l
`
	var conds []string
	var args []any
	if filter.City != "" {
		args = append(args, filter.City)
		conds = append(conds, fmt.Sprintf("l.city = $%d", len(args)))
	}
	if filter.MinPrice != nil {
		args = append(args, *filter.MinPrice)
		conds = append(conds, fmt.Sprintf("l.price >= $%d", len(args)))
	}
	if filter.PropertyType != "" {
		args = append(args, filter.PropertyType)
		conds = append(conds, fmt.Sprintf("l.property_type = $%d", len(args)))
	}
	if len(conds) > 0 {
		query += "WHERE " + strings.Join(conds, " AND ") + "\n"
	}
	query += "ORDER BY l.created_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*domain.Summary
	for rows.Next() {
		var s domain.Summary
		if err := rows.Scan(
			&s.ID,
			&s.Address,
			&s.City,
			&s.Price,
			&s.Bedrooms,
			&s.Bathrooms,
			&s.PropertyType,
			&s.Thumbnail,
		); err != nil {
			return nil, err
		}
		items = append(items, &s)
	}
	return items, rows.Err()
}

// GetByID fetches the full projection: the listing row joined with its
// owner's public contact fields, plus every photo.
func (r *ListingRepository) GetByID(ctx context.Context, id string) (*domain.Detail, error) {
	const query = `
SELECT l.id, l.address, l.city, l.price, l.bedrooms, l.bathrooms, l.land_size,
       l.property_type, l.owner_id, l.created_at, l.updated_at,
       u.name, u.email, u.phone
FROM listings l
JOIN users u ON u.id = l.owner_id
WHERE l.id = $1
`
	row := r.pool.QueryRow(ctx, query, id)
	var d domain.Detail
	err := row.Scan(
		&d.ID,
		&d.Address,
		&d.City,
		&d.Price,
		&d.Bedrooms,
		&d.Bathrooms,
		&d.LandSize,
		&d.PropertyType,
		&d.OwnerID,
		&d.CreatedAt,
		&d.UpdatedAt,
		&d.Realtor.Name,
		&d.Realtor.Email,
		&d.Realtor.Phone,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	photos, err := r.photosByListingID(ctx, d.ID)
	if err != nil {
		return nil, err
	}
	d.Photos = photos
	return &d, nil
}

// Create inserts a new listing row.
func (r *ListingRepository) Create(ctx context.Context, l *domain.Listing) error {
	const query = `
INSERT INTO listings (id, address, city, price, bedrooms, bathrooms, land_size,
                      property_type, owner_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
`
	_, err := r.pool.Exec(ctx, query,
		l.ID,
		l.Address,
		l.City,
		l.Price,
		l.Bedrooms,
		l.Bathrooms,
		l.LandSize,
		l.PropertyType,
		l.OwnerID,
		l.CreatedAt,
		l.UpdatedAt,
	)
	return err
}

// Update writes the listing's mutable fields back to the database.
func (r *ListingRepository) Update(ctx context.Context, l *domain.Listing) error {
	const query = `
UPDATE listings
SET address = $2,
    city = $3,
    price = $4,
    bedrooms = $5,
    bathrooms = $6,
    land_size = $7,
    property_type = $8,
    updated_at = $9
WHERE id = $1
`
	tag, err := r.pool.Exec(ctx, query,
		l.ID,
		l.Address,
		l.City,
		l.Price,
		l.Bedrooms,
		l.Bathrooms,
		l.LandSize,
		l.PropertyType,
		l.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CreatePhotos inserts the photo references in a single batch.
func (r *ListingRepository) CreatePhotos(ctx context.Context, photos []*domain.Photo) error {
	if len(photos) == 0 {
		return nil
	}
	const query = `INSERT INTO photos (id, url, listing_id) VALUES ($1, $2, $3)`

	batch := &pgx.Batch{}
	for _, p := range photos {
		batch.Queue(query, p.ID, p.URL, p.ListingID)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()
	for range photos {
		if _, err := results.Exec(); err != nil {
			return err
		}
	}
	return results.Close()
}

func (r *ListingRepository) photosByListingID(ctx context.Context, listingID string) ([]domain.Photo, error) {
	const query = `
SELECT id, url, listing_id
FROM photos WHERE listing_id = $1
ORDER BY created_at, id
`
	rows, err := r.pool.Query(ctx, query, listingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var photos []domain.Photo
	for rows.Next() {
		var p domain.Photo
		if err := rows.Scan(&p.ID, &p.URL, &p.ListingID); err != nil {
			return nil, err
		}
		photos = append(photos, p)
	}
	return photos, rows.Err()
}
