package postgres

import (
	"context"
	"testing"
	"time"

	domain "realty/backend/internal/domain/listing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var summaryColumns = []string{"id", "address", "city", "price", "bedrooms", "bathrooms", "property_type", "thumbnail"}

func TestListingRepository_FindMany(t *testing.T) {
	t.Run("city and min price conditions carry their arguments", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		rows := pgxmock.NewRows(summaryColumns).
			AddRow("listing-1", "2345 William Str", "Buea", int64(1500000), 3, 2.5,
				domain.PropertyResidential, "https://example.com/img1.jpg")
		mock.ExpectQuery("SELECT l.id, l.address, l.city, l.price").
			WithArgs("Buea", int64(1500)).
			WillReturnRows(rows)

		repo := NewListingRepository(mock)
		minPrice := int64(1500)
		got, err := repo.FindMany(context.Background(), domain.SearchFilter{
			City:     "Buea",
			MinPrice: &minPrice,
		})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "listing-1", got[0].ID)
		assert.Equal(t, "https://example.com/img1.jpg", got[0].Thumbnail)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty filter queries without conditions", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT l.id, l.address, l.city, l.price").
			WillReturnRows(pgxmock.NewRows(summaryColumns))

		repo := NewListingRepository(mock)
		got, err := repo.FindMany(context.Background(), domain.SearchFilter{})
		require.NoError(t, err)
		assert.Empty(t, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestListingRepository_GetByID(t *testing.T) {
	t.Run("joins owner contact and loads every photo", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
		listingRow := pgxmock.NewRows([]string{
			"id", "address", "city", "price", "bedrooms", "bathrooms", "land_size",
			"property_type", "owner_id", "created_at", "updated_at", "name", "email", "phone",
		}).AddRow("listing-1", "molyko", "Buea", int64(10000000), 9, 6.0, 444.0,
			domain.PropertyResidential, "realtor-1", now, now, "brian", "muma@example.com", "4641653")
		mock.ExpectQuery("SELECT l.id, l.address, l.city").
			WithArgs("listing-1").
			WillReturnRows(listingRow)

		photoRows := pgxmock.NewRows([]string{"id", "url", "listing_id"}).
			AddRow("photo-1", "https://example.com/img1.jpg", "listing-1").
			AddRow("photo-2", "https://example.com/img2.jpg", "listing-1")
		mock.ExpectQuery("SELECT id, url, listing_id").
			WithArgs("listing-1").
			WillReturnRows(photoRows)

		repo := NewListingRepository(mock)
		got, err := repo.GetByID(context.Background(), "listing-1")
		require.NoError(t, err)
		assert.Equal(t, "realtor-1", got.OwnerID)
		assert.Equal(t, domain.Contact{Name: "brian", Email: "muma@example.com", Phone: "4641653"}, got.Realtor)
		require.Len(t, got.Photos, 2)
		assert.Equal(t, "https://example.com/img2.jpg", got.Photos[1].URL)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("absent maps to ErrNotFound", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT l.id, l.address, l.city").
			WithArgs("missing").
			WillReturnError(pgx.ErrNoRows)

		repo := NewListingRepository(mock)
		_, err = repo.GetByID(context.Background(), "missing")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestListingRepository_Update(t *testing.T) {
	listing := &domain.Listing{
		ID:           "listing-1",
		Address:      "123 Main St",
		City:         "buea",
		Price:        250000,
		Bedrooms:     3,
		Bathrooms:    2,
		LandSize:     444,
		PropertyType: domain.PropertyResidential,
		UpdatedAt:    time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}

	t.Run("successful update", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("UPDATE listings").
			WithArgs(listing.ID, listing.Address, listing.City, listing.Price, listing.Bedrooms,
				listing.Bathrooms, listing.LandSize, listing.PropertyType, listing.UpdatedAt).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		repo := NewListingRepository(mock)
		require.NoError(t, repo.Update(context.Background(), listing))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("zero rows affected maps to ErrNotFound", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("UPDATE listings").
			WithArgs(listing.ID, listing.Address, listing.City, listing.Price, listing.Bedrooms,
				listing.Bathrooms, listing.LandSize, listing.PropertyType, listing.UpdatedAt).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		repo := NewListingRepository(mock)
		err = repo.Update(context.Background(), listing)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestListingRepository_CreatePhotos(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	photos := []*domain.Photo{
		{ID: "photo-1", URL: "https://example.com/img1.jpg", ListingID: "listing-1"},
		{ID: "photo-2", URL: "https://example.com/img2.jpg", ListingID: "listing-1"},
	}

	batch := mock.ExpectBatch()
	for _, p := range photos {
		batch.ExpectExec("INSERT INTO photos").
			WithArgs(p.ID, p.URL, p.ListingID).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
	}

	repo := NewListingRepository(mock)
	require.NoError(t, repo.CreatePhotos(context.Background(), photos))
	assert.NoError(t, mock.ExpectationsWereMet())
}
