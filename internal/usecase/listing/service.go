package listing

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	domain "realty/backend/internal/domain/listing"

	"github.com/google/uuid"
)

// Service encapsulates listing use cases.
type Service struct {
	repo    domain.Repository
	nowFunc func() time.Time
}

// NewService constructs a listing service.
func NewService(repo domain.Repository) *Service {
	return &Service{
		repo:    repo,
		nowFunc: time.Now,
	}
}

// PhotoInput references a single image by URL.
type PhotoInput struct {
	URL string `json:"url"`
}

// CreateInput contains the payload required to create a listing.
type CreateInput struct {
	Address      string       `json:"address"`
	City         string       `json:"city"`
	Price        int64        `json:"price"`
	Bedrooms     int          `json:"bedrooms"`
	Bathrooms    float64      `json:"bathrooms"`
	LandSize     float64      `json:"landSize"`
	PropertyType string       `json:"propertyType"`
	Photos       []PhotoInput `json:"photos"`
}

// UpdateInput encapsulates partial listing updates. Nil fields are left
// untouched, so an empty value and an absent value stay distinguishable.
type UpdateInput struct {
	Address      *string  `json:"address"`
	City         *string  `json:"city"`
	Price        *int64   `json:"price"`
	Bedrooms     *int     `json:"bedrooms"`
	Bathrooms    *float64 `json:"bathrooms"`
	LandSize     *float64 `json:"landSize"`
	PropertyType *string  `json:"propertyType"`
}

// Search queries listings with the filter built from the raw parameters.
// Absent parameters impose no condition; a minPrice that fails to parse as an
// integer imposes no price condition. Zero matches is an ErrNotFound, not an
// empty success.
func (s *Service) Search(ctx context.Context, city, minPrice, propertyType string) ([]*domain.Summary, error) {
	filter := domain.SearchFilter{}
	if c := strings.TrimSpace(city); c != "" {
		filter.City = c
	}
	if raw := strings.TrimSpace(minPrice); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
			filter.MinPrice = &v
		}
	}
	if raw := strings.TrimSpace(propertyType); raw != "" {
		pt, err := domain.ParsePropertyType(raw)
		if err != nil {
			return nil, err
		}
		filter.PropertyType = pt
	}

	items, err := s.repo.FindMany(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, domain.ErrNotFound
	}
	return items, nil
}

// GetByID fetches the full projection of a listing.
func (s *Service) GetByID(ctx context.Context, id string) (*domain.Detail, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errors.New("listing id is required")
	}
	return s.repo.GetByID(ctx, id)
}

// Create stores a new listing owned by ownerID, then stores its photos bound
// to the new listing id in a single batch.
func (s *Service) Create(ctx context.Context, ownerID string, in CreateInput) (*domain.Listing, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, errors.New("owner id is required")
	}
	in.Address = strings.TrimSpace(in.Address)
	in.City = strings.TrimSpace(in.City)
	if in.Address == "" {
		return nil, errors.New("address is required")
	}
	if in.City == "" {
		return nil, errors.New("city is required")
	}
	pt, err := domain.ParsePropertyType(in.PropertyType)
	if err != nil {
		return nil, err
	}

	now := s.nowFunc().UTC()
	l := &domain.Listing{
		ID:           uuid.NewString(),
		Address:      in.Address,
		City:         in.City,
		Price:        in.Price,
		Bedrooms:     in.Bedrooms,
		Bathrooms:    in.Bathrooms,
		LandSize:     in.LandSize,
		PropertyType: pt,
		OwnerID:      ownerID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, l); err != nil {
		return nil, err
	}

	if len(in.Photos) > 0 {
		photos := make([]*domain.Photo, 0, len(in.Photos))
		for _, p := range in.Photos {
			photos = append(photos, &domain.Photo{
				ID:        uuid.NewString(),
				URL:       p.URL,
				ListingID: l.ID,
			})
		}
		// The two writes are not atomic: a failure here leaves the listing
		// without its photos.
		if err := s.repo.CreatePhotos(ctx, photos); err != nil {
			return nil, err
		}
		for _, p := range photos {
			l.Photos = append(l.Photos, *p)
		}
	}

	return l, nil
}

// UpdateByID applies a partial update to a listing after verifying the caller
// owns it. Owning some other listing does not help: only the recorded owner
// may mutate.
func (s *Service) UpdateByID(ctx context.Context, callerID, id string, in UpdateInput) (*domain.Listing, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errors.New("listing id is required")
	}

	detail, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if detail.OwnerID != callerID {
		return nil, domain.ErrNotOwner
	}

	var pt *domain.PropertyType
	if in.PropertyType != nil {
		parsed, err := domain.ParsePropertyType(*in.PropertyType)
		if err != nil {
			return nil, err
		}
		pt = &parsed
	}

	l := detail.Listing
	l.Update(in.Address, in.City, in.Price, in.Bedrooms, in.Bathrooms, in.LandSize, pt)

	if err := s.repo.Update(ctx, &l); err != nil {
		return nil, err
	}
	return &l, nil
}
