package listing

import (
	"errors"
	"strings"
	"time"
)

var (
	// ErrNotFound indicates no listing matched the lookup or search.
	ErrNotFound = errors.New("listing not found")
	// ErrNotOwner indicates the caller does not own the listing it tried to
	// mutate.
	ErrNotOwner = errors.New("caller does not own this listing")
	// ErrInvalidPropertyType indicates an unsupported property type value.
	ErrInvalidPropertyType = errors.New("invalid property type")
)

// PropertyType is the closed set of supported listing categories.
type PropertyType string

const (
	// PropertyResidential is a standalone residential property.
	PropertyResidential PropertyType = "RESIDENTIAL"
	// PropertyCondo is a condominium unit.
	PropertyCondo PropertyType = "CONDO"
)

// ParsePropertyType converts a raw string into a PropertyType.
func ParsePropertyType(raw string) (PropertyType, error) {
	switch PropertyType(strings.ToUpper(strings.TrimSpace(raw))) {
	case PropertyResidential:
		return PropertyResidential, nil
	case PropertyCondo:
		return PropertyCondo, nil
	default:
		return "", ErrInvalidPropertyType
	}
}

// Photo is a stored reference to a listing image. Only the URL is recorded,
// never the image bytes.
type Photo struct {
	ID        string `json:"id"`
	URL       string `json:"url"`
	ListingID string `json:"listingId"`
}

// Listing captures the state of a property listing.
type Listing struct {
	ID           string       `json:"id"`
	Address      string       `json:"address"`
	City         string       `json:"city"`
	Price        int64        `json:"price"`
	Bedrooms     int          `json:"bedrooms"`
	Bathrooms    float64      `json:"bathrooms"`
	LandSize     float64      `json:"landSize"`
	PropertyType PropertyType `json:"propertyType"`
	OwnerID      string       `json:"ownerId"`
	Photos       []Photo      `json:"photos,omitempty"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// Update applies the non-nil fields to the listing. Absent fields are left
// untouched.
func (l *Listing) Update(address, city *string, price *int64, bedrooms *int, bathrooms, landSize *float64, propertyType *PropertyType) {
	if address != nil {
		l.Address = *address
	}
	if city != nil {
		l.City = *city
	}
	if price != nil {
		l.Price = *price
	}
	if bedrooms != nil {
		l.Bedrooms = *bedrooms
	}
	if bathrooms != nil {
		l.Bathrooms = *bathrooms
	}
	if landSize != nil {
		l.LandSize = *landSize
	}
	if propertyType != nil {
		l.PropertyType = *propertyType
	}
	l.UpdatedAt = time.Now().UTC()
}

// Summary is the search projection: core listing fields plus at most one
// photo URL as a thumbnail.
type Summary struct {
	ID           string       `json:"id"`
	Address      string       `json:"address"`
	City         string       `json:"city"`
	Price        int64        `json:"price"`
	Bedrooms     int          `json:"bedrooms"`
	Bathrooms    float64      `json:"bathrooms"`
	PropertyType PropertyType `json:"propertyType"`
	Thumbnail    string       `json:"thumbnail,omitempty"`
}

// Contact carries the owner's public contact fields. The password hash is
// never part of any projection.
type Contact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Detail is the full projection of a listing: every photo plus the realtor's
// contact details.
type Detail struct {
	Listing
	Realtor Contact `json:"realtor"`
}

// SearchFilter narrows listing queries. Zero-valued fields impose no
// condition.
type SearchFilter struct {
	City         string
	MinPrice     *int64
	PropertyType PropertyType
}
