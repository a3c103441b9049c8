package listing

import "context"

// Repository defines persistence behaviours for listings and their photos.
type Repository interface {
	FindMany(ctx context.Context, filter SearchFilter) ([]*Summary, error)
	GetByID(ctx context.Context, id string) (*Detail, error)
	Create(ctx context.Context, listing *Listing) error
	Update(ctx context.Context, listing *Listing) error
	CreatePhotos(ctx context.Context, photos []*Photo) error
}
