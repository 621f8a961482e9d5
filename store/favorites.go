package store

import (
	"context"
	"time"
)

type FavoriteStore interface {
	Favorite(ctx context.Context, email string, artworkID string) (*Favorite, error)
	ListFavorites(ctx context.Context, email string) ([]*Favorite, error)
	AddFavorite(ctx context.Context, fav *Favorite) (*Favorite, error)
	DeleteFavorite(ctx context.Context, artworkID string) error
}

// Favorite links a user to an artwork. ArtworkID is kept as the external
// hex string; the store does not enforce that the artwork still exists.
type Favorite struct {
	UserEmail string    `json:"userEmail" bson:"userEmail"`
	ArtworkID string    `json:"id" bson:"id"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
