package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ArtworkStore interface {
	Artwork(ctx context.Context, id string) (*Artwork, error)
	SearchArtworks(ctx context.Context, filter ArtworkFilter, opts ...ArtworkSearchOptions) ([]*Artwork, error)
	CreateArtwork(ctx context.Context, artwork *Artwork) (*Artwork, error)
	UpdateArtwork(ctx context.Context, id string, artwork *Artwork) (*Artwork, error)
	DeleteArtwork(ctx context.Context, id string) error
	LikeArtwork(ctx context.Context, id string, email string) (*Artwork, error)
}

type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

type Artwork struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ArtistEmail string             `json:"artistEmail" bson:"artistEmail"`
	Title       string             `json:"title" bson:"title"`
	Category    string             `json:"category" bson:"category"`
	Medium      string             `json:"medium" bson:"medium"`
	Description string             `json:"description" bson:"description"`
	Dimensions  string             `json:"dimensions" bson:"dimensions"`
	Price       string             `json:"price" bson:"price"`
	Image       string             `json:"image" bson:"image"`
	Visibility  Visibility         `json:"visibility" bson:"visibility"`
	Likes       int                `json:"likes" bson:"likes"`
	LikedBy     []string           `json:"likedBy" bson:"likedBy"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
}

// Liked reports whether the identity already appears in the membership
// set. LikedBy and Likes only ever change together through LikeArtwork.
func (a *Artwork) Liked(email string) bool {
	for _, e := range a.LikedBy {
		if e == email {
			return true
		}
	}

	return false
}

type Order int

const (
	Descending Order = iota - 1
	_
	Ascending
)

type ArtworkSort int

const (
	ByTime ArtworkSort = iota
	ByLikes
)

func (s ArtworkSort) String() string {
	return map[ArtworkSort]string{
		ByTime:  "created_at",
		ByLikes: "likes",
	}[s]
}

type ArtworkSearchOptions struct {
	Limit int64
	Order Order
	Sort  ArtworkSort
}

// ArtworkFilter narrows a search. Zero values are ignored; Title matches
// case-insensitively as a substring.
type ArtworkFilter struct {
	IDs         []string
	ArtistEmail string
	Title       string
	Visibility  Visibility
}

func DefaultSearchOptions() ArtworkSearchOptions {
	return ArtworkSearchOptions{
		Limit: 100,
		Order: Descending,
		Sort:  ByTime,
	}
}

// FeaturedSearchOptions selects the six most recent artworks.
func FeaturedSearchOptions() ArtworkSearchOptions {
	return ArtworkSearchOptions{
		Limit: 6,
		Order: Descending,
		Sort:  ByTime,
	}
}
