package store

import (
	"context"

	cache "github.com/patrickmn/go-cache"
)

// StatefulStore is a read-through cache for single-artwork lookups.
// Mutations write through so cached records never go stale.
type StatefulStore struct {
	Store
	cache *cache.Cache
}

func NewStatefulStore(store Store, c *cache.Cache) Store {
	return &StatefulStore{
		Store: store,
		cache: c,
	}
}

func (s *StatefulStore) Artwork(ctx context.Context, id string) (*Artwork, error) {
	if a, ok := s.cache.Get("artworks:" + id); ok {
		artwork := a.(*Artwork)
		return artwork, nil
	}

	artwork, err := s.Store.Artwork(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cache.Set("artworks:"+id, artwork, 0)
	return artwork, nil
}

func (s *StatefulStore) CreateArtwork(ctx context.Context, a *Artwork) (*Artwork, error) {
	artwork, err := s.Store.CreateArtwork(ctx, a)
	if err != nil {
		return nil, err
	}

	s.cache.Set("artworks:"+artwork.ID.Hex(), artwork, 0)
	return artwork, nil
}

func (s *StatefulStore) UpdateArtwork(ctx context.Context, id string, a *Artwork) (*Artwork, error) {
	artwork, err := s.Store.UpdateArtwork(ctx, id, a)
	if err != nil {
		return nil, err
	}

	s.cache.Set("artworks:"+id, artwork, 0)
	return artwork, nil
}

func (s *StatefulStore) DeleteArtwork(ctx context.Context, id string) error {
	if err := s.Store.DeleteArtwork(ctx, id); err != nil {
		return err
	}

	s.cache.Delete("artworks:" + id)
	return nil
}

func (s *StatefulStore) LikeArtwork(ctx context.Context, id string, email string) (*Artwork, error) {
	artwork, err := s.Store.LikeArtwork(ctx, id, email)
	if err != nil {
		return nil, err
	}

	s.cache.Set("artworks:"+id, artwork, 0)
	return artwork, nil
}
