// Package memory implements store.Store without a database. It backs the
// test suite and the no-mongo development mode, and mirrors the semantics
// of the mongo implementation including id validation.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/artopia/artopia-go/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type memoryStore struct {
	mut       sync.Mutex
	now       func() time.Time
	artworks  map[string]*store.Artwork
	favorites []*store.Favorite
}

func New() store.Store {
	return NewWithClock(time.Now)
}

// NewWithClock fixes the creation-timestamp source so tests can drive
// recency ordering deterministically.
func NewWithClock(now func() time.Time) store.Store {
	return &memoryStore{
		now:       now,
		artworks:  make(map[string]*store.Artwork),
		favorites: make([]*store.Favorite, 0),
	}
}

func (m *memoryStore) Init(_ context.Context) error  { return nil }
func (m *memoryStore) Close(_ context.Context) error { return nil }

func (m *memoryStore) Artwork(_ context.Context, id string) (*store.Artwork, error) {
	if err := validID(id); err != nil {
		return nil, err
	}

	m.mut.Lock()
	defer m.mut.Unlock()

	artwork, ok := m.artworks[id]
	if !ok {
		return nil, store.ErrArtworkNotFound
	}

	copied := *artwork
	return &copied, nil
}

func (m *memoryStore) SearchArtworks(_ context.Context, filter store.ArtworkFilter, opts ...store.ArtworkSearchOptions) ([]*store.Artwork, error) {
	opt := store.DefaultSearchOptions()
	if len(opts) != 0 {
		opt = opts[0]
	}

	for _, id := range filter.IDs {
		if err := validID(id); err != nil {
			return nil, err
		}
	}

	m.mut.Lock()
	defer m.mut.Unlock()

	matched := make([]*store.Artwork, 0)
	for id, artwork := range m.artworks {
		if !matches(filter, id, artwork) {
			continue
		}

		copied := *artwork
		matched = append(matched, &copied)
	}

	switch opt.Sort {
	case store.ByLikes:
		sort.Slice(matched, func(i, j int) bool {
			if opt.Order == store.Ascending {
				return matched[i].Likes < matched[j].Likes
			}

			return matched[i].Likes > matched[j].Likes
		})
	default:
		sort.Slice(matched, func(i, j int) bool {
			if opt.Order == store.Ascending {
				return matched[i].CreatedAt.Before(matched[j].CreatedAt)
			}

			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		})
	}

	if opt.Limit > 0 && int64(len(matched)) > opt.Limit {
		matched = matched[:opt.Limit]
	}

	return matched, nil
}

func (m *memoryStore) CreateArtwork(_ context.Context, artwork *store.Artwork) (*store.Artwork, error) {
	m.mut.Lock()
	defer m.mut.Unlock()

	artwork.ID = primitive.NewObjectID()
	artwork.Likes = 0
	artwork.LikedBy = make([]string, 0)
	artwork.CreatedAt = m.now()

	copied := *artwork
	m.artworks[artwork.ID.Hex()] = &copied
	return artwork, nil
}

func (m *memoryStore) UpdateArtwork(_ context.Context, id string, artwork *store.Artwork) (*store.Artwork, error) {
	if err := validID(id); err != nil {
		return nil, err
	}

	m.mut.Lock()
	defer m.mut.Unlock()

	stored, ok := m.artworks[id]
	if !ok {
		return nil, store.ErrArtworkNotFound
	}

	stored.Title = artwork.Title
	stored.Category = artwork.Category
	stored.Medium = artwork.Medium
	stored.Description = artwork.Description
	stored.Dimensions = artwork.Dimensions
	stored.Price = artwork.Price
	stored.Image = artwork.Image
	stored.Visibility = artwork.Visibility

	copied := *stored
	return &copied, nil
}

func (m *memoryStore) DeleteArtwork(_ context.Context, id string) error {
	if err := validID(id); err != nil {
		return err
	}

	m.mut.Lock()
	defer m.mut.Unlock()

	if _, ok := m.artworks[id]; !ok {
		return store.ErrArtworkNotFound
	}

	delete(m.artworks, id)
	return nil
}

func (m *memoryStore) LikeArtwork(_ context.Context, id string, email string) (*store.Artwork, error) {
	if err := validID(id); err != nil {
		return nil, err
	}

	m.mut.Lock()
	defer m.mut.Unlock()

	artwork, ok := m.artworks[id]
	if !ok {
		return nil, store.ErrArtworkNotFound
	}

	if artwork.Liked(email) {
		return nil, store.ErrAlreadyLiked
	}

	artwork.Likes++
	artwork.LikedBy = append(artwork.LikedBy, email)

	copied := *artwork
	return &copied, nil
}

func (m *memoryStore) Favorite(_ context.Context, email string, artworkID string) (*store.Favorite, error) {
	if err := validID(artworkID); err != nil {
		return nil, err
	}

	m.mut.Lock()
	defer m.mut.Unlock()

	for _, fav := range m.favorites {
		if fav.UserEmail == email && fav.ArtworkID == artworkID {
			copied := *fav
			return &copied, nil
		}
	}

	return nil, store.ErrFavoriteNotFound
}

func (m *memoryStore) ListFavorites(_ context.Context, email string) ([]*store.Favorite, error) {
	m.mut.Lock()
	defer m.mut.Unlock()

	favorites := make([]*store.Favorite, 0)
	for _, fav := range m.favorites {
		if fav.UserEmail == email {
			copied := *fav
			favorites = append(favorites, &copied)
		}
	}

	return favorites, nil
}

func (m *memoryStore) AddFavorite(_ context.Context, fav *store.Favorite) (*store.Favorite, error) {
	if err := validID(fav.ArtworkID); err != nil {
		return nil, err
	}

	m.mut.Lock()
	defer m.mut.Unlock()

	for _, existing := range m.favorites {
		if existing.UserEmail == fav.UserEmail && existing.ArtworkID == fav.ArtworkID {
			return nil, store.ErrAlreadyFavorited
		}
	}

	fav.CreatedAt = m.now()
	copied := *fav
	m.favorites = append(m.favorites, &copied)
	return fav, nil
}

func (m *memoryStore) DeleteFavorite(_ context.Context, artworkID string) error {
	if err := validID(artworkID); err != nil {
		return err
	}

	m.mut.Lock()
	defer m.mut.Unlock()

	for i, fav := range m.favorites {
		if fav.ArtworkID == artworkID {
			m.favorites = append(m.favorites[:i], m.favorites[i+1:]...)
			return nil
		}
	}

	return store.ErrFavoriteNotFound
}

func validID(id string) error {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return store.ErrInvalidID
	}

	return nil
}

func matches(f store.ArtworkFilter, id string, artwork *store.Artwork) bool {
	if len(f.IDs) != 0 {
		var found bool
		for _, want := range f.IDs {
			if want == id {
				found = true
				break
			}
		}

		if !found {
			return false
		}
	}

	if f.Visibility != "" && artwork.Visibility != f.Visibility {
		return false
	}

	if f.ArtistEmail != "" && artwork.ArtistEmail != f.ArtistEmail {
		return false
	}

	if f.Title != "" && !strings.Contains(strings.ToLower(artwork.Title), strings.ToLower(f.Title)) {
		return false
	}

	return true
}
