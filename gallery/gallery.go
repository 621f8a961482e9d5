// Package gallery holds the domain rules of the marketplace: which reads
// are public, which operations need a resolved identity, and how artwork
// and favorite records compose.
package gallery

import (
	"context"

	"github.com/artopia/artopia-go/auth"
	"github.com/artopia/artopia-go/store"
	"go.uber.org/zap"
)

type Gallery struct {
	store store.Store
	log   *zap.SugaredLogger
}

func New(s store.Store, log *zap.SugaredLogger) *Gallery {
	return &Gallery{
		store: s,
		log:   log,
	}
}

// Featured returns the six most recent public artworks.
func (g *Gallery) Featured(ctx context.Context) ([]*store.Artwork, error) {
	return g.store.SearchArtworks(
		ctx,
		store.ArtworkFilter{Visibility: store.VisibilityPublic},
		store.FeaturedSearchOptions(),
	)
}

// PublicArtworks lists public artworks, optionally narrowed to one artist.
func (g *Gallery) PublicArtworks(ctx context.Context, artistEmail string) ([]*store.Artwork, error) {
	return g.store.SearchArtworks(ctx, store.ArtworkFilter{
		Visibility:  store.VisibilityPublic,
		ArtistEmail: artistEmail,
	})
}

// SearchArtworks matches public artworks whose title contains the term,
// case-insensitively. An empty term matches everything public.
func (g *Gallery) SearchArtworks(ctx context.Context, term string) ([]*store.Artwork, error) {
	return g.store.SearchArtworks(ctx, store.ArtworkFilter{
		Visibility: store.VisibilityPublic,
		Title:      term,
	})
}

// AllArtworks ignores visibility; any authenticated identity sees every
// artist's work, optionally narrowed to one artist.
func (g *Gallery) AllArtworks(ctx context.Context, identity string, artistEmail string) ([]*store.Artwork, error) {
	if err := requireIdentity(identity); err != nil {
		return nil, err
	}

	return g.store.SearchArtworks(ctx, store.ArtworkFilter{ArtistEmail: artistEmail})
}

func (g *Gallery) Artwork(ctx context.Context, identity string, id string) (*store.Artwork, error) {
	if err := requireIdentity(identity); err != nil {
		return nil, err
	}

	return g.store.Artwork(ctx, id)
}

// CreateArtwork stores a new artwork. The payload's artistEmail is taken
// as-is and not overwritten with the acting identity, matching the
// observed behavior of the original service.
func (g *Gallery) CreateArtwork(ctx context.Context, identity string, artwork *store.Artwork) (*store.Artwork, error) {
	if err := requireIdentity(identity); err != nil {
		return nil, err
	}

	created, err := g.store.CreateArtwork(ctx, artwork)
	if err != nil {
		return nil, err
	}

	g.log.Infow("artwork created", "id", created.ID.Hex(), "artist", created.ArtistEmail)
	return created, nil
}

func (g *Gallery) UpdateArtwork(ctx context.Context, identity string, id string, artwork *store.Artwork) (*store.Artwork, error) {
	if err := requireIdentity(identity); err != nil {
		return nil, err
	}

	return g.store.UpdateArtwork(ctx, id, artwork)
}

func (g *Gallery) DeleteArtwork(ctx context.Context, identity string, id string) error {
	if err := requireIdentity(identity); err != nil {
		return err
	}

	if err := g.store.DeleteArtwork(ctx, id); err != nil {
		return err
	}

	g.log.Infow("artwork deleted", "id", id, "by", identity)
	return nil
}

// LikeArtwork records a like for the acting identity. Liking is one-way
// and idempotency violations surface as store.ErrAlreadyLiked.
func (g *Gallery) LikeArtwork(ctx context.Context, identity string, id string) (*store.Artwork, error) {
	if err := requireIdentity(identity); err != nil {
		return nil, err
	}

	return g.store.LikeArtwork(ctx, id, identity)
}

func (g *Gallery) AddFavorite(ctx context.Context, identity string, artworkID string) (*store.Favorite, error) {
	if err := requireIdentity(identity); err != nil {
		return nil, err
	}

	return g.store.AddFavorite(ctx, &store.Favorite{
		UserEmail: identity,
		ArtworkID: artworkID,
	})
}

// RemoveFavorite deletes the favorite record for the artwork. Removal is
// keyed by artwork id only; see DESIGN.md on the ownership gap.
func (g *Gallery) RemoveFavorite(ctx context.Context, identity string, artworkID string) error {
	if err := requireIdentity(identity); err != nil {
		return err
	}

	return g.store.DeleteFavorite(ctx, artworkID)
}

func (g *Gallery) Favorite(ctx context.Context, identity string, artworkID string) (*store.Favorite, error) {
	if err := requireIdentity(identity); err != nil {
		return nil, err
	}

	return g.store.Favorite(ctx, identity, artworkID)
}

func (g *Gallery) Favorites(ctx context.Context, identity string) ([]*store.Favorite, error) {
	if err := requireIdentity(identity); err != nil {
		return nil, err
	}

	return g.store.ListFavorites(ctx, identity)
}

// FavoritedArtworks joins the identity's favorite records against the
// artwork collection in one batch lookup. Favorites whose artwork has
// been deleted drop out of the result silently.
func (g *Gallery) FavoritedArtworks(ctx context.Context, identity string) ([]*store.Artwork, error) {
	if err := requireIdentity(identity); err != nil {
		return nil, err
	}

	favorites, err := g.store.ListFavorites(ctx, identity)
	if err != nil {
		return nil, err
	}

	if len(favorites) == 0 {
		return []*store.Artwork{}, nil
	}

	ids := make([]string, 0, len(favorites))
	for _, fav := range favorites {
		ids = append(ids, fav.ArtworkID)
	}

	// The default search limit would truncate large collections; a batch
	// lookup must return every favorited artwork that still exists.
	return g.store.SearchArtworks(ctx, store.ArtworkFilter{IDs: ids}, store.ArtworkSearchOptions{
		Limit: int64(len(ids)),
		Order: store.Descending,
		Sort:  store.ByTime,
	})
}

func requireIdentity(identity string) error {
	if identity == "" {
		return auth.ErrUnauthorized
	}

	return nil
}
