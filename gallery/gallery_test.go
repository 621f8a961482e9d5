package gallery_test

import (
	"context"
	"testing"
	"time"

	"github.com/artopia/artopia-go/auth"
	"github.com/artopia/artopia-go/gallery"
	"github.com/artopia/artopia-go/store"
	"github.com/artopia/artopia-go/store/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newGallery(t *testing.T) (*gallery.Gallery, store.Store) {
	t.Helper()

	st := memory.New()
	return gallery.New(st, zap.NewNop().Sugar()), st
}

func createArtwork(t *testing.T, g *gallery.Gallery, artist string, title string, visibility store.Visibility) *store.Artwork {
	t.Helper()

	artwork, err := g.CreateArtwork(context.Background(), artist, &store.Artwork{
		ArtistEmail: artist,
		Title:       title,
		Visibility:  visibility,
	})
	require.NoError(t, err)
	return artwork
}

// tickingClock hands out strictly increasing timestamps, making recency
// ordering deterministic regardless of platform clock resolution.
type tickingClock struct {
	t time.Time
}

func (c *tickingClock) Now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func TestPublicListingsExcludePrivate(t *testing.T) {
	g, _ := newGallery(t)
	ctx := context.Background()

	createArtwork(t, g, "artist@example.com", "Sunset", store.VisibilityPublic)
	private := createArtwork(t, g, "artist@example.com", "Hidden Sunset", store.VisibilityPrivate)

	public, err := g.PublicArtworks(ctx, "")
	require.NoError(t, err)
	assert.Len(t, public, 1)
	assert.Equal(t, "Sunset", public[0].Title)

	found, err := g.SearchArtworks(ctx, "sunset")
	require.NoError(t, err)
	assert.Len(t, found, 1)
	assert.NotEqual(t, private.ID, found[0].ID)

	featured, err := g.Featured(ctx)
	require.NoError(t, err)
	for _, artwork := range featured {
		assert.Equal(t, store.VisibilityPublic, artwork.Visibility)
	}
}

func TestPublicArtworksFilterByArtist(t *testing.T) {
	g, _ := newGallery(t)
	ctx := context.Background()

	createArtwork(t, g, "a@example.com", "First", store.VisibilityPublic)
	createArtwork(t, g, "b@example.com", "Second", store.VisibilityPublic)

	artworks, err := g.PublicArtworks(ctx, "a@example.com")
	require.NoError(t, err)
	require.Len(t, artworks, 1)
	assert.Equal(t, "a@example.com", artworks[0].ArtistEmail)
}

func TestFeaturedLimitAndOrder(t *testing.T) {
	clock := &tickingClock{t: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	g := gallery.New(memory.NewWithClock(clock.Now), zap.NewNop().Sugar())
	ctx := context.Background()

	created := make([]*store.Artwork, 0, 8)
	for i := 0; i < 8; i++ {
		created = append(created, createArtwork(t, g, "artist@example.com", "Piece", store.VisibilityPublic))
	}

	featured, err := g.Featured(ctx)
	require.NoError(t, err)
	require.Len(t, featured, 6)

	for i := 1; i < len(featured); i++ {
		assert.True(t, featured[i].CreatedAt.Before(featured[i-1].CreatedAt),
			"featured artworks must be ordered most recent first")
	}

	// The two oldest pieces fall outside the featured window.
	for _, artwork := range featured {
		assert.NotEqual(t, created[0].ID, artwork.ID)
		assert.NotEqual(t, created[1].ID, artwork.ID)
	}
}

func TestLikeIsIdempotent(t *testing.T) {
	g, _ := newGallery(t)
	ctx := context.Background()

	artwork := createArtwork(t, g, "artist@example.com", "Sunset", store.VisibilityPublic)
	id := artwork.ID.Hex()

	liked, err := g.LikeArtwork(ctx, "u1@example.com", id)
	require.NoError(t, err)
	assert.Equal(t, 1, liked.Likes)
	assert.Equal(t, []string{"u1@example.com"}, liked.LikedBy)

	_, err = g.LikeArtwork(ctx, "u1@example.com", id)
	assert.ErrorIs(t, err, store.ErrAlreadyLiked)

	after, err := g.Artwork(ctx, "u1@example.com", id)
	require.NoError(t, err)
	assert.Equal(t, 1, after.Likes)
	assert.Equal(t, []string{"u1@example.com"}, after.LikedBy)
}

func TestLikeCounterMatchesMembership(t *testing.T) {
	g, _ := newGallery(t)
	ctx := context.Background()

	artwork := createArtwork(t, g, "artist@example.com", "Sunset", store.VisibilityPublic)
	id := artwork.ID.Hex()

	for _, email := range []string{"u1@example.com", "u2@example.com", "u3@example.com"} {
		_, err := g.LikeArtwork(ctx, email, id)
		require.NoError(t, err)
	}

	after, err := g.Artwork(ctx, "u1@example.com", id)
	require.NoError(t, err)
	assert.Equal(t, len(after.LikedBy), after.Likes)
}

func TestLikeMissingArtwork(t *testing.T) {
	g, _ := newGallery(t)

	_, err := g.LikeArtwork(context.Background(), "u1@example.com", "652f4b7c8a9d3e0012345678")
	assert.ErrorIs(t, err, store.ErrArtworkNotFound)
}

func TestFavoriteIsIdempotent(t *testing.T) {
	g, st := newGallery(t)
	ctx := context.Background()

	artwork := createArtwork(t, g, "artist@example.com", "Sunset", store.VisibilityPublic)
	id := artwork.ID.Hex()

	fav, err := g.AddFavorite(ctx, "u1@example.com", id)
	require.NoError(t, err)
	assert.Equal(t, "u1@example.com", fav.UserEmail)
	assert.Equal(t, id, fav.ArtworkID)

	_, err = g.AddFavorite(ctx, "u1@example.com", id)
	assert.ErrorIs(t, err, store.ErrAlreadyFavorited)

	favorites, err := st.ListFavorites(ctx, "u1@example.com")
	require.NoError(t, err)
	assert.Len(t, favorites, 1)
}

func TestFavoritedArtworksJoin(t *testing.T) {
	g, _ := newGallery(t)
	ctx := context.Background()
	me := "u1@example.com"

	kept := createArtwork(t, g, "artist@example.com", "Kept", store.VisibilityPublic)
	deleted := createArtwork(t, g, "artist@example.com", "Deleted", store.VisibilityPublic)
	createArtwork(t, g, "artist@example.com", "Unrelated", store.VisibilityPublic)

	_, err := g.AddFavorite(ctx, me, kept.ID.Hex())
	require.NoError(t, err)
	_, err = g.AddFavorite(ctx, me, deleted.ID.Hex())
	require.NoError(t, err)

	require.NoError(t, g.DeleteArtwork(ctx, "artist@example.com", deleted.ID.Hex()))

	artworks, err := g.FavoritedArtworks(ctx, me)
	require.NoError(t, err)
	require.Len(t, artworks, 1)
	assert.Equal(t, kept.ID, artworks[0].ID)
}

func TestFavoritedArtworksBeyondDefaultSearchLimit(t *testing.T) {
	g, _ := newGallery(t)
	ctx := context.Background()
	me := "u1@example.com"

	count := 120
	for i := 0; i < count; i++ {
		artwork := createArtwork(t, g, "artist@example.com", "Piece", store.VisibilityPublic)
		_, err := g.AddFavorite(ctx, me, artwork.ID.Hex())
		require.NoError(t, err)
	}

	artworks, err := g.FavoritedArtworks(ctx, me)
	require.NoError(t, err)
	assert.Len(t, artworks, count,
		"the join must return every favorited artwork, not a default page")
}

func TestFavoritedArtworksEmpty(t *testing.T) {
	g, _ := newGallery(t)

	artworks, err := g.FavoritedArtworks(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.Empty(t, artworks)
}

func TestRemoveFavoriteIgnoresActingIdentity(t *testing.T) {
	// The remove path is keyed by artwork id only, matching the original
	// service. Any authenticated identity can remove the record.
	g, st := newGallery(t)
	ctx := context.Background()

	artwork := createArtwork(t, g, "artist@example.com", "Sunset", store.VisibilityPublic)
	id := artwork.ID.Hex()

	_, err := g.AddFavorite(ctx, "owner@example.com", id)
	require.NoError(t, err)

	require.NoError(t, g.RemoveFavorite(ctx, "intruder@example.com", id))

	favorites, err := st.ListFavorites(ctx, "owner@example.com")
	require.NoError(t, err)
	assert.Empty(t, favorites)
}

func TestSearchNoMatches(t *testing.T) {
	g, _ := newGallery(t)

	createArtwork(t, g, "artist@example.com", "Sunset", store.VisibilityPublic)

	artworks, err := g.SearchArtworks(context.Background(), "tree")
	require.NoError(t, err)
	assert.Empty(t, artworks)
}

func TestSearchEmptyTermIsWildcard(t *testing.T) {
	g, _ := newGallery(t)
	ctx := context.Background()

	createArtwork(t, g, "artist@example.com", "Sunset", store.VisibilityPublic)
	createArtwork(t, g, "artist@example.com", "Moonrise", store.VisibilityPublic)
	createArtwork(t, g, "artist@example.com", "Secret", store.VisibilityPrivate)

	artworks, err := g.SearchArtworks(ctx, "")
	require.NoError(t, err)
	assert.Len(t, artworks, 2)
}

func TestUpdateReplacesDescriptiveFields(t *testing.T) {
	g, _ := newGallery(t)
	ctx := context.Background()
	me := "artist@example.com"

	artwork, err := g.CreateArtwork(ctx, me, &store.Artwork{
		ArtistEmail: me,
		Title:       "Sunset",
		Category:    "painting",
		Description: "evening scene",
		Visibility:  store.VisibilityPublic,
	})
	require.NoError(t, err)

	updated, err := g.UpdateArtwork(ctx, me, artwork.ID.Hex(), &store.Artwork{
		Title:      "Sunrise",
		Visibility: store.VisibilityPublic,
	})
	require.NoError(t, err)

	assert.Equal(t, "Sunrise", updated.Title)
	// Full replacement: fields absent from the payload are wiped.
	assert.Empty(t, updated.Category)
	assert.Empty(t, updated.Description)
	// Identity and counters stay untouched by updates.
	assert.Equal(t, me, updated.ArtistEmail)
	assert.Equal(t, artwork.CreatedAt, updated.CreatedAt)
	assert.Equal(t, 0, updated.Likes)
}

func TestIdentityRequired(t *testing.T) {
	g, _ := newGallery(t)
	ctx := context.Background()
	id := "652f4b7c8a9d3e0012345678"

	tests := []struct {
		name string
		call func() error
	}{
		{"all artworks", func() error { _, err := g.AllArtworks(ctx, "", ""); return err }},
		{"single artwork", func() error { _, err := g.Artwork(ctx, "", id); return err }},
		{"create", func() error { _, err := g.CreateArtwork(ctx, "", &store.Artwork{}); return err }},
		{"update", func() error { _, err := g.UpdateArtwork(ctx, "", id, &store.Artwork{}); return err }},
		{"delete", func() error { return g.DeleteArtwork(ctx, "", id) }},
		{"like", func() error { _, err := g.LikeArtwork(ctx, "", id); return err }},
		{"add favorite", func() error { _, err := g.AddFavorite(ctx, "", id); return err }},
		{"remove favorite", func() error { return g.RemoveFavorite(ctx, "", id) }},
		{"get favorite", func() error { _, err := g.Favorite(ctx, "", id); return err }},
		{"list favorites", func() error { _, err := g.Favorites(ctx, ""); return err }},
		{"favorited artworks", func() error { _, err := g.FavoritedArtworks(ctx, ""); return err }},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.ErrorIs(t, test.call(), auth.ErrUnauthorized)
		})
	}
}

func TestMalformedID(t *testing.T) {
	g, _ := newGallery(t)
	ctx := context.Background()
	me := "u1@example.com"

	tests := []struct {
		name string
		call func() error
	}{
		{"single artwork", func() error { _, err := g.Artwork(ctx, me, "malformed-id"); return err }},
		{"update", func() error { _, err := g.UpdateArtwork(ctx, me, "malformed-id", &store.Artwork{}); return err }},
		{"delete", func() error { return g.DeleteArtwork(ctx, me, "malformed-id") }},
		{"like", func() error { _, err := g.LikeArtwork(ctx, me, "malformed-id"); return err }},
		{"add favorite", func() error { _, err := g.AddFavorite(ctx, me, "malformed-id"); return err }},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.ErrorIs(t, test.call(), store.ErrInvalidID)
		})
	}
}

func TestCreateStampsCounters(t *testing.T) {
	g, _ := newGallery(t)

	artwork, err := g.CreateArtwork(context.Background(), "artist@example.com", &store.Artwork{
		ArtistEmail: "someone-else@example.com",
		Title:       "Sunset",
		Visibility:  store.VisibilityPublic,
		Likes:       42,
	})
	require.NoError(t, err)

	assert.Equal(t, 0, artwork.Likes)
	assert.Empty(t, artwork.LikedBy)
	assert.False(t, artwork.CreatedAt.IsZero())
	assert.False(t, artwork.ID.IsZero())
	// The payload's artistEmail is trusted as-is, not overwritten with the
	// acting identity.
	assert.Equal(t, "someone-else@example.com", artwork.ArtistEmail)
}

func TestAllArtworksIgnoresVisibility(t *testing.T) {
	g, _ := newGallery(t)
	ctx := context.Background()

	createArtwork(t, g, "a@example.com", "Shown", store.VisibilityPublic)
	createArtwork(t, g, "b@example.com", "Hidden", store.VisibilityPrivate)

	artworks, err := g.AllArtworks(ctx, "anyone@example.com", "")
	require.NoError(t, err)
	assert.Len(t, artworks, 2)

	scoped, err := g.AllArtworks(ctx, "anyone@example.com", "b@example.com")
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, "Hidden", scoped[0].Title)
}
