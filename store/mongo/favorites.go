package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/artopia/artopia-go/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

type favoriteStore struct {
	client *mongo.Client
	db     *mongo.Database
	col    *mongo.Collection
}

func FavoriteStore(client *mongo.Client, database, collection string) store.FavoriteStore {
	db := client.Database(database)
	col := db.Collection(collection)

	return &favoriteStore{
		client: client,
		db:     db,
		col:    col,
	}
}

func (f *favoriteStore) Favorite(ctx context.Context, email string, artworkID string) (*store.Favorite, error) {
	if _, err := objectID(artworkID); err != nil {
		return nil, err
	}

	res := f.col.FindOne(ctx, bson.M{"userEmail": email, "id": artworkID})

	fav := &store.Favorite{}
	if err := res.Decode(fav); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrFavoriteNotFound
		}

		return nil, fmt.Errorf("failed to decode a favorite: %w", err)
	}

	return fav, nil
}

func (f *favoriteStore) ListFavorites(ctx context.Context, email string) ([]*store.Favorite, error) {
	cur, err := f.col.Find(
		ctx,
		bson.M{"userEmail": email},
		options.Find().SetSort(bson.M{"created_at": store.Descending}),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to find favorites: %w", err)
	}

	favorites := make([]*store.Favorite, 0)
	if err := cur.All(ctx, &favorites); err != nil {
		return nil, fmt.Errorf("failed to decode favorites: %w", err)
	}

	return favorites, nil
}

// AddFavorite rejects duplicates on the (userEmail, id) pair. The check
// and the insert run inside one session transaction; plain storage-level
// uniqueness is not assumed.
func (f *favoriteStore) AddFavorite(ctx context.Context, fav *store.Favorite) (*store.Favorite, error) {
	if _, err := objectID(fav.ArtworkID); err != nil {
		return nil, err
	}

	wc := writeconcern.Majority()
	rc := readconcern.Snapshot()
	txnOpts := options.Transaction().SetWriteConcern(wc).SetReadConcern(rc)

	session, err := f.client.StartSession()
	if err != nil {
		return nil, fmt.Errorf("failed to start a session: %w", err)
	}

	defer session.EndSession(ctx)

	callback := func(sessionCtx mongo.SessionContext) (interface{}, error) {
		err := f.col.FindOne(sessionCtx, bson.M{"userEmail": fav.UserEmail, "id": fav.ArtworkID}).Err()
		if err == nil {
			return nil, store.ErrAlreadyFavorited
		}

		if !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("failed to find a favorite: %w", err)
		}

		fav.CreatedAt = time.Now()
		if _, err := f.col.InsertOne(sessionCtx, fav); err != nil {
			return nil, fmt.Errorf("failed to insert a favorite: %w", err)
		}

		return fav, nil
	}

	res, err := session.WithTransaction(ctx, callback, txnOpts)
	if err != nil {
		return nil, err
	}

	return res.(*store.Favorite), nil
}

// DeleteFavorite removes by artwork id alone, matching the observed
// behavior of the original service. See DESIGN.md on the ownership gap.
func (f *favoriteStore) DeleteFavorite(ctx context.Context, artworkID string) error {
	if _, err := objectID(artworkID); err != nil {
		return err
	}

	res, err := f.col.DeleteOne(ctx, bson.M{"id": artworkID})
	if err != nil {
		return fmt.Errorf("failed to delete a favorite: %w", err)
	}

	if res.DeletedCount == 0 {
		return store.ErrFavoriteNotFound
	}

	return nil
}
