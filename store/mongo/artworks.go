package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/artopia/artopia-go/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type artworkStore struct {
	client *mongo.Client
	db     *mongo.Database
	col    *mongo.Collection
}

func ArtworkStore(client *mongo.Client, database, collection string) store.ArtworkStore {
	db := client.Database(database)
	col := db.Collection(collection)

	return &artworkStore{
		client: client,
		db:     db,
		col:    col,
	}
}

func (a *artworkStore) Artwork(ctx context.Context, id string) (*store.Artwork, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	res := a.col.FindOne(ctx, bson.M{"_id": oid})

	artwork := &store.Artwork{}
	if err := res.Decode(artwork); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrArtworkNotFound
		}

		return nil, fmt.Errorf("failed to decode an artwork: %w", err)
	}

	return artwork, nil
}

func (a *artworkStore) SearchArtworks(ctx context.Context, filter store.ArtworkFilter, opts ...store.ArtworkSearchOptions) ([]*store.Artwork, error) {
	opt := store.DefaultSearchOptions()
	if len(opts) != 0 {
		opt = opts[0]
	}

	filterDoc, err := filterBSON(filter)
	if err != nil {
		return nil, err
	}

	cur, err := a.col.Find(ctx, filterDoc, findOptions(opt))
	if err != nil {
		return nil, err
	}

	artworks := make([]*store.Artwork, 0)
	err = cur.All(ctx, &artworks)
	if err != nil {
		return nil, err
	}

	return artworks, nil
}

func (a *artworkStore) CreateArtwork(ctx context.Context, artwork *store.Artwork) (*store.Artwork, error) {
	artwork.ID = primitive.NilObjectID
	artwork.Likes = 0
	artwork.LikedBy = make([]string, 0)
	artwork.CreatedAt = time.Now()

	res, err := a.col.InsertOne(ctx, artwork)
	if err != nil {
		return nil, fmt.Errorf("failed to insert an artwork: %w", err)
	}

	artwork.ID = res.InsertedID.(primitive.ObjectID)
	return artwork, nil
}

// UpdateArtwork replaces the descriptive fields wholesale; fields the
// caller left empty overwrite whatever was stored before.
func (a *artworkStore) UpdateArtwork(ctx context.Context, id string, artwork *store.Artwork) (*store.Artwork, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	res := a.col.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": descriptiveFields(artwork)},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	updated := &store.Artwork{}
	if err := res.Decode(updated); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrArtworkNotFound
		}

		return nil, fmt.Errorf("failed to decode an artwork: %w", err)
	}

	return updated, nil
}

func (a *artworkStore) DeleteArtwork(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	res, err := a.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete an artwork: %w", err)
	}

	if res.DeletedCount == 0 {
		return store.ErrArtworkNotFound
	}

	return nil
}

// LikeArtwork increments the counter and records the membership in one
// document update. The likedBy guard in the filter makes repeated likes
// from the same identity a no-match instead of a double count.
func (a *artworkStore) LikeArtwork(ctx context.Context, id string, email string) (*store.Artwork, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	res := a.col.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid, "likedBy": bson.M{"$ne": email}},
		bson.M{"$inc": bson.M{"likes": 1}, "$addToSet": bson.M{"likedBy": email}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	artwork := &store.Artwork{}
	err = res.Decode(artwork)
	if err == nil {
		return artwork, nil
	}

	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to decode an artwork: %w", err)
	}

	// No match either means the artwork is gone or the identity already
	// liked it. A second lookup tells the two apart.
	err = a.col.FindOne(ctx, bson.M{"_id": oid}).Err()
	switch {
	case err == nil:
		return nil, store.ErrAlreadyLiked
	case errors.Is(err, mongo.ErrNoDocuments):
		return nil, store.ErrArtworkNotFound
	default:
		return nil, fmt.Errorf("failed to find an artwork: %w", err)
	}
}

func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, store.ErrInvalidID
	}

	return oid, nil
}

func descriptiveFields(a *store.Artwork) bson.M {
	return bson.M{
		"title":       a.Title,
		"category":    a.Category,
		"medium":      a.Medium,
		"description": a.Description,
		"dimensions":  a.Dimensions,
		"price":       a.Price,
		"image":       a.Image,
		"visibility":  a.Visibility,
	}
}

func findOptions(a store.ArtworkSearchOptions) *options.FindOptions {
	sort := bson.M{a.Sort.String(): a.Order}

	return options.Find().SetLimit(a.Limit).SetSort(sort)
}

func filterBSON(f store.ArtworkFilter) (bson.D, error) {
	filter := bson.D{}

	if len(f.IDs) != 0 {
		oids := make([]primitive.ObjectID, 0, len(f.IDs))
		for _, id := range f.IDs {
			oid, err := objectID(id)
			if err != nil {
				return nil, err
			}

			oids = append(oids, oid)
		}

		filter = append(filter, bson.E{Key: "_id", Value: bson.M{"$in": oids}})
	}

	if f.Visibility != "" {
		filter = append(filter, bson.E{Key: "visibility", Value: f.Visibility})
	}

	if f.ArtistEmail != "" {
		filter = append(filter, bson.E{Key: "artistEmail", Value: f.ArtistEmail})
	}

	// An empty title emits no clause at all, which matches everything the
	// way an empty regex would. Empty search terms are wildcards. The term
	// is quoted so metacharacters match literally instead of breaking the
	// server-side regex.
	if f.Title != "" {
		filter = append(filter, bson.E{
			Key:   "title",
			Value: bson.D{{Key: "$regex", Value: ".*" + regexp.QuoteMeta(f.Title) + ".*"}, {Key: "$options", Value: "i"}},
		})
	}

	return filter, nil
}
