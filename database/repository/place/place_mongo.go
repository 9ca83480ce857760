package placeRepo

import (
	"context"
	"fmt"
	"time"

	"placemate/database"
	"placemate/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoPlaceRepo implements PlaceRepository using MongoDB.
type MongoPlaceRepo struct {
	coll *mongo.Collection
}

// NewMongoPlaceRepo creates a new instance of PlaceRepository using MongoDB.
func NewMongoPlaceRepo() PlaceRepository {
	coll := database.MongoClient.Database("placemate").Collection("places")
	repo := &MongoPlaceRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoPlaceRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "listName", Value: 1}}},
		{Keys: bson.D{{Key: "externalId", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetAll returns every saved place, preserving insertion order.
func (r *MongoPlaceRepo) GetAll() ([]models.Place, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch places: %w", err)
	}
	defer cursor.Close(ctx)

	var places []models.Place
	if err := cursor.All(ctx, &places); err != nil {
		return nil, fmt.Errorf("failed to decode places: %w", err)
	}
	return places, nil
}

// GetByListName returns the places belonging to one named list.
func (r *MongoPlaceRepo) GetByListName(name string) ([]models.Place, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"listName": name}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch places for list %q: %w", name, err)
	}
	defer cursor.Close(ctx)

	var places []models.Place
	if err := cursor.All(ctx, &places); err != nil {
		return nil, fmt.Errorf("failed to decode places: %w", err)
	}
	return places, nil
}

// GetByID retrieves a place by its unique id. Returns nil when absent.
func (r *MongoPlaceRepo) GetByID(id string) (*models.Place, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var place models.Place
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&place); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch place with id %s: %w", id, err)
	}
	return &place, nil
}

// BulkUpsert writes a batch of imported places, replacing existing documents
// with the same id. Returns the number of places written.
func (r *MongoPlaceRepo) BulkUpsert(places []models.Place) (int, error) {
	if len(places) == 0 {
		return 0, nil
	}

	ctx, cancel := newContext(30 * time.Second)
	defer cancel()

	writeModels := make([]mongo.WriteModel, 0, len(places))
	for _, p := range places {
		writeModels = append(writeModels, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"id": p.ID}).
			SetReplacement(p).
			SetUpsert(true))
	}

	res, err := r.coll.BulkWrite(ctx, writeModels, options.BulkWrite().SetOrdered(false))
	if err != nil {
		return 0, fmt.Errorf("failed to bulk upsert places: %w", err)
	}
	return int(res.UpsertedCount + res.ModifiedCount + res.MatchedCount), nil
}

// Delete removes a place by id.
func (r *MongoPlaceRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete place with id %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("place with id %s not found", id)
	}
	return nil
}

// UpdateCoordinates sets the resolved coordinates for one place.
func (r *MongoPlaceRepo) UpdateCoordinates(id string, geo models.GeoPoint) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id},
		bson.M{"$set": bson.M{"coordinates": geo}})
	if err != nil {
		return fmt.Errorf("failed to update coordinates for place %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("place with id %s not found", id)
	}
	return nil
}

// ListNames returns the distinct saved-list names.
func (r *MongoPlaceRepo) ListNames() ([]string, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	raw, err := r.coll.Distinct(ctx, "listName", bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch list names: %w", err)
	}

	names := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			names = append(names, s)
		}
	}
	return names, nil
}

// MissingCoordinates returns up to limit places that still need coordinate
// resolution.
func (r *MongoPlaceRepo) MissingCoordinates(limit int) ([]models.Place, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.coll.Find(ctx, bson.M{"coordinates": bson.M{"$exists": false}}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch places missing coordinates: %w", err)
	}
	defer cursor.Close(ctx)

	var places []models.Place
	if err := cursor.All(ctx, &places); err != nil {
		return nil, fmt.Errorf("failed to decode places: %w", err)
	}
	return places, nil
}
