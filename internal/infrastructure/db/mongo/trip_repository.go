package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/globetrotter/trip-planner-api/internal/core/domain"
)

const tripCollection = "trips"

type MongoTripRepository struct {
	coll *mongo.Collection
}

func NewTripRepository(db *mongo.Database) *MongoTripRepository {
	return &MongoTripRepository{coll: db.Collection(tripCollection)}
}

type mongoTrip struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	OwnerID     string             `bson:"owner_id"`
	Title       string             `bson:"title"`
	Destination string             `bson:"destination"`
	StartDate   time.Time          `bson:"start_date"`
	EndDate     time.Time          `bson:"end_date"`
	Notes       string             `bson:"notes,omitempty"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (mt *mongoTrip) toDomain() *domain.Trip {
	return &domain.Trip{
		ID:          mt.ID.Hex(),
		OwnerID:     mt.OwnerID,
		Title:       mt.Title,
		Destination: mt.Destination,
		StartDate:   mt.StartDate,
		EndDate:     mt.EndDate,
		Notes:       mt.Notes,
		CreatedAt:   mt.CreatedAt,
		UpdatedAt:   mt.UpdatedAt,
	}
}

func (r *MongoTripRepository) Create(ctx context.Context, trip *domain.Trip) (*domain.Trip, error) {
	doc := mongoTrip{
		OwnerID:     trip.OwnerID,
		Title:       trip.Title,
		Destination: trip.Destination,
		StartDate:   trip.StartDate,
		EndDate:     trip.EndDate,
		Notes:       trip.Notes,
		CreatedAt:   trip.CreatedAt,
		UpdatedAt:   trip.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert trip: %w", err)
	}

	created := *trip
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *MongoTripRepository) FindByID(ctx context.Context, id string) (*domain.Trip, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrTripNotFound
	}

	var mt mongoTrip
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mt); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrTripNotFound
		}
		return nil, fmt.Errorf("find trip: %w", err)
	}
	return mt.toDomain(), nil
}

func (r *MongoTripRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Trip, error) {
	opts := options.Find().SetSort(bson.D{{Key: "start_date", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{"owner_id": ownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}
	defer cur.Close(ctx)

	var trips []*domain.Trip
	for cur.Next(ctx) {
		var mt mongoTrip
		if err := cur.Decode(&mt); err != nil {
			return nil, fmt.Errorf("decode trip: %w", err)
		}
		trips = append(trips, mt.toDomain())
	}
	return trips, cur.Err()
}

func (r *MongoTripRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrTripNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete trip: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrTripNotFound
	}
	return nil
}

func (r *MongoTripRepository) DeleteByOwner(ctx context.Context, ownerID string) error {
	if _, err := r.coll.DeleteMany(ctx, bson.M{"owner_id": ownerID}); err != nil {
		return fmt.Errorf("delete trips by owner: %w", err)
	}
	return nil
}

// FindResource satisfies the ownership middleware's ResourceFinder contract.
func (r *MongoTripRepository) FindResource(ctx context.Context, id string) (*domain.Resource, error) {
	trip, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return trip.AsResource(), nil
}
