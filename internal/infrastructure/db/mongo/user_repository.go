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

const userCollection = "users"

// publicProjection excludes the secret fields from every default read; only
// the dedicated WithSecret/WithSession lookups see them.
var publicProjection = bson.M{
	"password_hash":      0,
	"verification_token": 0,
	"reset_token_hash":   0,
	"reset_expires_at":   0,
	"refresh_token_hash": 0,
}

type MongoUserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{coll: db.Collection(userCollection)}
}

// EnsureIndexes creates the unique email index registration relies on for its
// conflict semantics. Call once at startup.
func (r *MongoUserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create email index: %w", err)
	}
	return nil
}

type mongoUser struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	Name              string             `bson:"name"`
	Email             string             `bson:"email"`
	Phone             string             `bson:"phone,omitempty"`
	Country           string             `bson:"country,omitempty"`
	City              string             `bson:"city,omitempty"`
	AvatarURL         string             `bson:"avatar_url,omitempty"`
	PasswordHash      string             `bson:"password_hash,omitempty"`
	Role              string             `bson:"role"`
	IsVerified        bool               `bson:"is_verified"`
	VerificationToken string             `bson:"verification_token,omitempty"`
	ResetTokenHash    string             `bson:"reset_token_hash,omitempty"`
	ResetExpiresAt    *time.Time         `bson:"reset_expires_at,omitempty"`
	RefreshTokenHash  string             `bson:"refresh_token_hash,omitempty"`
	LastLoginAt       *time.Time         `bson:"last_login_at,omitempty"`
	CreatedAt         time.Time          `bson:"created_at"`
	UpdatedAt         time.Time          `bson:"updated_at"`
}

func (mu *mongoUser) toDomain() *domain.User {
	return &domain.User{
		ID:                mu.ID.Hex(),
		Name:              mu.Name,
		Email:             mu.Email,
		Phone:             mu.Phone,
		Country:           mu.Country,
		City:              mu.City,
		AvatarURL:         mu.AvatarURL,
		PasswordHash:      mu.PasswordHash,
		Role:              mu.Role,
		IsVerified:        mu.IsVerified,
		VerificationToken: mu.VerificationToken,
		ResetTokenHash:    mu.ResetTokenHash,
		ResetExpiresAt:    mu.ResetExpiresAt,
		RefreshTokenHash:  mu.RefreshTokenHash,
		LastLoginAt:       mu.LastLoginAt,
		CreatedAt:         mu.CreatedAt,
		UpdatedAt:         mu.UpdatedAt,
	}
}

func (r *MongoUserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	doc := mongoUser{
		Name:              user.Name,
		Email:             user.Email,
		Phone:             user.Phone,
		Country:           user.Country,
		City:              user.City,
		AvatarURL:         user.AvatarURL,
		PasswordHash:      user.PasswordHash,
		Role:              user.Role,
		IsVerified:        user.IsVerified,
		VerificationToken: user.VerificationToken,
		CreatedAt:         user.CreatedAt,
		UpdatedAt:         user.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created := *user
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *MongoUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid}, publicProjection)
}

func (r *MongoUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email}, publicProjection)
}

func (r *MongoUserRepository) FindByEmailWithSecret(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email}, nil)
}

func (r *MongoUserRepository) FindByIDWithSession(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid}, nil)
}

func (r *MongoUserRepository) FindByVerificationToken(ctx context.Context, token string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"verification_token": token}, publicProjection)
}

func (r *MongoUserRepository) FindByResetTokenHash(ctx context.Context, hash string, now time.Time) (*domain.User, error) {
	filter := bson.M{
		"reset_token_hash": hash,
		"reset_expires_at": bson.M{"$gt": now},
	}
	return r.findOne(ctx, filter, publicProjection)
}

func (r *MongoUserRepository) MarkVerified(ctx context.Context, id string) error {
	return r.updateByID(ctx, id, bson.M{
		"$set":   bson.M{"is_verified": true, "updated_at": time.Now().UTC()},
		"$unset": bson.M{"verification_token": ""},
	})
}

func (r *MongoUserRepository) StoreSession(ctx context.Context, id, refreshHash string, loginAt time.Time) error {
	return r.updateByID(ctx, id, bson.M{
		"$set": bson.M{
			"refresh_token_hash": refreshHash,
			"last_login_at":      loginAt,
			"updated_at":         loginAt,
		},
	})
}

func (r *MongoUserRepository) ClearSession(ctx context.Context, id string) error {
	return r.updateByID(ctx, id, bson.M{
		"$set":   bson.M{"updated_at": time.Now().UTC()},
		"$unset": bson.M{"refresh_token_hash": ""},
	})
}

func (r *MongoUserRepository) SetResetToken(ctx context.Context, id, hash string, expiresAt time.Time) error {
	return r.updateByID(ctx, id, bson.M{
		"$set": bson.M{
			"reset_token_hash": hash,
			"reset_expires_at": expiresAt,
			"updated_at":       time.Now().UTC(),
		},
	})
}

func (r *MongoUserRepository) ClearResetToken(ctx context.Context, id string) error {
	return r.updateByID(ctx, id, bson.M{
		"$set":   bson.M{"updated_at": time.Now().UTC()},
		"$unset": bson.M{"reset_token_hash": "", "reset_expires_at": ""},
	})
}

// ResetPassword is a single document write: the new hash goes in, the pending
// reset fields and the session fingerprint go out, atomically.
func (r *MongoUserRepository) ResetPassword(ctx context.Context, id, passwordHash string) error {
	return r.updateByID(ctx, id, bson.M{
		"$set": bson.M{"password_hash": passwordHash, "updated_at": time.Now().UTC()},
		"$unset": bson.M{
			"reset_token_hash":   "",
			"reset_expires_at":   "",
			"refresh_token_hash": "",
		},
	})
}

func (r *MongoUserRepository) UpdateRole(ctx context.Context, id, role string) error {
	return r.updateByID(ctx, id, bson.M{
		"$set": bson.M{"role": role, "updated_at": time.Now().UTC()},
	})
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M, projection bson.M) (*domain.User, error) {
	opts := options.FindOne()
	if projection != nil {
		opts.SetProjection(projection)
	}

	var mu mongoUser
	if err := r.coll.FindOne(ctx, filter, opts).Decode(&mu); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return mu.toDomain(), nil
}

func (r *MongoUserRepository) updateByID(ctx context.Context, id string, update bson.M) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
