package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// DefaultCollection is the collection MongoStorage uses unless told otherwise.
const DefaultCollection = "users"

// userDocument is the persisted shape of a User.
type userDocument struct {
	ID           string    `bson:"_id"`
	Username     string    `bson:"username"`
	PasswordHash string    `bson:"password_hash,omitempty"`
	PasswordSalt string    `bson:"password_salt,omitempty"`
	Provider     string    `bson:"provider,omitempty"`
	ExternalID   string    `bson:"external_id,omitempty"`
	Secrets      []string  `bson:"secrets"`
	CreatedAt    time.Time `bson:"created_at"`
}

func (d userDocument) toUser() (*User, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: bad id %q", ErrInvalidAccount, d.ID)
	}
	acc, err := accountFromFields(d.PasswordHash, d.PasswordSalt, d.Provider, d.ExternalID)
	if err != nil {
		return nil, err
	}
	secrets := d.Secrets
	if secrets == nil {
		secrets = []string{}
	}
	return &User{
		ID:        id,
		Username:  d.Username,
		Account:   acc,
		Secrets:   secrets,
		CreatedAt: d.CreatedAt,
	}, nil
}

// MongoStorage stores users in a MongoDB collection.
type MongoStorage struct {
	coll *mongo.Collection
}

var _ Storage = (*MongoStorage)(nil)

// MongoOption configures a MongoStorage.
type MongoOption func(*mongoSettings)

type mongoSettings struct {
	collection string
}

// WithCollection overrides DefaultCollection. An empty name keeps it.
func WithCollection(name string) MongoOption {
	return func(s *mongoSettings) {
		if name != "" {
			s.collection = name
		}
	}
}

func NewMongoStorage(db *mongo.Database, opts ...MongoOption) *MongoStorage {
	settings := mongoSettings{collection: DefaultCollection}
	for _, opt := range opts {
		opt(&settings)
	}
	return &MongoStorage{coll: db.Collection(settings.collection)}
}

// EnsureIndexes creates the unique username index and the partial unique
// index on (provider, external_id).
func (s *MongoStorage) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetName("username_unique").SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "provider", Value: 1}, {Key: "external_id", Value: 1}},
			Options: options.Index().
				SetName("provider_external_id_unique").
				SetUnique(true).
				SetPartialFilterExpression(bson.D{{Key: "external_id", Value: bson.D{{Key: "$exists", Value: true}}}}),
		},
	})
	if err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}

func (s *MongoStorage) FindByUsername(ctx context.Context, username string) (*User, error) {
	return s.findOne(ctx, bson.D{{Key: "username", Value: username}})
}

func (s *MongoStorage) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.findOne(ctx, bson.D{{Key: "_id", Value: id.String()}})
}

func (s *MongoStorage) CreateLocal(ctx context.Context, username string, acc LocalAccount) (*User, error) {
	if _, err := accountFromFields(acc.PasswordHash, acc.PasswordSalt, "", ""); err != nil {
		return nil, err
	}

	doc := userDocument{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: acc.PasswordHash,
		PasswordSalt: acc.PasswordSalt,
		Secrets:      []string{},
		CreatedAt:    time.Now().UTC().Truncate(time.Millisecond),
	}
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateUsername
		}
		return nil, errors.Join(ErrStoreUnavailable, err)
	}
	return doc.toUser()
}

// CreateOrFindFederated upserts on (provider, external_id). Two concurrent
// upserts can both miss and race on the unique index; the loser re-reads
// the winner's document.
func (s *MongoStorage) CreateOrFindFederated(ctx context.Context, acc FederatedAccount, derivedUsername string) (*User, error) {
	if _, err := accountFromFields("", "", acc.Provider, acc.ExternalID); err != nil {
		return nil, err
	}

	filter := bson.D{
		{Key: "provider", Value: acc.Provider},
		{Key: "external_id", Value: acc.ExternalID},
	}
	update := bson.D{{Key: "$setOnInsert", Value: bson.D{
		{Key: "_id", Value: uuid.NewString()},
		{Key: "username", Value: derivedUsername},
		{Key: "secrets", Value: bson.A{}},
		{Key: "created_at", Value: time.Now().UTC().Truncate(time.Millisecond)},
	}}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc userDocument
	err := s.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if err == nil {
		return doc.toUser()
	}
	if !mongo.IsDuplicateKeyError(err) {
		return nil, errors.Join(ErrStoreUnavailable, err)
	}

	u, err := s.findOne(ctx, filter)
	if errors.Is(err, ErrUserNotFound) {
		// The key that collided was the username, not the external id.
		return nil, ErrDuplicateUsername
	}
	return u, err
}

func (s *MongoStorage) AppendSecret(ctx context.Context, id uuid.UUID, text string) error {
	res, err := s.coll.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id.String()}},
		bson.D{{Key: "$push", Value: bson.D{{Key: "secrets", Value: text}}}},
	)
	if err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *MongoStorage) findOne(ctx context.Context, filter bson.D) (*User, error) {
	var doc userDocument
	if err := s.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, errors.Join(ErrStoreUnavailable, err)
	}
	return doc.toUser()
}
