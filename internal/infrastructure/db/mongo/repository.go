package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/brahmakosh/admin-backend/internal/core/domain"
)

// Collection and field names follow the documents already stored by the
// service, so existing data keeps working.
const (
	collectionAdmins  = "admins"
	collectionClients = "clients"
	collectionUsers   = "users"

	fieldID            = "_id"
	fieldEmail         = "email"
	fieldPassword      = "password"
	fieldRole          = "role"
	fieldIsActive      = "isActive"
	fieldLoginApproved = "loginApproved"
	fieldAdminID       = "adminId"
	fieldClientID      = "clientId"
	fieldCreatedAt     = "createdAt"
)

// withoutCredential excludes the password digest from query results.
var withoutCredential = bson.M{fieldPassword: 0}

// objectID parses a hex id. ok is false for malformed ids, which callers
// treat as "matches nothing".
func objectID(hex string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

// optionalObjectID parses a reference that may be empty.
func optionalObjectID(hex string) primitive.ObjectID {
	if hex == "" {
		return primitive.NilObjectID
	}
	id, _ := objectID(hex)
	return id
}

func hexOrEmpty(id primitive.ObjectID) string {
	if id.IsZero() {
		return ""
	}
	return id.Hex()
}

// errNoMatch marks a filter that can never match, such as one built from a
// malformed id.
var errNoMatch = errors.New("filter matches nothing")

func findOne[D any](ctx context.Context, coll *mongo.Collection, filter bson.M, withHash bool) (*D, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOne().SetSort(bson.D{{Key: fieldCreatedAt, Value: -1}})
	if !withHash {
		opts.SetProjection(withoutCredential)
	}

	var doc D
	if err := coll.FindOne(ctx, filter, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find %s: %w", coll.Name(), err)
	}
	return &doc, nil
}

func findMany[D any](ctx context.Context, coll *mongo.Collection, filter bson.M) ([]D, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetProjection(withoutCredential).
		SetSort(bson.D{{Key: fieldCreatedAt, Value: -1}})

	cur, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", coll.Name(), err)
	}
	docs := make([]D, 0)
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode %s: %w", coll.Name(), err)
	}
	return docs, nil
}

func count(ctx context.Context, coll *mongo.Collection, filter bson.M) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", coll.Name(), err)
	}
	return n, nil
}

func insert(ctx context.Context, coll *mongo.Collection, doc any) (primitive.ObjectID, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, domain.ErrDuplicate
		}
		return primitive.NilObjectID, fmt.Errorf("insert %s: %w", coll.Name(), err)
	}
	id, _ := res.InsertedID.(primitive.ObjectID)
	return id, nil
}

// update sets fields on the document with id. The password field is only
// written when passwordHash is non-empty.
func update(ctx context.Context, coll *mongo.Collection, hexID string, fields bson.M, passwordHash string) error {
	id, ok := objectID(hexID)
	if !ok {
		return domain.ErrNotFound
	}
	if passwordHash != "" {
		fields[fieldPassword] = passwordHash
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := coll.UpdateOne(ctx, bson.M{fieldID: id}, bson.M{"$set": fields})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update %s: %w", coll.Name(), err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func setBool(filter bson.M, field string, v *bool) {
	if v != nil {
		filter[field] = *v
	}
}

func setID(filter bson.M, field, hex string) error {
	if hex == "" {
		return nil
	}
	id, ok := objectID(hex)
	if !ok {
		return errNoMatch
	}
	filter[field] = id
	return nil
}

func utcOrZero(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	return t.UTC()
}

// ensureIndexes creates the unique email index plus any extra single-field
// indexes on coll.
func ensureIndexes(ctx context.Context, coll *mongo.Collection, fields ...string) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: fieldEmail, Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	for _, f := range fields {
		indexes = append(indexes, mongo.IndexModel{Keys: bson.D{{Key: f, Value: 1}}})
	}

	if _, err := coll.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("create %s indexes: %w", coll.Name(), err)
	}
	return nil
}
