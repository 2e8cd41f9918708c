package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/brahmakosh/admin-backend/internal/core/domain"
	"github.com/brahmakosh/admin-backend/internal/core/ports"
)

// UserRepository implements ports.UserStore on the users collection.
type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(collectionUsers)}
}

type mongoProfile struct {
	Name         string     `bson:"name,omitempty"`
	DOB          *time.Time `bson:"dob,omitempty"`
	PlaceOfBirth string     `bson:"placeOfBirth,omitempty"`
	TimeOfBirth  string     `bson:"timeOfBirth,omitempty"`
	Gotra        string     `bson:"gowthra,omitempty"`
	Profession   string     `bson:"profession,omitempty"`
}

type mongoUser struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Email         string             `bson:"email"`
	Password      string             `bson:"password,omitempty"`
	Profile       mongoProfile       `bson:"profile"`
	ClientID      primitive.ObjectID `bson:"clientId,omitempty"`
	CreatedBy     primitive.ObjectID `bson:"createdBy,omitempty"`
	IsActive      bool               `bson:"isActive"`
	LoginApproved bool               `bson:"loginApproved"`
	CreatedAt     time.Time          `bson:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt"`
}

func toMongoProfile(p domain.Profile) mongoProfile {
	return mongoProfile{
		Name:         p.Name,
		DOB:          p.DOB,
		PlaceOfBirth: p.PlaceOfBirth,
		TimeOfBirth:  p.TimeOfBirth,
		Gotra:        p.Gotra,
		Profession:   string(p.Profession),
	}
}

func (d *mongoUser) toDomain() *domain.User {
	return &domain.User{
		ID:           d.ID.Hex(),
		Email:        d.Email,
		PasswordHash: d.Password,
		Profile: domain.Profile{
			Name:         d.Profile.Name,
			DOB:          d.Profile.DOB,
			PlaceOfBirth: d.Profile.PlaceOfBirth,
			TimeOfBirth:  d.Profile.TimeOfBirth,
			Gotra:        d.Profile.Gotra,
			Profession:   domain.Profession(d.Profile.Profession),
		},
		ClientID:      hexOrEmpty(d.ClientID),
		CreatedBy:     hexOrEmpty(d.CreatedBy),
		IsActive:      d.IsActive,
		LoginApproved: d.LoginApproved,
		CreatedAt:     utcOrZero(d.CreatedAt),
		UpdatedAt:     utcOrZero(d.UpdatedAt),
	}
}

func userFilter(f ports.UserFilter) (bson.M, error) {
	filter := bson.M{}
	if err := setID(filter, fieldID, f.ID); err != nil {
		return nil, err
	}
	if err := setID(filter, fieldClientID, f.ClientID); err != nil {
		return nil, err
	}
	if f.RestrictClients {
		ids := make([]primitive.ObjectID, 0, len(f.ClientIDs))
		for _, hex := range f.ClientIDs {
			if id, ok := objectID(hex); ok {
				ids = append(ids, id)
			}
		}
		if len(ids) == 0 {
			return nil, errNoMatch
		}
		if f.ClientID != "" {
			filter["$and"] = bson.A{bson.M{fieldClientID: bson.M{"$in": ids}}}
		} else {
			filter[fieldClientID] = bson.M{"$in": ids}
		}
	}
	setBool(filter, fieldIsActive, f.IsActive)
	setBool(filter, fieldLoginApproved, f.LoginApproved)
	return filter, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.FindOne(ctx, ports.UserFilter{ID: id})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	doc, err := findOne[mongoUser](ctx, r.coll, bson.M{fieldEmail: email}, true)
	if err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) FindOne(ctx context.Context, f ports.UserFilter) (*domain.User, error) {
	filter, err := userFilter(f)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	doc, err := findOne[mongoUser](ctx, r.coll, filter, false)
	if err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) List(ctx context.Context, f ports.UserFilter) ([]*domain.User, error) {
	filter, err := userFilter(f)
	if errors.Is(err, errNoMatch) {
		return []*domain.User{}, nil
	}
	docs, err := findMany[mongoUser](ctx, r.coll, filter)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.User, len(docs))
	for i := range docs {
		out[i] = docs[i].toDomain()
	}
	return out, nil
}

func (r *UserRepository) Count(ctx context.Context, f ports.UserFilter) (int64, error) {
	filter, err := userFilter(f)
	if errors.Is(err, errNoMatch) {
		return 0, nil
	}
	return count(ctx, r.coll, filter)
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	id, err := insert(ctx, r.coll, mongoUser{
		Email:         u.Email,
		Password:      u.PasswordHash,
		Profile:       toMongoProfile(u.Profile),
		ClientID:      optionalObjectID(u.ClientID),
		CreatedBy:     optionalObjectID(u.CreatedBy),
		IsActive:      u.IsActive,
		LoginApproved: u.LoginApproved,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	})
	if err != nil {
		return err
	}
	u.ID = id.Hex()
	return nil
}

// Save writes the mutable fields back. Ownership is fixed at creation.
func (r *UserRepository) Save(ctx context.Context, u *domain.User) error {
	return update(ctx, r.coll, u.ID, bson.M{
		fieldEmail:         u.Email,
		"profile":          toMongoProfile(u.Profile),
		fieldIsActive:      u.IsActive,
		fieldLoginApproved: u.LoginApproved,
		"updatedAt":        u.UpdatedAt,
	}, u.PasswordHash)
}

// EnsureIndexes creates the users collection indexes.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	return ensureIndexes(ctx, r.coll, fieldClientID, fieldLoginApproved)
}
