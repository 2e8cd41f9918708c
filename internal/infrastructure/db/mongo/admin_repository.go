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

// AdminRepository implements ports.AdminStore on the admins collection.
type AdminRepository struct {
	coll *mongo.Collection
}

func NewAdminRepository(db *mongo.Database) *AdminRepository {
	return &AdminRepository{coll: db.Collection(collectionAdmins)}
}

type mongoAdmin struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Email         string             `bson:"email"`
	Password      string             `bson:"password,omitempty"`
	Role          string             `bson:"role"`
	CreatedBy     primitive.ObjectID `bson:"createdBy,omitempty"`
	IsActive      bool               `bson:"isActive"`
	LoginApproved bool               `bson:"loginApproved"`
	CreatedAt     time.Time          `bson:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt"`
}

func (d *mongoAdmin) toDomain() *domain.Admin {
	return &domain.Admin{
		ID:            d.ID.Hex(),
		Email:         d.Email,
		PasswordHash:  d.Password,
		Role:          domain.Role(d.Role),
		CreatedBy:     hexOrEmpty(d.CreatedBy),
		IsActive:      d.IsActive,
		LoginApproved: d.LoginApproved,
		CreatedAt:     utcOrZero(d.CreatedAt),
		UpdatedAt:     utcOrZero(d.UpdatedAt),
	}
}

func adminFilter(f ports.AdminFilter) (bson.M, error) {
	filter := bson.M{}
	if err := setID(filter, fieldID, f.ID); err != nil {
		return nil, err
	}
	if f.Role != "" {
		filter[fieldRole] = string(f.Role)
	}
	setBool(filter, fieldIsActive, f.IsActive)
	setBool(filter, fieldLoginApproved, f.LoginApproved)
	return filter, nil
}

func (r *AdminRepository) FindByID(ctx context.Context, id string) (*domain.Admin, error) {
	return r.FindOne(ctx, ports.AdminFilter{ID: id})
}

func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	doc, err := findOne[mongoAdmin](ctx, r.coll, bson.M{fieldEmail: email}, true)
	if err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *AdminRepository) FindOne(ctx context.Context, f ports.AdminFilter) (*domain.Admin, error) {
	filter, err := adminFilter(f)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	doc, err := findOne[mongoAdmin](ctx, r.coll, filter, false)
	if err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *AdminRepository) List(ctx context.Context, f ports.AdminFilter) ([]*domain.Admin, error) {
	filter, err := adminFilter(f)
	if errors.Is(err, errNoMatch) {
		return []*domain.Admin{}, nil
	}
	docs, err := findMany[mongoAdmin](ctx, r.coll, filter)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Admin, len(docs))
	for i := range docs {
		out[i] = docs[i].toDomain()
	}
	return out, nil
}

func (r *AdminRepository) Count(ctx context.Context, f ports.AdminFilter) (int64, error) {
	filter, err := adminFilter(f)
	if errors.Is(err, errNoMatch) {
		return 0, nil
	}
	return count(ctx, r.coll, filter)
}

func (r *AdminRepository) Create(ctx context.Context, a *domain.Admin) error {
	id, err := insert(ctx, r.coll, mongoAdmin{
		Email:         a.Email,
		Password:      a.PasswordHash,
		Role:          string(a.Role),
		CreatedBy:     optionalObjectID(a.CreatedBy),
		IsActive:      a.IsActive,
		LoginApproved: a.LoginApproved,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	})
	if err != nil {
		return err
	}
	a.ID = id.Hex()
	return nil
}

// Save writes the mutable fields back. Role and createdBy are fixed at creation.
func (r *AdminRepository) Save(ctx context.Context, a *domain.Admin) error {
	return update(ctx, r.coll, a.ID, bson.M{
		fieldEmail:         a.Email,
		fieldIsActive:      a.IsActive,
		fieldLoginApproved: a.LoginApproved,
		"updatedAt":        a.UpdatedAt,
	}, a.PasswordHash)
}

// EnsureIndexes creates the admins collection indexes.
func (r *AdminRepository) EnsureIndexes(ctx context.Context) error {
	return ensureIndexes(ctx, r.coll, fieldRole, fieldLoginApproved)
}
