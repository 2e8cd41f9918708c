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

// ClientRepository implements ports.ClientStore on the clients collection.
type ClientRepository struct {
	coll *mongo.Collection
}

func NewClientRepository(db *mongo.Database) *ClientRepository {
	return &ClientRepository{coll: db.Collection(collectionClients)}
}

type mongoClient struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Email         string             `bson:"email"`
	Password      string             `bson:"password,omitempty"`
	BusinessName  string             `bson:"businessName"`
	BusinessType  string             `bson:"businessType"`
	ContactNumber string             `bson:"contactNumber"`
	Address       string             `bson:"address"`
	AdminID       primitive.ObjectID `bson:"adminId,omitempty"`
	CreatedBy     primitive.ObjectID `bson:"createdBy,omitempty"`
	IsActive      bool               `bson:"isActive"`
	LoginApproved bool               `bson:"loginApproved"`
	CreatedAt     time.Time          `bson:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt"`
}

func (d *mongoClient) toDomain() *domain.Client {
	return &domain.Client{
		ID:            d.ID.Hex(),
		Email:         d.Email,
		PasswordHash:  d.Password,
		BusinessName:  d.BusinessName,
		BusinessType:  d.BusinessType,
		ContactNumber: d.ContactNumber,
		Address:       d.Address,
		AdminID:       hexOrEmpty(d.AdminID),
		CreatedBy:     hexOrEmpty(d.CreatedBy),
		IsActive:      d.IsActive,
		LoginApproved: d.LoginApproved,
		CreatedAt:     utcOrZero(d.CreatedAt),
		UpdatedAt:     utcOrZero(d.UpdatedAt),
	}
}

func clientFilter(f ports.ClientFilter) (bson.M, error) {
	filter := bson.M{}
	if err := setID(filter, fieldID, f.ID); err != nil {
		return nil, err
	}
	if err := setID(filter, fieldAdminID, f.AdminID); err != nil {
		return nil, err
	}
	setBool(filter, fieldIsActive, f.IsActive)
	return filter, nil
}

func (r *ClientRepository) FindByID(ctx context.Context, id string) (*domain.Client, error) {
	return r.FindOne(ctx, ports.ClientFilter{ID: id})
}

func (r *ClientRepository) FindByEmail(ctx context.Context, email string) (*domain.Client, error) {
	doc, err := findOne[mongoClient](ctx, r.coll, bson.M{fieldEmail: email}, true)
	if err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *ClientRepository) FindOne(ctx context.Context, f ports.ClientFilter) (*domain.Client, error) {
	filter, err := clientFilter(f)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	doc, err := findOne[mongoClient](ctx, r.coll, filter, false)
	if err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *ClientRepository) List(ctx context.Context, f ports.ClientFilter) ([]*domain.Client, error) {
	filter, err := clientFilter(f)
	if errors.Is(err, errNoMatch) {
		return []*domain.Client{}, nil
	}
	docs, err := findMany[mongoClient](ctx, r.coll, filter)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Client, len(docs))
	for i := range docs {
		out[i] = docs[i].toDomain()
	}
	return out, nil
}

func (r *ClientRepository) Count(ctx context.Context, f ports.ClientFilter) (int64, error) {
	filter, err := clientFilter(f)
	if errors.Is(err, errNoMatch) {
		return 0, nil
	}
	return count(ctx, r.coll, filter)
}

func (r *ClientRepository) Create(ctx context.Context, c *domain.Client) error {
	id, err := insert(ctx, r.coll, mongoClient{
		Email:         c.Email,
		Password:      c.PasswordHash,
		BusinessName:  c.BusinessName,
		BusinessType:  c.BusinessType,
		ContactNumber: c.ContactNumber,
		Address:       c.Address,
		AdminID:       optionalObjectID(c.AdminID),
		CreatedBy:     optionalObjectID(c.CreatedBy),
		IsActive:      c.IsActive,
		LoginApproved: c.LoginApproved,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	})
	if err != nil {
		return err
	}
	c.ID = id.Hex()
	return nil
}

// Save writes the mutable fields back. Ownership is fixed at creation.
func (r *ClientRepository) Save(ctx context.Context, c *domain.Client) error {
	return update(ctx, r.coll, c.ID, bson.M{
		fieldEmail:         c.Email,
		"businessName":     c.BusinessName,
		"businessType":     c.BusinessType,
		"contactNumber":    c.ContactNumber,
		"address":          c.Address,
		fieldIsActive:      c.IsActive,
		fieldLoginApproved: c.LoginApproved,
		"updatedAt":        c.UpdatedAt,
	}, c.PasswordHash)
}

// EnsureIndexes creates the clients collection indexes.
func (r *ClientRepository) EnsureIndexes(ctx context.Context) error {
	return ensureIndexes(ctx, r.coll, fieldAdminID)
}
