package ports

import (
	"context"
	"time"

	"github.com/brahmakosh/admin-backend/internal/core/domain"
)

// CreateAdminInput carries the fields needed to provision an admin.
type CreateAdminInput struct {
	Email    string
	Password string
}

// ClientInfo holds the business profile of a client.
type ClientInfo struct {
	BusinessName  string
	BusinessType  string
	ContactNumber string
	Address       string
}

// CreateClientInput carries the fields needed to provision a client.
type CreateClientInput struct {
	Email    string
	Password string
	Info     ClientInfo
}

// CreateUserInput carries the fields needed to provision a user.
type CreateUserInput struct {
	Email    string
	Password string
	Profile  domain.Profile
}

// AdminPatch lists the admin fields an update may touch. Nil means unchanged.
type AdminPatch struct {
	Email    *string
	Password *string
}

// ClientPatch lists the client fields an update may touch. Nil means unchanged.
type ClientPatch struct {
	Email         *string
	Password      *string
	BusinessName  *string
	BusinessType  *string
	ContactNumber *string
	Address       *string
}

// ProfilePatch is merged field by field into a user's profile.
type ProfilePatch struct {
	Name         *string
	DOB          *time.Time
	PlaceOfBirth *string
	TimeOfBirth  *string
	Gotra        *string
	Profession   *domain.Profession
}

// UserPatch lists the user fields an update may touch. Nil means unchanged.
type UserPatch struct {
	Email    *string
	Password *string
	Profile  *ProfilePatch
}

// SuperAdminOverview holds the super admin dashboard tallies.
type SuperAdminOverview struct {
	TotalAdmins      int64 `json:"total_admins"`
	ActiveAdmins     int64 `json:"active_admins"`
	TotalClients     int64 `json:"total_clients"`
	TotalUsers       int64 `json:"total_users"`
	PendingApprovals int64 `json:"pending_approvals"`
}

// AdminOverview holds the admin dashboard tallies.
type AdminOverview struct {
	TotalClients int64 `json:"total_clients"`
	TotalUsers   int64 `json:"total_users"`
}

// ClientOverview holds the client dashboard tallies.
type ClientOverview struct {
	TotalUsers int64 `json:"total_users"`
}

// AdminService is the super admin surface over admin accounts.
type AdminService interface {
	ListAdmins(ctx context.Context) ([]*domain.Admin, error)
	CreateAdmin(ctx context.Context, caller *domain.Principal, input CreateAdminInput) (*domain.Admin, error)
	UpdateAdmin(ctx context.Context, id string, patch AdminPatch) (*domain.Admin, error)
	DeactivateAdmin(ctx context.Context, id string) error
	Overview(ctx context.Context) (*SuperAdminOverview, error)
}

// ClientService is the admin surface over clients and their users.
type ClientService interface {
	ListClients(ctx context.Context, caller *domain.Principal) ([]*domain.Client, error)
	CreateClient(ctx context.Context, caller *domain.Principal, input CreateClientInput) (*domain.Client, error)
	UpdateClient(ctx context.Context, caller *domain.Principal, id string, patch ClientPatch) (*domain.Client, error)
	DeactivateClient(ctx context.Context, caller *domain.Principal, id string) error
	ListUsers(ctx context.Context, caller *domain.Principal) ([]*domain.User, error)
	Overview(ctx context.Context, caller *domain.Principal) (*AdminOverview, error)
}

// UserService is the client surface over users, plus the user's own profile.
// targetClientID is only honoured for admin and super admin callers.
type UserService interface {
	ListUsers(ctx context.Context, caller *domain.Principal, targetClientID string) ([]*domain.User, error)
	CreateUser(ctx context.Context, caller *domain.Principal, targetClientID string, input CreateUserInput) (*domain.User, error)
	UpdateUser(ctx context.Context, caller *domain.Principal, targetClientID, id string, patch UserPatch) (*domain.User, error)
	DeactivateUser(ctx context.Context, caller *domain.Principal, targetClientID, id string) error
	Overview(ctx context.Context, caller *domain.Principal, targetClientID string) (*ClientOverview, error)
	Profile(ctx context.Context, caller *domain.Principal) (*domain.User, error)
	UpdateProfile(ctx context.Context, caller *domain.Principal, patch UserPatch) (*domain.User, error)
}
