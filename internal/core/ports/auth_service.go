package ports

import (
	"context"

	"github.com/brahmakosh/admin-backend/internal/core/domain"
)

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token   string
	Account domain.Account
}

// Authenticator resolves a bearer token to a live account.
type Authenticator interface {
	Authenticate(ctx context.Context, rawToken string) (*domain.Principal, error)
}

// AuthService covers registration, login and the super admin bootstrap.
type AuthService interface {
	// Login authenticates against the store for role. super_admin and
	// admin both use the admin store but must match the requested role.
	Login(ctx context.Context, role domain.Role, email, password string) (*LoginResult, error)
	RegisterUser(ctx context.Context, input CreateUserInput) (*domain.User, error)
	RegisterClient(ctx context.Context, input CreateClientInput) (*domain.Client, error)
}

// PendingApproval is one entry of the super admin's approval queue.
type PendingApproval struct {
	Type    domain.AccountKind
	Account domain.Account
}

// ApprovalService drives the login approval state machine.
type ApprovalService interface {
	Approve(ctx context.Context, accountType, id string) (domain.Account, error)
	Reject(ctx context.Context, accountType, id string) (domain.Account, error)
	Pending(ctx context.Context) ([]PendingApproval, error)
}
