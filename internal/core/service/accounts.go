package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/brahmakosh/admin-backend/internal/core/domain"
	"github.com/brahmakosh/admin-backend/internal/core/ports"
)

func validateCredentials(email, password string) error {
	if email == "" || password == "" {
		return domain.ErrCredentialsRequired
	}
	return validatePassword(password)
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return domain.Validation(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	if len(password) > maxPasswordBytes {
		return domain.Validation(fmt.Sprintf("password must be at most %d bytes", maxPasswordBytes))
	}
	return nil
}

// emailOwner looks up the id of the account holding email.
type emailOwner func(ctx context.Context, email string) (string, error)

// ensureEmailFree fails with a duplicate error when email belongs to an
// account other than selfID.
func ensureEmailFree(ctx context.Context, kind domain.AccountKind, selfID, email string, owner emailOwner) error {
	id, err := owner(ctx, email)
	switch {
	case err == nil:
		if id != selfID {
			return domain.Duplicate(kind)
		}
		return nil
	case errors.Is(err, domain.ErrNotFound):
		return nil
	default:
		return fmt.Errorf("check email: %w", err)
	}
}

func adminEmailOwner(store ports.AdminStore) emailOwner {
	return func(ctx context.Context, email string) (string, error) {
		a, err := store.FindByEmail(ctx, email)
		if err != nil {
			return "", err
		}
		return a.ID, nil
	}
}

func clientEmailOwner(store ports.ClientStore) emailOwner {
	return func(ctx context.Context, email string) (string, error) {
		c, err := store.FindByEmail(ctx, email)
		if err != nil {
			return "", err
		}
		return c.ID, nil
	}
}

func userEmailOwner(store ports.UserStore) emailOwner {
	return func(ctx context.Context, email string) (string, error) {
		u, err := store.FindByEmail(ctx, email)
		if err != nil {
			return "", err
		}
		return u.ID, nil
	}
}

// duplicateOr maps a store-level duplicate key error to the public duplicate
// error for kind, and wraps anything else.
func duplicateOr(kind domain.AccountKind, op string, err error) error {
	if errors.Is(err, domain.ErrDuplicate) {
		return domain.Duplicate(kind)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func createAdmin(ctx context.Context, store ports.AdminStore, hasher ports.PasswordHasher, input ports.CreateAdminInput, createdBy string) (*domain.Admin, error) {
	email := domain.NormalizeEmail(input.Email)
	if err := validateCredentials(email, input.Password); err != nil {
		return nil, err
	}
	if err := ensureEmailFree(ctx, domain.KindAdmin, "", email, adminEmailOwner(store)); err != nil {
		return nil, err
	}

	digest, err := hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("create admin: %w", err)
	}

	now := time.Now().UTC()
	admin := &domain.Admin{
		Email:         email,
		PasswordHash:  digest,
		Role:          domain.RoleAdmin,
		CreatedBy:     createdBy,
		IsActive:      true,
		LoginApproved: domain.InitialApproval(domain.KindAdmin, domain.RoleSuperAdmin),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := store.Create(ctx, admin); err != nil {
		return nil, duplicateOr(domain.KindAdmin, "create admin", err)
	}
	admin.PasswordHash = ""
	return admin, nil
}

func createClient(ctx context.Context, store ports.ClientStore, hasher ports.PasswordHasher, input ports.CreateClientInput, adminID, createdBy string) (*domain.Client, error) {
	email := domain.NormalizeEmail(input.Email)
	if err := validateCredentials(email, input.Password); err != nil {
		return nil, err
	}
	if err := ensureEmailFree(ctx, domain.KindClient, "", email, clientEmailOwner(store)); err != nil {
		return nil, err
	}

	digest, err := hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}

	now := time.Now().UTC()
	client := &domain.Client{
		Email:         email,
		PasswordHash:  digest,
		BusinessName:  input.Info.BusinessName,
		BusinessType:  input.Info.BusinessType,
		ContactNumber: input.Info.ContactNumber,
		Address:       input.Info.Address,
		AdminID:       adminID,
		CreatedBy:     createdBy,
		IsActive:      true,
		LoginApproved: domain.InitialApproval(domain.KindClient, ""),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := store.Create(ctx, client); err != nil {
		return nil, duplicateOr(domain.KindClient, "create client", err)
	}
	client.PasswordHash = ""
	return client, nil
}

func createUser(ctx context.Context, store ports.UserStore, hasher ports.PasswordHasher, input ports.CreateUserInput, clientID, createdBy string, approved bool) (*domain.User, error) {
	email := domain.NormalizeEmail(input.Email)
	if err := validateCredentials(email, input.Password); err != nil {
		return nil, err
	}
	if !input.Profile.Profession.Valid() {
		return nil, domain.Validation("profession is not one of the allowed values")
	}
	if err := ensureEmailFree(ctx, domain.KindUser, "", email, userEmailOwner(store)); err != nil {
		return nil, err
	}

	digest, err := hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:         email,
		PasswordHash:  digest,
		Profile:       input.Profile,
		ClientID:      clientID,
		CreatedBy:     createdBy,
		IsActive:      true,
		LoginApproved: approved,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := store.Create(ctx, user); err != nil {
		return nil, duplicateOr(domain.KindUser, "create user", err)
	}
	user.PasswordHash = ""
	return user, nil
}

// credentialChange hashes a new password when one is supplied. It returns
// an empty digest when the password is unchanged, which stores treat as
// "leave the stored hash alone".
func credentialChange(hasher ports.PasswordHasher, password *string) (string, error) {
	if password == nil {
		return "", nil
	}
	if err := validatePassword(*password); err != nil {
		return "", err
	}
	digest, err := hasher.Hash(*password)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return digest, nil
}

// emailChange validates and normalises a requested email change.
func emailChange(ctx context.Context, kind domain.AccountKind, selfID string, email *string, owner emailOwner) (string, bool, error) {
	if email == nil {
		return "", false, nil
	}
	next := domain.NormalizeEmail(*email)
	if next == "" {
		return "", false, domain.Validation("email cannot be empty")
	}
	if err := ensureEmailFree(ctx, kind, selfID, next, owner); err != nil {
		return "", false, err
	}
	return next, true, nil
}

func applyProfilePatch(p *domain.Profile, patch *ports.ProfilePatch) error {
	if patch == nil {
		return nil
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.DOB != nil {
		dob := *patch.DOB
		p.DOB = &dob
	}
	if patch.PlaceOfBirth != nil {
		p.PlaceOfBirth = *patch.PlaceOfBirth
	}
	if patch.TimeOfBirth != nil {
		p.TimeOfBirth = *patch.TimeOfBirth
	}
	if patch.Gotra != nil {
		p.Gotra = *patch.Gotra
	}
	if patch.Profession != nil {
		if !patch.Profession.Valid() {
			return domain.Validation("profession is not one of the allowed values")
		}
		p.Profession = *patch.Profession
	}
	return nil
}
