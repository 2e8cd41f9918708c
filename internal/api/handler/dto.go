package handler

import (
	"time"

	"github.com/brahmakosh/admin-backend/internal/core/domain"
	"github.com/brahmakosh/admin-backend/internal/core/ports"
)

const dobLayout = "2006-01-02"

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string         `json:"token"`
	User  domain.Account `json:"user"`
}

type profileRequest struct {
	Name         string `json:"name"`
	DOB          string `json:"dob" example:"1990-04-21"`
	PlaceOfBirth string `json:"place_of_birth"`
	TimeOfBirth  string `json:"time_of_birth"`
	Gotra        string `json:"gotra"`
	Profession   string `json:"profession" validate:"omitempty,oneof='student' 'private job' 'business' 'home makers' 'others'"`
}

func (r profileRequest) toDomain() (domain.Profile, error) {
	dob, err := parseDOB(r.DOB)
	if err != nil {
		return domain.Profile{}, err
	}
	return domain.Profile{
		Name:         r.Name,
		DOB:          dob,
		PlaceOfBirth: r.PlaceOfBirth,
		TimeOfBirth:  r.TimeOfBirth,
		Gotra:        r.Gotra,
		Profession:   domain.Profession(r.Profession),
	}, nil
}

type createUserRequest struct {
	Email    string         `json:"email" validate:"required,email"`
	Password string         `json:"password" validate:"required,min=6,max=72"`
	Profile  profileRequest `json:"profile"`
	ClientID string         `json:"client_id"`
}

func (r createUserRequest) toInput() (ports.CreateUserInput, error) {
	profile, err := r.Profile.toDomain()
	if err != nil {
		return ports.CreateUserInput{}, err
	}
	return ports.CreateUserInput{Email: r.Email, Password: r.Password, Profile: profile}, nil
}

type createAdminRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type createClientRequest struct {
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required,min=6,max=72"`
	BusinessName  string `json:"business_name"`
	BusinessType  string `json:"business_type"`
	ContactNumber string `json:"contact_number"`
	Address       string `json:"address"`
}

func (r createClientRequest) toInput() ports.CreateClientInput {
	return ports.CreateClientInput{
		Email:    r.Email,
		Password: r.Password,
		Info: ports.ClientInfo{
			BusinessName:  r.BusinessName,
			BusinessType:  r.BusinessType,
			ContactNumber: r.ContactNumber,
			Address:       r.Address,
		},
	}
}

// Update requests use pointers so absent fields stay untouched. Fields that
// are not listed here, such as is_active or role, are ignored when sent.

type updateAdminRequest struct {
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=6,max=72"`
}

func (r updateAdminRequest) toPatch() ports.AdminPatch {
	return ports.AdminPatch{Email: r.Email, Password: r.Password}
}

type updateClientRequest struct {
	Email         *string `json:"email" validate:"omitempty,email"`
	Password      *string `json:"password" validate:"omitempty,min=6,max=72"`
	BusinessName  *string `json:"business_name"`
	BusinessType  *string `json:"business_type"`
	ContactNumber *string `json:"contact_number"`
	Address       *string `json:"address"`
}

func (r updateClientRequest) toPatch() ports.ClientPatch {
	return ports.ClientPatch{
		Email:         r.Email,
		Password:      r.Password,
		BusinessName:  r.BusinessName,
		BusinessType:  r.BusinessType,
		ContactNumber: r.ContactNumber,
		Address:       r.Address,
	}
}

type profilePatchRequest struct {
	Name         *string `json:"name"`
	DOB          *string `json:"dob"`
	PlaceOfBirth *string `json:"place_of_birth"`
	TimeOfBirth  *string `json:"time_of_birth"`
	Gotra        *string `json:"gotra"`
	Profession   *string `json:"profession" validate:"omitempty,oneof='student' 'private job' 'business' 'home makers' 'others'"`
}

type updateUserRequest struct {
	Email    *string              `json:"email" validate:"omitempty,email"`
	Password *string              `json:"password" validate:"omitempty,min=6,max=72"`
	Profile  *profilePatchRequest `json:"profile"`
}

func (r updateUserRequest) toPatch() (ports.UserPatch, error) {
	patch := ports.UserPatch{Email: r.Email, Password: r.Password}
	if r.Profile == nil {
		return patch, nil
	}

	p := &ports.ProfilePatch{
		Name:         r.Profile.Name,
		PlaceOfBirth: r.Profile.PlaceOfBirth,
		TimeOfBirth:  r.Profile.TimeOfBirth,
		Gotra:        r.Profile.Gotra,
	}
	if r.Profile.DOB != nil {
		dob, err := parseDOB(*r.Profile.DOB)
		if err != nil {
			return ports.UserPatch{}, err
		}
		p.DOB = dob
	}
	if r.Profile.Profession != nil {
		prof := domain.Profession(*r.Profile.Profession)
		p.Profession = &prof
	}
	patch.Profile = p
	return patch, nil
}

// parseDOB accepts a calendar date or a full RFC 3339 timestamp.
func parseDOB(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	for _, layout := range []string{dobLayout, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, domain.Validation("dob must be a date in YYYY-MM-DD format")
}

type pendingApproval struct {
	Type string         `json:"type"`
	User domain.Account `json:"user"`
}

type meResponse struct {
	Role domain.Role    `json:"role"`
	User domain.Account `json:"user"`
}
