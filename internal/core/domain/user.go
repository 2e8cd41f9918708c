package domain

import (
	"strings"
	"time"
)

// Account is the capability set shared by admins, clients and users.
type Account interface {
	AccountID() string
	AccountRole() Role
	Active() bool
	Approved() bool
}

// Admin models both the super admin and regular admins; Role tells them apart.
type Admin struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	Role          Role      `json:"role"`
	CreatedBy     string    `json:"created_by,omitempty"`
	IsActive      bool      `json:"is_active"`
	LoginApproved bool      `json:"login_approved"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (a *Admin) AccountID() string { return a.ID }
func (a *Admin) AccountRole() Role { return a.Role }
func (a *Admin) Active() bool      { return a.IsActive }

// Approved is always true for the super admin regardless of the stored flag.
func (a *Admin) Approved() bool {
	return a.Role == RoleSuperAdmin || a.LoginApproved
}

// Client is a business account owned by exactly one admin.
type Client struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	BusinessName  string    `json:"business_name,omitempty"`
	BusinessType  string    `json:"business_type,omitempty"`
	ContactNumber string    `json:"contact_number,omitempty"`
	Address       string    `json:"address,omitempty"`
	AdminID       string    `json:"admin_id,omitempty"`
	CreatedBy     string    `json:"created_by,omitempty"`
	IsActive      bool      `json:"is_active"`
	LoginApproved bool      `json:"login_approved"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (c *Client) AccountID() string { return c.ID }
func (c *Client) AccountRole() Role { return RoleClient }
func (c *Client) Active() bool      { return c.IsActive }

// Approved is always true: clients are exempt from login approval.
func (c *Client) Approved() bool { return true }

// Profession is the closed set of professions a user may declare.
type Profession string

const (
	ProfessionStudent    Profession = "student"
	ProfessionPrivateJob Profession = "private job"
	ProfessionBusiness   Profession = "business"
	ProfessionHomeMaker  Profession = "home makers"
	ProfessionOthers     Profession = "others"
)

// Valid reports whether p is empty or one of the declared professions.
func (p Profession) Valid() bool {
	switch p {
	case "", ProfessionStudent, ProfessionPrivateJob, ProfessionBusiness, ProfessionHomeMaker, ProfessionOthers:
		return true
	}
	return false
}

// Profile holds the personal details a user registers with.
type Profile struct {
	Name         string     `json:"name,omitempty"`
	DOB          *time.Time `json:"dob,omitempty"`
	PlaceOfBirth string     `json:"place_of_birth,omitempty"`
	TimeOfBirth  string     `json:"time_of_birth,omitempty"`
	Gotra        string     `json:"gotra,omitempty"`
	Profession   Profession `json:"profession,omitempty"`
}

// User is an end user owned by exactly one client, or by none when self-registered.
type User struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	Profile       Profile   `json:"profile"`
	ClientID      string    `json:"client_id,omitempty"`
	CreatedBy     string    `json:"created_by,omitempty"`
	IsActive      bool      `json:"is_active"`
	LoginApproved bool      `json:"login_approved"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (u *User) AccountID() string { return u.ID }
func (u *User) AccountRole() Role { return RoleUser }
func (u *User) Active() bool      { return u.IsActive }
func (u *User) Approved() bool    { return u.LoginApproved }

// Principal is the authenticated caller attached to a request.
// Role comes from the token, not from the stored account.
type Principal struct {
	ID      string
	Role    Role
	Account Account
}

// NormalizeEmail case-folds and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
