package repository

import (
	"context"
	"errors"
	"time"

	"github.com/rockymountnc/licensetracker/internal/models"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")
	ErrNotFound     = errors.New("record not found")
)

// Repository is the persistence boundary for the API. The blacklist methods
// satisfy tokens.BlacklistStore so the repository can be handed to the token
// authority directly.
type Repository interface {
	// Users
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// GetUserByLogin resolves a login identifier that may be either a
	// username or an email address.
	GetUserByLogin(ctx context.Context, identifier string) (*models.User, error)
	UpdateUserGroups(ctx context.Context, id string, groups []string) error

	// Token blacklist
	InsertToken(ctx context.Context, token string) error
	TokenExists(ctx context.Context, token string) (bool, error)
	DeleteTokensBefore(ctx context.Context, cutoff time.Time) error

	// Software
	ListSoftware(ctx context.Context) ([]*models.Software, error)
	GetSoftware(ctx context.Context, id int64) (*models.Software, error)
	CreateSoftware(ctx context.Context, sw *models.Software) error
	UpdateSoftware(ctx context.Context, sw *models.Software) error
	DeleteSoftware(ctx context.Context, id int64) error

	// Comments
	ListComments(ctx context.Context) ([]*models.Comment, error)
	ListCommentsBySoftware(ctx context.Context, softwareID int64) ([]*models.Comment, error)
	GetComment(ctx context.Context, id int64) (*models.Comment, error)
	CreateComment(ctx context.Context, comment *models.Comment) error
	UpdateComment(ctx context.Context, comment *models.Comment) error
	DeleteComment(ctx context.Context, id int64) error

	// Catalogs
	ListDepartments(ctx context.Context) ([]*models.Department, error)
	CreateDepartment(ctx context.Context, d *models.Department) error
	ListVendors(ctx context.Context) ([]*models.Vendor, error)
	CreateVendor(ctx context.Context, v *models.Vendor) error
	ListDivisions(ctx context.Context) ([]*models.Division, error)
	CreateDivision(ctx context.Context, d *models.Division) error
	ListGlAccounts(ctx context.Context) ([]*models.GlAccount, error)
	CreateGlAccount(ctx context.Context, a *models.GlAccount) error
	ListSoftwareToOperate(ctx context.Context) ([]*models.SoftwareToOperate, error)
	CreateSoftwareToOperate(ctx context.Context, s *models.SoftwareToOperate) error
	ListHardwareToOperate(ctx context.Context) ([]*models.HardwareToOperate, error)
	CreateHardwareToOperate(ctx context.Context, h *models.HardwareToOperate) error
	ListContactPeople(ctx context.Context) ([]*models.ContactPerson, error)
	GetContactPerson(ctx context.Context, id int64) (*models.ContactPerson, error)
	CreateContactPerson(ctx context.Context, c *models.ContactPerson) error
}
