package service

import (
	"context"
	"strings"

	"github.com/rockymountnc/licensetracker/internal/models"
	"github.com/rockymountnc/licensetracker/internal/repository"
)

// CatalogService manages the reference tables software records link to.
type CatalogService struct {
	repo repository.Repository
}

func NewCatalogService(repo repository.Repository) *CatalogService {
	return &CatalogService{repo: repo}
}

func requireName(name string) error {
	if strings.TrimSpace(name) == "" {
		return NewValidationError(CodeValidationFailed, "name is required")
	}
	return nil
}

func (s *CatalogService) ListDepartments(ctx context.Context) ([]*models.Department, error) {
	return s.repo.ListDepartments(ctx)
}

func (s *CatalogService) CreateDepartment(ctx context.Context, d *models.Department) error {
	if err := requireName(d.Name); err != nil {
		return err
	}
	return s.repo.CreateDepartment(ctx, d)
}

func (s *CatalogService) ListVendors(ctx context.Context) ([]*models.Vendor, error) {
	return s.repo.ListVendors(ctx)
}

func (s *CatalogService) CreateVendor(ctx context.Context, v *models.Vendor) error {
	if err := requireName(v.Name); err != nil {
		return err
	}
	return s.repo.CreateVendor(ctx, v)
}

func (s *CatalogService) ListDivisions(ctx context.Context) ([]*models.Division, error) {
	return s.repo.ListDivisions(ctx)
}

func (s *CatalogService) CreateDivision(ctx context.Context, d *models.Division) error {
	if err := requireName(d.Name); err != nil {
		return err
	}
	return s.repo.CreateDivision(ctx, d)
}

func (s *CatalogService) ListGlAccounts(ctx context.Context) ([]*models.GlAccount, error) {
	return s.repo.ListGlAccounts(ctx)
}

func (s *CatalogService) CreateGlAccount(ctx context.Context, a *models.GlAccount) error {
	if err := requireName(a.Name); err != nil {
		return err
	}
	return s.repo.CreateGlAccount(ctx, a)
}

func (s *CatalogService) ListSoftwareToOperate(ctx context.Context) ([]*models.SoftwareToOperate, error) {
	return s.repo.ListSoftwareToOperate(ctx)
}

func (s *CatalogService) CreateSoftwareToOperate(ctx context.Context, st *models.SoftwareToOperate) error {
	if err := requireName(st.Name); err != nil {
		return err
	}
	return s.repo.CreateSoftwareToOperate(ctx, st)
}

func (s *CatalogService) ListHardwareToOperate(ctx context.Context) ([]*models.HardwareToOperate, error) {
	return s.repo.ListHardwareToOperate(ctx)
}

func (s *CatalogService) CreateHardwareToOperate(ctx context.Context, h *models.HardwareToOperate) error {
	if err := requireName(h.Name); err != nil {
		return err
	}
	return s.repo.CreateHardwareToOperate(ctx, h)
}

func (s *CatalogService) ListContactPeople(ctx context.Context) ([]*models.ContactPerson, error) {
	return s.repo.ListContactPeople(ctx)
}

func (s *CatalogService) GetContactPerson(ctx context.Context, id int64) (*models.ContactPerson, error) {
	return s.repo.GetContactPerson(ctx, id)
}

// CreateContactPerson derives the contact's public identifier from its
// fields before storing.
func (s *CatalogService) CreateContactPerson(ctx context.Context, req *models.ContactPersonRequest) (*models.ContactPerson, error) {
	if strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" {
		return nil, NewValidationError(CodeValidationFailed, "contact_name and contact_lastname are required")
	}

	contact := &models.ContactPerson{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
	}
	contact.PublicID = contact.DerivePublicID()

	if err := s.repo.CreateContactPerson(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}
