package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rockymountnc/licensetracker/internal/models"
	"github.com/rockymountnc/licensetracker/internal/repository"
)

type SoftwareService struct {
	repo repository.Repository
}

func NewSoftwareService(repo repository.Repository) *SoftwareService {
	return &SoftwareService{repo: repo}
}

func (s *SoftwareService) List(ctx context.Context) ([]*models.Software, error) {
	return s.repo.ListSoftware(ctx)
}

func (s *SoftwareService) Get(ctx context.Context, id int64) (*models.Software, error) {
	return s.repo.GetSoftware(ctx, id)
}

func (s *SoftwareService) Create(ctx context.Context, req *models.SoftwareRequest) (*models.Software, error) {
	sw, err := softwareFromRequest(req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.CreateSoftware(ctx, sw); err != nil {
		return nil, err
	}
	return sw, nil
}

func (s *SoftwareService) Update(ctx context.Context, id int64, req *models.SoftwareRequest) (*models.Software, error) {
	sw, err := softwareFromRequest(req)
	if err != nil {
		return nil, err
	}
	sw.ID = id
	if err := s.repo.UpdateSoftware(ctx, sw); err != nil {
		return nil, err
	}
	return sw, nil
}

func (s *SoftwareService) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteSoftware(ctx, id)
}

func softwareFromRequest(req *models.SoftwareRequest) (*models.Software, error) {
	if req.Name == "" {
		return nil, NewValidationError(CodeValidationFailed, "software_name is required")
	}

	sw := &models.Software{
		Name:               req.Name,
		Description:        req.Description,
		Version:            req.Version,
		YearsOfUse:         req.YearsOfUse,
		OperationalStatus:  models.NormalizeOperationalStatus(req.OperationalStatus),
		Hosting:            req.Hosting,
		TechSupported:      req.TechSupported,
		CloudBased:         req.CloudBased,
		MaintenanceSupport: req.MaintenanceSupport,
		NumberOfLicenses:   req.NumberOfLicenses,
		AnnualAmount:       req.AnnualAmount,
	}

	var err error
	if sw.LastUpdated, err = parseOptionalDate(req.LastUpdated, "software_last_updated"); err != nil {
		return nil, err
	}
	if sw.ExpirationDate, err = parseOptionalDate(req.ExpirationDate, "software_expiration_date"); err != nil {
		return nil, err
	}

	sw.Departments = make([]models.Department, 0, len(req.Departments))
	for _, ref := range req.Departments {
		sw.Departments = append(sw.Departments, models.Department{ID: ref.ID, Name: ref.Name})
	}
	sw.Vendors = make([]models.Vendor, 0, len(req.Vendors))
	for _, ref := range req.Vendors {
		sw.Vendors = append(sw.Vendors, models.Vendor{ID: ref.ID, Name: ref.Name})
	}
	sw.ContactPeople = make([]models.ContactPerson, 0, len(req.ContactPeople))
	for _, ref := range req.ContactPeople {
		sw.ContactPeople = append(sw.ContactPeople, models.ContactPerson{ID: ref.ID})
	}
	sw.Divisions = make([]models.Division, 0, len(req.Divisions))
	for _, ref := range req.Divisions {
		sw.Divisions = append(sw.Divisions, models.Division{ID: ref.ID, Name: ref.Name})
	}
	sw.GlAccounts = make([]models.GlAccount, 0, len(req.GlAccounts))
	for _, ref := range req.GlAccounts {
		sw.GlAccounts = append(sw.GlAccounts, models.GlAccount{ID: ref.ID, Name: ref.Name})
	}
	sw.SoftwareToOperate = make([]models.SoftwareToOperate, 0, len(req.SoftwareToOperate))
	for _, ref := range req.SoftwareToOperate {
		sw.SoftwareToOperate = append(sw.SoftwareToOperate, models.SoftwareToOperate{ID: ref.ID, Name: ref.Name})
	}
	sw.HardwareToOperate = make([]models.HardwareToOperate, 0, len(req.HardwareToOperate))
	for _, ref := range req.HardwareToOperate {
		sw.HardwareToOperate = append(sw.HardwareToOperate, models.HardwareToOperate{ID: ref.ID, Name: ref.Name})
	}

	return sw, nil
}

func parseOptionalDate(s *string, field string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := models.ParseDate(*s)
	if err != nil {
		return nil, NewValidationError(CodeValidationFailed, fmt.Sprintf("%s must be a yyyy-mm-dd date", field))
	}
	return &t, nil
}
