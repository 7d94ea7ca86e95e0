package seeder

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/rockymountnc/licensetracker/internal/models"
	"github.com/rockymountnc/licensetracker/internal/repository"
)

// Options controls how much sample data the seeder generates.
type Options struct {
	Users    int
	Software int
	Comments int
	Seed     int64
}

// DefaultOptions seeds a small but linked data set.
func DefaultOptions() Options {
	return Options{Users: 5, Software: 20, Comments: 40}
}

// Seeder populates the repository with plausible municipal data.
type Seeder struct {
	repo repository.Repository
	rng  *rand.Rand
}

func New(repo repository.Repository, seed int64) *Seeder {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	gofakeit.Seed(seed)
	return &Seeder{
		repo: repo,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// Run seeds catalogs, users, software and comments in dependency order.
func (s *Seeder) Run(ctx context.Context, opts Options) error {
	catalogs, err := s.seedCatalogs(ctx)
	if err != nil {
		return err
	}

	users, err := s.seedUsers(ctx, opts.Users)
	if err != nil {
		return err
	}

	software, err := s.seedSoftware(ctx, opts.Software, catalogs)
	if err != nil {
		return err
	}

	return s.seedComments(ctx, opts.Comments, users, software)
}

type catalogSet struct {
	departments []*models.Department
	vendors     []*models.Vendor
	divisions   []*models.Division
	glAccounts  []*models.GlAccount
	swToOperate []*models.SoftwareToOperate
	hwToOperate []*models.HardwareToOperate
	contacts    []*models.ContactPerson
}

func (s *Seeder) seedCatalogs(ctx context.Context) (*catalogSet, error) {
	set := &catalogSet{}

	departmentNames := []string{
		"Public Works", "Parks and Recreation", "Finance", "Police",
		"Fire", "Planning", "Human Resources", "Information Technology",
	}
	for i, name := range departmentNames {
		code := 100 + i
		d := &models.Department{Name: name, Code: &code}
		if err := s.repo.CreateDepartment(ctx, d); err != nil {
			return nil, fmt.Errorf("failed to seed department: %w", err)
		}
		set.departments = append(set.departments, d)
	}

	for i := 0; i < 10; i++ {
		v := &models.Vendor{Name: gofakeit.Company()}
		if err := s.repo.CreateVendor(ctx, v); err != nil {
			return nil, fmt.Errorf("failed to seed vendor: %w", err)
		}
		set.vendors = append(set.vendors, v)
	}

	divisionNames := []string{"Operations", "Administration", "Field Services", "Engineering"}
	for i, name := range divisionNames {
		code := 10 + i
		d := &models.Division{Name: name, Code: &code}
		if err := s.repo.CreateDivision(ctx, d); err != nil {
			return nil, fmt.Errorf("failed to seed division: %w", err)
		}
		set.divisions = append(set.divisions, d)
	}

	for i := 0; i < 6; i++ {
		a := &models.GlAccount{Name: fmt.Sprintf("GL-%d", 5000+i*10)}
		if err := s.repo.CreateGlAccount(ctx, a); err != nil {
			return nil, fmt.Errorf("failed to seed gl account: %w", err)
		}
		set.glAccounts = append(set.glAccounts, a)
	}

	for _, name := range []string{"Windows Server 2022", "PostgreSQL 16", "Apache Tomcat", "Oracle Database"} {
		st := &models.SoftwareToOperate{Name: name}
		if err := s.repo.CreateSoftwareToOperate(ctx, st); err != nil {
			return nil, fmt.Errorf("failed to seed software to operate: %w", err)
		}
		set.swToOperate = append(set.swToOperate, st)
	}

	for _, name := range []string{"Dell PowerEdge R750", "Zebra Label Printer", "Panasonic Toughbook", "Cisco Catalyst Switch"} {
		h := &models.HardwareToOperate{Name: name}
		if err := s.repo.CreateHardwareToOperate(ctx, h); err != nil {
			return nil, fmt.Errorf("failed to seed hardware to operate: %w", err)
		}
		set.hwToOperate = append(set.hwToOperate, h)
	}

	for i := 0; i < 8; i++ {
		phone := int64(gofakeit.Number(2000000000, 9999999999))
		c := &models.ContactPerson{
			FirstName:   gofakeit.FirstName(),
			LastName:    gofakeit.LastName(),
			Email:       gofakeit.Email(),
			PhoneNumber: &phone,
		}
		c.PublicID = c.DerivePublicID()
		if err := s.repo.CreateContactPerson(ctx, c); err != nil {
			return nil, fmt.Errorf("failed to seed contact: %w", err)
		}
		set.contacts = append(set.contacts, c)
	}

	return set, nil
}

func (s *Seeder) seedUsers(ctx context.Context, count int) ([]*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	var users []*models.User
	for i := 0; i < count; i++ {
		id, err := uuid.NewV7()
		if err != nil {
			return nil, err
		}

		first := gofakeit.FirstName()
		last := gofakeit.LastName()
		now := time.Now().UTC()
		user := &models.User{
			ID:           id.String(),
			Username:     fmt.Sprintf("%s%s%d", first[:1], last, i),
			Email:        gofakeit.Email(),
			PasswordHash: string(hash),
			FirstName:    first,
			LastName:     last,
			Groups:       []string{},
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := s.repo.CreateUser(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to seed user: %w", err)
		}
		users = append(users, user)
	}
	return users, nil
}

func (s *Seeder) seedSoftware(ctx context.Context, count int, catalogs *catalogSet) ([]*models.Software, error) {
	var list []*models.Software
	for i := 0; i < count; i++ {
		years := s.rng.Intn(15) + 1
		amount := float64(s.rng.Intn(90000)+1000) + 0.99
		lastUpdated := gofakeit.DateRange(
			time.Now().AddDate(-2, 0, 0), time.Now())
		expiration := gofakeit.DateRange(
			time.Now(), time.Now().AddDate(3, 0, 0))

		sw := &models.Software{
			Name:               gofakeit.AppName(),
			Description:        gofakeit.Sentence(8),
			Version:            gofakeit.AppVersion(),
			YearsOfUse:         &years,
			LastUpdated:        &lastUpdated,
			ExpirationDate:     &expiration,
			OperationalStatus:  pick(s.rng, []string{models.StatusActive, models.StatusActive, models.StatusInactive}),
			Hosting:            pick(s.rng, []string{models.HostingInternal, models.HostingExternal}),
			TechSupported:      pick(s.rng, []string{models.ChoiceYes, models.ChoiceNo}),
			CloudBased:         pick(s.rng, []string{models.ChoiceYes, models.ChoiceNo}),
			MaintenanceSupport: pick(s.rng, []string{models.ChoiceYes, models.ChoiceNo}),
			NumberOfLicenses:   s.rng.Intn(500) + 1,
			AnnualAmount:       &amount,

			Departments:       []models.Department{*pick(s.rng, catalogs.departments)},
			Vendors:           []models.Vendor{*pick(s.rng, catalogs.vendors)},
			ContactPeople:     []models.ContactPerson{*pick(s.rng, catalogs.contacts)},
			Divisions:         []models.Division{*pick(s.rng, catalogs.divisions)},
			GlAccounts:        []models.GlAccount{*pick(s.rng, catalogs.glAccounts)},
			SoftwareToOperate: []models.SoftwareToOperate{*pick(s.rng, catalogs.swToOperate)},
			HardwareToOperate: []models.HardwareToOperate{*pick(s.rng, catalogs.hwToOperate)},
		}

		if err := s.repo.CreateSoftware(ctx, sw); err != nil {
			return nil, fmt.Errorf("failed to seed software: %w", err)
		}
		list = append(list, sw)
	}
	return list, nil
}

func (s *Seeder) seedComments(ctx context.Context, count int, users []*models.User, software []*models.Software) error {
	if len(users) == 0 || len(software) == 0 {
		return nil
	}

	for i := 0; i < count; i++ {
		user := users[s.rng.Intn(len(users))]
		sw := software[s.rng.Intn(len(software))]
		now := time.Now().UTC()

		comment := &models.Comment{
			UserID:           user.ID,
			Username:         user.Username,
			SoftwareID:       sw.ID,
			Content:          gofakeit.Sentence(12),
			SatisfactionRate: s.rng.Intn(models.MaxSatisfactionRate) + 1,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		if err := s.repo.CreateComment(ctx, comment); err != nil {
			return fmt.Errorf("failed to seed comment: %w", err)
		}
	}
	return nil
}

func pick[T any](rng *rand.Rand, items []T) T {
	return items[rng.Intn(len(items))]
}
