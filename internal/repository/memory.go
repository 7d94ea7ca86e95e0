package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rockymountnc/licensetracker/internal/models"
)

// MemoryRepository is an in-memory Repository for development and tests.
type MemoryRepository struct {
	mu sync.RWMutex

	users     map[string]*models.User
	blacklist map[string]time.Time

	software     map[int64]*models.Software
	comments     map[int64]*models.Comment
	departments  map[int64]*models.Department
	vendors      map[int64]*models.Vendor
	divisions    map[int64]*models.Division
	glAccounts   map[int64]*models.GlAccount
	swToOperate  map[int64]*models.SoftwareToOperate
	hwToOperate  map[int64]*models.HardwareToOperate
	contacts     map[int64]*models.ContactPerson
	nextSoftware int64
	nextComment  int64
	nextCatalog  int64
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		users:        make(map[string]*models.User),
		blacklist:    make(map[string]time.Time),
		software:     make(map[int64]*models.Software),
		comments:     make(map[int64]*models.Comment),
		departments:  make(map[int64]*models.Department),
		vendors:      make(map[int64]*models.Vendor),
		divisions:    make(map[int64]*models.Division),
		glAccounts:   make(map[int64]*models.GlAccount),
		swToOperate:  make(map[int64]*models.SoftwareToOperate),
		hwToOperate:  make(map[int64]*models.HardwareToOperate),
		contacts:     make(map[int64]*models.ContactPerson),
		nextSoftware: 1,
		nextComment:  1,
		nextCatalog:  1,
	}
}

func (r *MemoryRepository) Close() {}

// ----------------------------------------------------------------------------
// Users
// ----------------------------------------------------------------------------

func (r *MemoryRepository) CreateUser(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return ErrUserExists
		}
	}

	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *MemoryRepository) GetUserByID(_ context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *MemoryRepository) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Username == username {
			clone := *user
			return &clone, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *MemoryRepository) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *MemoryRepository) GetUserByLogin(_ context.Context, identifier string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Username == identifier || user.Email == identifier {
			clone := *user
			return &clone, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *MemoryRepository) UpdateUserGroups(_ context.Context, id string, groups []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return ErrUserNotFound
	}
	user.Groups = append([]string(nil), groups...)
	user.UpdatedAt = time.Now().UTC()
	return nil
}

// ----------------------------------------------------------------------------
// Token blacklist
// ----------------------------------------------------------------------------

func (r *MemoryRepository) InsertToken(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.blacklist[token]; !ok {
		r.blacklist[token] = time.Now().UTC()
	}
	return nil
}

func (r *MemoryRepository) TokenExists(_ context.Context, token string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.blacklist[token]
	return ok, nil
}

func (r *MemoryRepository) DeleteTokensBefore(_ context.Context, cutoff time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for token, at := range r.blacklist {
		if at.Before(cutoff) {
			delete(r.blacklist, token)
		}
	}
	return nil
}

// ----------------------------------------------------------------------------
// Software
// ----------------------------------------------------------------------------

func cloneSoftware(sw *models.Software) *models.Software {
	clone := *sw
	clone.Departments = append([]models.Department(nil), sw.Departments...)
	clone.Vendors = append([]models.Vendor(nil), sw.Vendors...)
	clone.ContactPeople = append([]models.ContactPerson(nil), sw.ContactPeople...)
	clone.Divisions = append([]models.Division(nil), sw.Divisions...)
	clone.GlAccounts = append([]models.GlAccount(nil), sw.GlAccounts...)
	clone.SoftwareToOperate = append([]models.SoftwareToOperate(nil), sw.SoftwareToOperate...)
	clone.HardwareToOperate = append([]models.HardwareToOperate(nil), sw.HardwareToOperate...)
	return &clone
}

func (r *MemoryRepository) ListSoftware(_ context.Context) ([]*models.Software, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]*models.Software, 0, len(r.software))
	for _, sw := range r.software {
		list = append(list, cloneSoftware(sw))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *MemoryRepository) GetSoftware(_ context.Context, id int64) (*models.Software, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sw, ok := r.software[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneSoftware(sw), nil
}

func (r *MemoryRepository) CreateSoftware(_ context.Context, sw *models.Software) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sw.ID = r.nextSoftware
	r.nextSoftware++
	r.software[sw.ID] = cloneSoftware(sw)
	return nil
}

func (r *MemoryRepository) UpdateSoftware(_ context.Context, sw *models.Software) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.software[sw.ID]; !ok {
		return ErrNotFound
	}
	r.software[sw.ID] = cloneSoftware(sw)
	return nil
}

func (r *MemoryRepository) DeleteSoftware(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.software[id]; !ok {
		return ErrNotFound
	}
	delete(r.software, id)
	for cid, c := range r.comments {
		if c.SoftwareID == id {
			delete(r.comments, cid)
		}
	}
	return nil
}

// ----------------------------------------------------------------------------
// Comments
// ----------------------------------------------------------------------------

func (r *MemoryRepository) listComments(filter func(*models.Comment) bool) []*models.Comment {
	list := make([]*models.Comment, 0, len(r.comments))
	for _, c := range r.comments {
		if filter == nil || filter(c) {
			clone := *c
			list = append(list, &clone)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}

func (r *MemoryRepository) ListComments(_ context.Context) ([]*models.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.listComments(nil), nil
}

func (r *MemoryRepository) ListCommentsBySoftware(_ context.Context, softwareID int64) ([]*models.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.listComments(func(c *models.Comment) bool { return c.SoftwareID == softwareID }), nil
}

func (r *MemoryRepository) GetComment(_ context.Context, id int64) (*models.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.comments[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *MemoryRepository) CreateComment(_ context.Context, comment *models.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user, ok := r.users[comment.UserID]; ok {
		comment.Username = user.Username
	}
	comment.ID = r.nextComment
	r.nextComment++
	clone := *comment
	r.comments[comment.ID] = &clone
	return nil
}

func (r *MemoryRepository) UpdateComment(_ context.Context, comment *models.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.comments[comment.ID]
	if !ok {
		return ErrNotFound
	}
	comment.Username = existing.Username
	clone := *comment
	r.comments[comment.ID] = &clone
	return nil
}

func (r *MemoryRepository) DeleteComment(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.comments[id]; !ok {
		return ErrNotFound
	}
	delete(r.comments, id)
	return nil
}

// ----------------------------------------------------------------------------
// Catalogs
// ----------------------------------------------------------------------------

func (r *MemoryRepository) nextCatalogID() int64 {
	id := r.nextCatalog
	r.nextCatalog++
	return id
}

func (r *MemoryRepository) ListDepartments(_ context.Context) ([]*models.Department, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]*models.Department, 0, len(r.departments))
	for _, d := range r.departments {
		clone := *d
		list = append(list, &clone)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *MemoryRepository) CreateDepartment(_ context.Context, d *models.Department) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	d.ID = r.nextCatalogID()
	clone := *d
	r.departments[d.ID] = &clone
	return nil
}

func (r *MemoryRepository) ListVendors(_ context.Context) ([]*models.Vendor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]*models.Vendor, 0, len(r.vendors))
	for _, v := range r.vendors {
		clone := *v
		list = append(list, &clone)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *MemoryRepository) CreateVendor(_ context.Context, v *models.Vendor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	v.ID = r.nextCatalogID()
	clone := *v
	r.vendors[v.ID] = &clone
	return nil
}

func (r *MemoryRepository) ListDivisions(_ context.Context) ([]*models.Division, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]*models.Division, 0, len(r.divisions))
	for _, d := range r.divisions {
		clone := *d
		list = append(list, &clone)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *MemoryRepository) CreateDivision(_ context.Context, d *models.Division) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	d.ID = r.nextCatalogID()
	clone := *d
	r.divisions[d.ID] = &clone
	return nil
}

func (r *MemoryRepository) ListGlAccounts(_ context.Context) ([]*models.GlAccount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]*models.GlAccount, 0, len(r.glAccounts))
	for _, a := range r.glAccounts {
		clone := *a
		list = append(list, &clone)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *MemoryRepository) CreateGlAccount(_ context.Context, a *models.GlAccount) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a.ID = r.nextCatalogID()
	clone := *a
	r.glAccounts[a.ID] = &clone
	return nil
}

func (r *MemoryRepository) ListSoftwareToOperate(_ context.Context) ([]*models.SoftwareToOperate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]*models.SoftwareToOperate, 0, len(r.swToOperate))
	for _, s := range r.swToOperate {
		clone := *s
		list = append(list, &clone)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *MemoryRepository) CreateSoftwareToOperate(_ context.Context, s *models.SoftwareToOperate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s.ID = r.nextCatalogID()
	clone := *s
	r.swToOperate[s.ID] = &clone
	return nil
}

func (r *MemoryRepository) ListHardwareToOperate(_ context.Context) ([]*models.HardwareToOperate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]*models.HardwareToOperate, 0, len(r.hwToOperate))
	for _, h := range r.hwToOperate {
		clone := *h
		list = append(list, &clone)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *MemoryRepository) CreateHardwareToOperate(_ context.Context, h *models.HardwareToOperate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	h.ID = r.nextCatalogID()
	clone := *h
	r.hwToOperate[h.ID] = &clone
	return nil
}

func (r *MemoryRepository) ListContactPeople(_ context.Context) ([]*models.ContactPerson, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]*models.ContactPerson, 0, len(r.contacts))
	for _, c := range r.contacts {
		clone := *c
		list = append(list, &clone)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *MemoryRepository) GetContactPerson(_ context.Context, id int64) (*models.ContactPerson, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.contacts[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *MemoryRepository) CreateContactPerson(_ context.Context, c *models.ContactPerson) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c.ID = r.nextCatalogID()
	clone := *c
	r.contacts[c.ID] = &clone
	return nil
}
