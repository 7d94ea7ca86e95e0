package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rockymountnc/licensetracker/internal/models"
)

const queryTimeout = 5 * time.Second

type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(ctx context.Context, connString string) (*PostgresRepository, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	config.MaxConns = 25
	config.MinConns = 5
	config.MaxConnLifetime = 5 * time.Minute
	config.MaxConnIdleTime = time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRepository{pool: pool}, nil
}

func (r *PostgresRepository) Close() {
	r.pool.Close()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// ----------------------------------------------------------------------------
// Users
// ----------------------------------------------------------------------------

const userColumns = `id, username, email, password_hash, first_name, last_name, groups, created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.FirstName, &user.LastName, &user.Groups,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return &user, nil
}

func (r *PostgresRepository) CreateUser(ctx context.Context, user *models.User) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `
		INSERT INTO users (id, username, email, password_hash, first_name, last_name, groups, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		user.ID, user.Username, user.Email, user.PasswordHash,
		user.FirstName, user.LastName, user.Groups,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrUserExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *PostgresRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.pool.QueryRow(ctx, query, id))
}

func (r *PostgresRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return scanUser(r.pool.QueryRow(ctx, query, username))
}

func (r *PostgresRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.pool.QueryRow(ctx, query, email))
}

func (r *PostgresRepository) GetUserByLogin(ctx context.Context, identifier string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1 OR email = $1`
	return scanUser(r.pool.QueryRow(ctx, query, identifier))
}

func (r *PostgresRepository) UpdateUserGroups(ctx context.Context, id string, groups []string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `UPDATE users SET groups = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id, groups)
	if err != nil {
		return fmt.Errorf("failed to update user groups: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}

// ----------------------------------------------------------------------------
// Token blacklist
// ----------------------------------------------------------------------------

func (r *PostgresRepository) InsertToken(ctx context.Context, token string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	// Duplicate inserts are an idempotent no-op.
	query := `
		INSERT INTO blacklisted_tokens (token, blacklisted_at)
		VALUES ($1, NOW())
		ON CONFLICT (token) DO NOTHING
	`

	if _, err := r.pool.Exec(ctx, query, token); err != nil {
		return fmt.Errorf("failed to blacklist token: %w", err)
	}
	return nil
}

func (r *PostgresRepository) TokenExists(ctx context.Context, token string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM blacklisted_tokens WHERE token = $1)`
	if err := r.pool.QueryRow(ctx, query, token).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check blacklist: %w", err)
	}
	return exists, nil
}

func (r *PostgresRepository) DeleteTokensBefore(ctx context.Context, cutoff time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `DELETE FROM blacklisted_tokens WHERE blacklisted_at < $1`
	if _, err := r.pool.Exec(ctx, query, cutoff); err != nil {
		return fmt.Errorf("failed to purge blacklist: %w", err)
	}
	return nil
}

// ----------------------------------------------------------------------------
// Software
// ----------------------------------------------------------------------------

const softwareColumns = `id, name, description, version, years_of_use, last_updated,
	expiration_date, operational_status, hosting, tech_supported, cloud_based,
	maintenance_support, number_of_licenses, annual_amount`

func scanSoftware(row pgx.Row) (*models.Software, error) {
	var sw models.Software
	err := row.Scan(
		&sw.ID, &sw.Name, &sw.Description, &sw.Version, &sw.YearsOfUse,
		&sw.LastUpdated, &sw.ExpirationDate, &sw.OperationalStatus,
		&sw.Hosting, &sw.TechSupported, &sw.CloudBased,
		&sw.MaintenanceSupport, &sw.NumberOfLicenses, &sw.AnnualAmount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan software: %w", err)
	}
	return &sw, nil
}

func (r *PostgresRepository) ListSoftware(ctx context.Context) ([]*models.Software, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.pool.Query(ctx, `SELECT `+softwareColumns+` FROM software ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list software: %w", err)
	}
	defer rows.Close()

	var list []*models.Software
	for rows.Next() {
		sw, err := scanSoftware(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, sw)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating software: %w", err)
	}

	for _, sw := range list {
		if err := r.loadSoftwareLinks(ctx, sw); err != nil {
			return nil, err
		}
	}

	return list, nil
}

func (r *PostgresRepository) GetSoftware(ctx context.Context, id int64) (*models.Software, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	sw, err := scanSoftware(r.pool.QueryRow(ctx, `SELECT `+softwareColumns+` FROM software WHERE id = $1`, id))
	if err != nil {
		return nil, err
	}
	if err := r.loadSoftwareLinks(ctx, sw); err != nil {
		return nil, err
	}
	return sw, nil
}

func (r *PostgresRepository) CreateSoftware(ctx context.Context, sw *models.Software) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO software (name, description, version, years_of_use, last_updated,
			expiration_date, operational_status, hosting, tech_supported, cloud_based,
			maintenance_support, number_of_licenses, annual_amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id
	`

	err = tx.QueryRow(ctx, query,
		sw.Name, sw.Description, sw.Version, sw.YearsOfUse, sw.LastUpdated,
		sw.ExpirationDate, sw.OperationalStatus, sw.Hosting, sw.TechSupported,
		sw.CloudBased, sw.MaintenanceSupport, sw.NumberOfLicenses, sw.AnnualAmount,
	).Scan(&sw.ID)
	if err != nil {
		return fmt.Errorf("failed to create software: %w", err)
	}

	if err := r.replaceSoftwareLinks(ctx, tx, sw); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit software: %w", err)
	}

	return r.loadSoftwareLinks(ctx, sw)
}

func (r *PostgresRepository) UpdateSoftware(ctx context.Context, sw *models.Software) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE software
		SET name = $2, description = $3, version = $4, years_of_use = $5,
			last_updated = $6, expiration_date = $7, operational_status = $8,
			hosting = $9, tech_supported = $10, cloud_based = $11,
			maintenance_support = $12, number_of_licenses = $13, annual_amount = $14
		WHERE id = $1
	`

	result, err := tx.Exec(ctx, query,
		sw.ID, sw.Name, sw.Description, sw.Version, sw.YearsOfUse, sw.LastUpdated,
		sw.ExpirationDate, sw.OperationalStatus, sw.Hosting, sw.TechSupported,
		sw.CloudBased, sw.MaintenanceSupport, sw.NumberOfLicenses, sw.AnnualAmount,
	)
	if err != nil {
		return fmt.Errorf("failed to update software: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	if err := r.replaceSoftwareLinks(ctx, tx, sw); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit software: %w", err)
	}

	return r.loadSoftwareLinks(ctx, sw)
}

func (r *PostgresRepository) DeleteSoftware(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := r.pool.Exec(ctx, `DELETE FROM software WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete software: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// softwareLinkTables maps each link table to its catalog column. Link rows
// are replaced wholesale on every write, mirroring the set-style semantics
// of the API payloads.
var softwareLinkTables = []struct {
	table  string
	column string
}{
	{"software_departments", "department_id"},
	{"software_vendors", "vendor_id"},
	{"software_contacts", "contact_id"},
	{"software_divisions", "division_id"},
	{"software_gl_accounts", "gl_account_id"},
	{"software_operating_software", "operating_software_id"},
	{"software_operating_hardware", "operating_hardware_id"},
}

func softwareLinkIDs(sw *models.Software) [][]int64 {
	ids := make([][]int64, 7)
	for _, d := range sw.Departments {
		ids[0] = append(ids[0], d.ID)
	}
	for _, v := range sw.Vendors {
		ids[1] = append(ids[1], v.ID)
	}
	for _, c := range sw.ContactPeople {
		ids[2] = append(ids[2], c.ID)
	}
	for _, d := range sw.Divisions {
		ids[3] = append(ids[3], d.ID)
	}
	for _, a := range sw.GlAccounts {
		ids[4] = append(ids[4], a.ID)
	}
	for _, s := range sw.SoftwareToOperate {
		ids[5] = append(ids[5], s.ID)
	}
	for _, h := range sw.HardwareToOperate {
		ids[6] = append(ids[6], h.ID)
	}
	return ids
}

func (r *PostgresRepository) replaceSoftwareLinks(ctx context.Context, tx pgx.Tx, sw *models.Software) error {
	ids := softwareLinkIDs(sw)
	for i, link := range softwareLinkTables {
		if _, err := tx.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE software_id = $1`, link.table), sw.ID); err != nil {
			return fmt.Errorf("failed to clear %s: %w", link.table, err)
		}
		for _, id := range ids[i] {
			query := fmt.Sprintf(`INSERT INTO %s (software_id, %s) VALUES ($1, $2) ON CONFLICT DO NOTHING`, link.table, link.column)
			if _, err := tx.Exec(ctx, query, sw.ID, id); err != nil {
				return fmt.Errorf("failed to link %s: %w", link.table, err)
			}
		}
	}
	return nil
}

func (r *PostgresRepository) loadSoftwareLinks(ctx context.Context, sw *models.Software) error {
	sw.Departments = []models.Department{}
	sw.Vendors = []models.Vendor{}
	sw.ContactPeople = []models.ContactPerson{}
	sw.Divisions = []models.Division{}
	sw.GlAccounts = []models.GlAccount{}
	sw.SoftwareToOperate = []models.SoftwareToOperate{}
	sw.HardwareToOperate = []models.HardwareToOperate{}

	rows, err := r.pool.Query(ctx, `
		SELECT d.id, d.name, d.code FROM departments d
		JOIN software_departments l ON l.department_id = d.id
		WHERE l.software_id = $1 ORDER BY d.id`, sw.ID)
	if err != nil {
		return fmt.Errorf("failed to load departments: %w", err)
	}
	for rows.Next() {
		var d models.Department
		if err := rows.Scan(&d.ID, &d.Name, &d.Code); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan department: %w", err)
		}
		sw.Departments = append(sw.Departments, d)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating departments: %w", err)
	}

	rows, err = r.pool.Query(ctx, `
		SELECT v.id, v.name FROM vendors v
		JOIN software_vendors l ON l.vendor_id = v.id
		WHERE l.software_id = $1 ORDER BY v.id`, sw.ID)
	if err != nil {
		return fmt.Errorf("failed to load vendors: %w", err)
	}
	for rows.Next() {
		var v models.Vendor
		if err := rows.Scan(&v.ID, &v.Name); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan vendor: %w", err)
		}
		sw.Vendors = append(sw.Vendors, v)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating vendors: %w", err)
	}

	rows, err = r.pool.Query(ctx, `
		SELECT c.id, c.first_name, c.last_name, c.email, c.phone_number, c.public_id
		FROM contact_people c
		JOIN software_contacts l ON l.contact_id = c.id
		WHERE l.software_id = $1 ORDER BY c.id`, sw.ID)
	if err != nil {
		return fmt.Errorf("failed to load contacts: %w", err)
	}
	for rows.Next() {
		var c models.ContactPerson
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.PhoneNumber, &c.PublicID); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan contact: %w", err)
		}
		sw.ContactPeople = append(sw.ContactPeople, c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating contacts: %w", err)
	}

	rows, err = r.pool.Query(ctx, `
		SELECT d.id, d.name, d.code FROM divisions d
		JOIN software_divisions l ON l.division_id = d.id
		WHERE l.software_id = $1 ORDER BY d.id`, sw.ID)
	if err != nil {
		return fmt.Errorf("failed to load divisions: %w", err)
	}
	for rows.Next() {
		var d models.Division
		if err := rows.Scan(&d.ID, &d.Name, &d.Code); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan division: %w", err)
		}
		sw.Divisions = append(sw.Divisions, d)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating divisions: %w", err)
	}

	rows, err = r.pool.Query(ctx, `
		SELECT a.id, a.name FROM gl_accounts a
		JOIN software_gl_accounts l ON l.gl_account_id = a.id
		WHERE l.software_id = $1 ORDER BY a.id`, sw.ID)
	if err != nil {
		return fmt.Errorf("failed to load gl accounts: %w", err)
	}
	for rows.Next() {
		var a models.GlAccount
		if err := rows.Scan(&a.ID, &a.Name); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan gl account: %w", err)
		}
		sw.GlAccounts = append(sw.GlAccounts, a)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating gl accounts: %w", err)
	}

	rows, err = r.pool.Query(ctx, `
		SELECT s.id, s.name FROM software_to_operate s
		JOIN software_operating_software l ON l.operating_software_id = s.id
		WHERE l.software_id = $1 ORDER BY s.id`, sw.ID)
	if err != nil {
		return fmt.Errorf("failed to load software to operate: %w", err)
	}
	for rows.Next() {
		var s models.SoftwareToOperate
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan software to operate: %w", err)
		}
		sw.SoftwareToOperate = append(sw.SoftwareToOperate, s)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating software to operate: %w", err)
	}

	rows, err = r.pool.Query(ctx, `
		SELECT h.id, h.name FROM hardware_to_operate h
		JOIN software_operating_hardware l ON l.operating_hardware_id = h.id
		WHERE l.software_id = $1 ORDER BY h.id`, sw.ID)
	if err != nil {
		return fmt.Errorf("failed to load hardware to operate: %w", err)
	}
	for rows.Next() {
		var h models.HardwareToOperate
		if err := rows.Scan(&h.ID, &h.Name); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan hardware to operate: %w", err)
		}
		sw.HardwareToOperate = append(sw.HardwareToOperate, h)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating hardware to operate: %w", err)
	}

	return nil
}

// ----------------------------------------------------------------------------
// Comments
// ----------------------------------------------------------------------------

const commentColumns = `c.id, c.user_id, u.username, c.software_id, c.content, c.satisfaction_rate, c.created_at, c.updated_at`

func scanComment(row pgx.Row) (*models.Comment, error) {
	var c models.Comment
	err := row.Scan(
		&c.ID, &c.UserID, &c.Username, &c.SoftwareID,
		&c.Content, &c.SatisfactionRate, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan comment: %w", err)
	}
	return &c, nil
}

func (r *PostgresRepository) queryComments(ctx context.Context, query string, args ...any) ([]*models.Comment, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	var comments []*models.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comments: %w", err)
	}
	return comments, nil
}

func (r *PostgresRepository) ListComments(ctx context.Context) ([]*models.Comment, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `SELECT ` + commentColumns + ` FROM comments c JOIN users u ON u.id = c.user_id ORDER BY c.id`
	return r.queryComments(ctx, query)
}

func (r *PostgresRepository) ListCommentsBySoftware(ctx context.Context, softwareID int64) ([]*models.Comment, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `SELECT ` + commentColumns + ` FROM comments c JOIN users u ON u.id = c.user_id WHERE c.software_id = $1 ORDER BY c.id`
	return r.queryComments(ctx, query, softwareID)
}

func (r *PostgresRepository) GetComment(ctx context.Context, id int64) (*models.Comment, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `SELECT ` + commentColumns + ` FROM comments c JOIN users u ON u.id = c.user_id WHERE c.id = $1`
	return scanComment(r.pool.QueryRow(ctx, query, id))
}

func (r *PostgresRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `
		INSERT INTO comments (user_id, software_id, content, satisfaction_rate, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := r.pool.QueryRow(ctx, query,
		comment.UserID, comment.SoftwareID, comment.Content,
		comment.SatisfactionRate, comment.CreatedAt, comment.UpdatedAt,
	).Scan(&comment.ID)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

func (r *PostgresRepository) UpdateComment(ctx context.Context, comment *models.Comment) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `
		UPDATE comments
		SET software_id = $2, content = $3, satisfaction_rate = $4, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		comment.ID, comment.SoftwareID, comment.Content, comment.SatisfactionRate,
	)
	if err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteComment(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := r.pool.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ----------------------------------------------------------------------------
// Catalogs
// ----------------------------------------------------------------------------

func (r *PostgresRepository) ListDepartments(ctx context.Context) ([]*models.Department, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.pool.Query(ctx, `SELECT id, name, code FROM departments ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	defer rows.Close()

	var list []*models.Department
	for rows.Next() {
		var d models.Department
		if err := rows.Scan(&d.ID, &d.Name, &d.Code); err != nil {
			return nil, fmt.Errorf("failed to scan department: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

func (r *PostgresRepository) CreateDepartment(ctx context.Context, d *models.Department) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	err := r.pool.QueryRow(ctx,
		`INSERT INTO departments (name, code) VALUES ($1, $2) RETURNING id`,
		d.Name, d.Code,
	).Scan(&d.ID)
	if err != nil {
		return fmt.Errorf("failed to create department: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListVendors(ctx context.Context) ([]*models.Vendor, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.pool.Query(ctx, `SELECT id, name FROM vendors ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list vendors: %w", err)
	}
	defer rows.Close()

	var list []*models.Vendor
	for rows.Next() {
		var v models.Vendor
		if err := rows.Scan(&v.ID, &v.Name); err != nil {
			return nil, fmt.Errorf("failed to scan vendor: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}

func (r *PostgresRepository) CreateVendor(ctx context.Context, v *models.Vendor) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	err := r.pool.QueryRow(ctx,
		`INSERT INTO vendors (name) VALUES ($1) RETURNING id`, v.Name,
	).Scan(&v.ID)
	if err != nil {
		return fmt.Errorf("failed to create vendor: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListDivisions(ctx context.Context) ([]*models.Division, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.pool.Query(ctx, `SELECT id, name, code FROM divisions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list divisions: %w", err)
	}
	defer rows.Close()

	var list []*models.Division
	for rows.Next() {
		var d models.Division
		if err := rows.Scan(&d.ID, &d.Name, &d.Code); err != nil {
			return nil, fmt.Errorf("failed to scan division: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

func (r *PostgresRepository) CreateDivision(ctx context.Context, d *models.Division) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	err := r.pool.QueryRow(ctx,
		`INSERT INTO divisions (name, code) VALUES ($1, $2) RETURNING id`,
		d.Name, d.Code,
	).Scan(&d.ID)
	if err != nil {
		return fmt.Errorf("failed to create division: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListGlAccounts(ctx context.Context) ([]*models.GlAccount, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.pool.Query(ctx, `SELECT id, name FROM gl_accounts ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list gl accounts: %w", err)
	}
	defer rows.Close()

	var list []*models.GlAccount
	for rows.Next() {
		var a models.GlAccount
		if err := rows.Scan(&a.ID, &a.Name); err != nil {
			return nil, fmt.Errorf("failed to scan gl account: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

func (r *PostgresRepository) CreateGlAccount(ctx context.Context, a *models.GlAccount) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	err := r.pool.QueryRow(ctx,
		`INSERT INTO gl_accounts (name) VALUES ($1) RETURNING id`, a.Name,
	).Scan(&a.ID)
	if err != nil {
		return fmt.Errorf("failed to create gl account: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListSoftwareToOperate(ctx context.Context) ([]*models.SoftwareToOperate, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.pool.Query(ctx, `SELECT id, name FROM software_to_operate ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list software to operate: %w", err)
	}
	defer rows.Close()

	var list []*models.SoftwareToOperate
	for rows.Next() {
		var s models.SoftwareToOperate
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, fmt.Errorf("failed to scan software to operate: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

func (r *PostgresRepository) CreateSoftwareToOperate(ctx context.Context, s *models.SoftwareToOperate) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	err := r.pool.QueryRow(ctx,
		`INSERT INTO software_to_operate (name) VALUES ($1) RETURNING id`, s.Name,
	).Scan(&s.ID)
	if err != nil {
		return fmt.Errorf("failed to create software to operate: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListHardwareToOperate(ctx context.Context) ([]*models.HardwareToOperate, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.pool.Query(ctx, `SELECT id, name FROM hardware_to_operate ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list hardware to operate: %w", err)
	}
	defer rows.Close()

	var list []*models.HardwareToOperate
	for rows.Next() {
		var h models.HardwareToOperate
		if err := rows.Scan(&h.ID, &h.Name); err != nil {
			return nil, fmt.Errorf("failed to scan hardware to operate: %w", err)
		}
		list = append(list, &h)
	}
	return list, rows.Err()
}

func (r *PostgresRepository) CreateHardwareToOperate(ctx context.Context, h *models.HardwareToOperate) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	err := r.pool.QueryRow(ctx,
		`INSERT INTO hardware_to_operate (name) VALUES ($1) RETURNING id`, h.Name,
	).Scan(&h.ID)
	if err != nil {
		return fmt.Errorf("failed to create hardware to operate: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListContactPeople(ctx context.Context) ([]*models.ContactPerson, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.pool.Query(ctx,
		`SELECT id, first_name, last_name, email, phone_number, public_id FROM contact_people ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list contact people: %w", err)
	}
	defer rows.Close()

	var list []*models.ContactPerson
	for rows.Next() {
		var c models.ContactPerson
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.PhoneNumber, &c.PublicID); err != nil {
			return nil, fmt.Errorf("failed to scan contact person: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

func (r *PostgresRepository) GetContactPerson(ctx context.Context, id int64) (*models.ContactPerson, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var c models.ContactPerson
	err := r.pool.QueryRow(ctx,
		`SELECT id, first_name, last_name, email, phone_number, public_id FROM contact_people WHERE id = $1`, id,
	).Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.PhoneNumber, &c.PublicID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get contact person: %w", err)
	}
	return &c, nil
}

func (r *PostgresRepository) CreateContactPerson(ctx context.Context, c *models.ContactPerson) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	err := r.pool.QueryRow(ctx,
		`INSERT INTO contact_people (first_name, last_name, email, phone_number, public_id)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		c.FirstName, c.LastName, c.Email, c.PhoneNumber, c.PublicID,
	).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("failed to create contact person: %w", err)
	}
	return nil
}
