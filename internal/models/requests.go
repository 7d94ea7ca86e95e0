package models

import "time"

type RegisterRequest struct {
	Username        string `json:"username"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// LoginRequest accepts either a username or an email as the identifier.
type LoginRequest struct {
	LoginIdentifier string `json:"login_identifier"`
	Password        string `json:"password"`
}

type UserResponse struct {
	ID        string   `json:"id"`
	Username  string   `json:"username"`
	Email     string   `json:"email"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Groups    []string `json:"groups"`
}

type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        UserResponse `json:"user"`
}

type LogoutResponse struct {
	Message string `json:"message"`
}

func (u *User) ToResponse() UserResponse {
	groups := u.Groups
	if groups == nil {
		groups = []string{}
	}
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Groups:    groups,
	}
}

// CatalogRef identifies an existing catalog row inside a software payload.
// Only the ID is honored on writes; the name is carried for display.
type CatalogRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name,omitempty"`
}

type SoftwareRequest struct {
	Name               string   `json:"software_name"`
	Description        string   `json:"software_description"`
	Version            string   `json:"software_version"`
	YearsOfUse         *int     `json:"software_years_of_use"`
	LastUpdated        *string  `json:"software_last_updated"`
	ExpirationDate     *string  `json:"software_expiration_date"`
	OperationalStatus  string   `json:"software_operational_status"`
	Hosting            string   `json:"software_is_hosted"`
	TechSupported      string   `json:"software_is_tech_supported"`
	CloudBased         string   `json:"software_is_cloud_based"`
	MaintenanceSupport string   `json:"software_maintenance_support"`
	NumberOfLicenses   int      `json:"software_number_of_licenses"`
	AnnualAmount       *float64 `json:"software_annual_amount"`

	Departments       []CatalogRef `json:"software_department"`
	Vendors           []CatalogRef `json:"software_vendor"`
	ContactPeople     []CatalogRef `json:"software_department_contact_people"`
	Divisions         []CatalogRef `json:"software_divisions_using"`
	GlAccounts        []CatalogRef `json:"software_gl_accounts"`
	SoftwareToOperate []CatalogRef `json:"software_to_operate"`
	HardwareToOperate []CatalogRef `json:"hardware_to_operate"`
}

type CommentRequest struct {
	SoftwareID       int64  `json:"software_id"`
	UserID           string `json:"user_id"`
	Content          string `json:"content"`
	SatisfactionRate int    `json:"satisfaction_rate"`
}

type CommentPatchRequest struct {
	Content *string `json:"content"`
}

type ContactPersonRequest struct {
	FirstName   string `json:"contact_name"`
	LastName    string `json:"contact_lastname"`
	Email       string `json:"contact_email"`
	PhoneNumber *int64 `json:"contact_phone_number"`
}

// ErrorResponse is the uniform error schema for the API.
type ErrorResponse struct {
	Message string            `json:"message"`
	Code    string            `json:"code"`
	Details map[string]string `json:"details,omitempty"`
}

// ParseDate parses the yyyy-mm-dd date fields used in software payloads.
func ParseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
