package models

import "time"

// Software field enumerations, stored as short codes the way the schema
// defines them. Request payloads may carry the long form ("Active",
// "Inactive") for operational status; handlers normalize before storage.
const (
	HostingInternal = "INT"
	HostingExternal = "EXT"

	ChoiceYes = "YES"
	ChoiceNo  = "NO"

	StatusActive   = "A"
	StatusInactive = "I"
)

// Software is a tracked license record along with its catalog links.
type Software struct {
	ID                 int64      `json:"id"`
	Name               string     `json:"software_name"`
	Description        string     `json:"software_description"`
	Version            string     `json:"software_version"`
	YearsOfUse         *int       `json:"software_years_of_use"`
	LastUpdated        *time.Time `json:"software_last_updated"`
	ExpirationDate     *time.Time `json:"software_expiration_date"`
	OperationalStatus  string     `json:"software_operational_status"`
	Hosting            string     `json:"software_is_hosted"`
	TechSupported      string     `json:"software_is_tech_supported"`
	CloudBased         string     `json:"software_is_cloud_based"`
	MaintenanceSupport string     `json:"software_maintenance_support"`
	NumberOfLicenses   int        `json:"software_number_of_licenses"`
	AnnualAmount       *float64   `json:"software_annual_amount"`

	Departments       []Department        `json:"software_department"`
	Vendors           []Vendor            `json:"software_vendor"`
	ContactPeople     []ContactPerson     `json:"software_department_contact_people"`
	Divisions         []Division          `json:"software_divisions_using"`
	GlAccounts        []GlAccount         `json:"software_gl_accounts"`
	SoftwareToOperate []SoftwareToOperate `json:"software_to_operate"`
	HardwareToOperate []HardwareToOperate `json:"hardware_to_operate"`
}

// NormalizeOperationalStatus maps the long-form status used by clients onto
// the stored single-letter code. Unrecognized values pass through so the
// short codes remain accepted.
func NormalizeOperationalStatus(status string) string {
	switch status {
	case "Active":
		return StatusActive
	case "Inactive":
		return StatusInactive
	default:
		return status
	}
}
