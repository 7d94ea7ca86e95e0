package models

import (
	"crypto/sha1"
	"fmt"

	"github.com/google/uuid"
)

// Catalog entities are the small reference tables software records link to:
// departments, vendors, contact people, divisions, GL accounts and the
// software/hardware required to operate a system.

type Department struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Code *int   `json:"code,omitempty"`
}

type Vendor struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Division struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Code *int   `json:"code,omitempty"`
}

type GlAccount struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type SoftwareToOperate struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type HardwareToOperate struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type ContactPerson struct {
	ID          int64     `json:"id"`
	FirstName   string    `json:"contact_name"`
	LastName    string    `json:"contact_lastname"`
	Email       string    `json:"contact_email"`
	PhoneNumber *int64    `json:"contact_phone_number,omitempty"`
	PublicID    uuid.UUID `json:"public_id"`
}

// DerivePublicID computes the contact's stable public identifier from its
// fields: a UUID built from the leading bytes of a SHA-1 over the combined
// name, phone and email. Two contacts with identical fields share an ID.
func (c *ContactPerson) DerivePublicID() uuid.UUID {
	phone := ""
	if c.PhoneNumber != nil {
		phone = fmt.Sprintf("%d", *c.PhoneNumber)
	}
	combined := fmt.Sprintf("%s %s %s %s", c.FirstName, c.LastName, phone, c.Email)
	sum := sha1.Sum([]byte(combined))
	id, _ := uuid.FromBytes(sum[:16])
	return id
}
