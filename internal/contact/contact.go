// Package contact defines the contact record and the input rules every
// field must satisfy before it is stored.
package contact

import (
	"errors"
	"fmt"
)

// ErrInvalidField indicates a contact field does not match its rule.
var ErrInvalidField = errors.New("contact: invalid field")

// Field names one of the five contact attributes.
// Values double as the JSON keys and the display labels.
type Field string

const (
	FieldName        Field = "Name"
	FieldAge         Field = "Age"
	FieldPhoneNumber Field = "Phone Number"
	FieldEmail       Field = "Email"
	FieldAddress     Field = "Address"
)

// Fields returns the contact fields in stored key order.
func Fields() []Field {
	return []Field{FieldName, FieldAge, FieldPhoneNumber, FieldEmail, FieldAddress}
}

// Rule returns the validation rule named after the field.
func (f Field) Rule() Rule {
	return Rule(f)
}

// Contact is one person's record. Age is kept as text.
type Contact struct {
	Name        string `json:"Name"`
	Age         string `json:"Age"`
	PhoneNumber string `json:"Phone Number"`
	Email       string `json:"Email"`
	Address     string `json:"Address"`
}

// Get returns the value of field f.
func (c Contact) Get(f Field) string {
	switch f {
	case FieldName:
		return c.Name
	case FieldAge:
		return c.Age
	case FieldPhoneNumber:
		return c.PhoneNumber
	case FieldEmail:
		return c.Email
	case FieldAddress:
		return c.Address
	}
	return ""
}

// Set overwrites the value of field f. Unknown fields are ignored.
func (c *Contact) Set(f Field, v string) {
	switch f {
	case FieldName:
		c.Name = v
	case FieldAge:
		c.Age = v
	case FieldPhoneNumber:
		c.PhoneNumber = v
	case FieldEmail:
		c.Email = v
	case FieldAddress:
		c.Address = v
	}
}

// Validate reports the first field that does not match its rule.
func (c Contact) Validate() error {
	for _, f := range Fields() {
		if !f.Rule().Match(c.Get(f)) {
			return fmt.Errorf("%w: %s %q", ErrInvalidField, f, c.Get(f))
		}
	}
	return nil
}
