package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Employee mirrors one row of the employees table. JSON keys follow the API
// contract; employee_id is the business code, not the row id.
type Employee struct {
	ID                    int64               `json:"id"`
	EmployeeCode          string              `json:"employee_id"`
	FirstName             string              `json:"first_name"`
	LastName              string              `json:"last_name"`
	Email                 string              `json:"email"`
	Phone                 *string             `json:"phone"`
	Department            *string             `json:"department"`
	Position              *string             `json:"position"`
	Salary                decimal.NullDecimal `json:"salary"`
	HireDate              *time.Time          `json:"hire_date"`
	Status                string              `json:"status"`
	Address               *string             `json:"address"`
	EmergencyContactName  *string             `json:"emergency_contact_name"`
	EmergencyContactPhone *string             `json:"emergency_contact_phone"`
	CreatedBy             *int64              `json:"created_by"`
	CreatedAt             time.Time           `json:"created_at"`
	UpdatedAt             time.Time           `json:"updated_at"`
}

// Input is the write payload as submitted by clients. Everything arrives as
// strings (the frontend posts form values); Normalize turns it into typed
// fields.
type Input struct {
	EmployeeCode          string `json:"employee_id"`
	FirstName             string `json:"first_name"`
	LastName              string `json:"last_name"`
	Email                 string `json:"email"`
	Phone                 string `json:"phone"`
	Department            string `json:"department"`
	Position              string `json:"position"`
	Salary                string `json:"salary"`
	HireDate              string `json:"hire_date"`
	Status                string `json:"status"`
	Address               string `json:"address"`
	EmergencyContactName  string `json:"emergency_contact_name"`
	EmergencyContactPhone string `json:"emergency_contact_phone"`
}

// Fields is the normalized, storage-ready form of an Input.
type Fields struct {
	EmployeeCode          string
	FirstName             string
	LastName              string
	Email                 string
	Phone                 *string
	Department            *string
	Position              *string
	Salary                decimal.NullDecimal
	HireDate              *time.Time
	Status                string
	Address               *string
	EmergencyContactName  *string
	EmergencyContactPhone *string
}
