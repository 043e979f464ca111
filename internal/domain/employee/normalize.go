package employee

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Normalize trims every string field, lowercases the email, and converts
// salary and hire date to their typed forms. Blank salary and hire date
// become NULL, never zero. Status defaults to active when unset; the update
// path relies on this (replace semantics).
func Normalize(in Input) (Fields, error) {
	salary, err := ParseSalary(in.Salary)
	if err != nil {
		return Fields{}, err
	}

	hireDate, err := ParseHireDate(in.HireDate)
	if err != nil {
		return Fields{}, err
	}

	status := strings.TrimSpace(in.Status)
	if status == "" {
		status = StatusActive
	}

	return Fields{
		EmployeeCode:          strings.TrimSpace(in.EmployeeCode),
		FirstName:             strings.TrimSpace(in.FirstName),
		LastName:              strings.TrimSpace(in.LastName),
		Email:                 strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:                 nilIfBlank(in.Phone),
		Department:            nilIfBlank(in.Department),
		Position:              nilIfBlank(in.Position),
		Salary:                salary,
		HireDate:              hireDate,
		Status:                status,
		Address:               nilIfBlank(in.Address),
		EmergencyContactName:  nilIfBlank(in.EmergencyContactName),
		EmergencyContactPhone: nilIfBlank(in.EmergencyContactPhone),
	}, nil
}

func ParseSalary(raw string) (decimal.NullDecimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.NullDecimal{}, nil
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("salary must be a number")
	}
	if value.IsNegative() {
		return decimal.NullDecimal{}, fmt.Errorf("salary must not be negative")
	}
	return decimal.NullDecimal{Decimal: value, Valid: true}, nil
}

// ParseHireDate accepts RFC3339 or YYYY-MM-DD and keeps only the calendar
// date.
func ParseHireDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		parsed, err = time.Parse("2006-01-02", raw)
	}
	if err != nil {
		return nil, fmt.Errorf("hire_date must be a valid date in YYYY-MM-DD format")
	}
	date := time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)
	return &date, nil
}

func nilIfBlank(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
