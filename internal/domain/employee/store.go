package employee

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("employee not found")

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

type ListFilter struct {
	Search     string
	Department string
}

const employeeColumns = `
    id, employee_code, first_name, last_name, email,
    phone, department, position, salary, hire_date, status,
    address, emergency_contact_name, emergency_contact_phone,
    created_by, created_at, updated_at
`

func buildListWhere(filter ListFilter) (string, []any) {
	where := " WHERE 1=1"
	args := []any{}

	if search := strings.TrimSpace(filter.Search); search != "" {
		n := strconv.Itoa(len(args) + 1)
		where += " AND (first_name ILIKE $" + n + " OR last_name ILIKE $" + n +
			" OR email ILIKE $" + n + " OR employee_code ILIKE $" + n + ")"
		args = append(args, "%"+search+"%")
	}
	if department := strings.TrimSpace(filter.Department); department != "" {
		where += " AND department = $" + strconv.Itoa(len(args)+1)
		args = append(args, department)
	}

	return where, args
}

func (s *Store) List(ctx context.Context, filter ListFilter, limit, offset int) ([]Employee, error) {
	where, args := buildListWhere(filter)
	query := "SELECT " + employeeColumns + " FROM employees" + where +
		" ORDER BY created_at DESC LIMIT $" + strconv.Itoa(len(args)+1) +
		" OFFSET $" + strconv.Itoa(len(args)+2)
	args = append(args, limit, offset)

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, emp)
	}
	return out, rows.Err()
}

func (s *Store) Count(ctx context.Context, filter ListFilter) (int, error) {
	where, args := buildListWhere(filter)
	var total int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM employees"+where, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) Get(ctx context.Context, id int64) (*Employee, error) {
	row := s.DB.QueryRow(ctx, "SELECT "+employeeColumns+" FROM employees WHERE id = $1", id)
	emp, err := scanEmployee(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

func (s *Store) CodeOrEmailTaken(ctx context.Context, code, email string) (bool, error) {
	var count int
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1) FROM employees WHERE employee_code = $1 OR email = $2
  `, code, email).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) Create(ctx context.Context, fields Fields, createdBy int64) (int64, error) {
	var id int64
	err := s.DB.QueryRow(ctx, `
    INSERT INTO employees (
      employee_code, first_name, last_name, email, phone,
      department, position, salary, hire_date, status, address,
      emergency_contact_name, emergency_contact_phone, created_by
    ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
    RETURNING id
  `,
		fields.EmployeeCode, fields.FirstName, fields.LastName, fields.Email, fields.Phone,
		fields.Department, fields.Position, fields.Salary, fields.HireDate, fields.Status,
		fields.Address, fields.EmergencyContactName, fields.EmergencyContactPhone, createdBy,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Update replaces every mutable field. The employee code, hire date and
// owner are never touched here.
func (s *Store) Update(ctx context.Context, id int64, fields Fields) error {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE employees
    SET first_name = $1,
        last_name = $2,
        email = $3,
        phone = $4,
        department = $5,
        position = $6,
        salary = $7,
        status = $8,
        address = $9,
        emergency_contact_name = $10,
        emergency_contact_phone = $11,
        updated_at = now()
    WHERE id = $12
  `,
		fields.FirstName, fields.LastName, fields.Email, fields.Phone,
		fields.Department, fields.Position, fields.Salary, fields.Status,
		fields.Address, fields.EmergencyContactName, fields.EmergencyContactPhone, id,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	cmd, err := s.DB.Exec(ctx, "DELETE FROM employees WHERE id = $1", id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanEmployee(row pgx.Row) (Employee, error) {
	var emp Employee
	err := row.Scan(
		&emp.ID, &emp.EmployeeCode, &emp.FirstName, &emp.LastName, &emp.Email,
		&emp.Phone, &emp.Department, &emp.Position, &emp.Salary, &emp.HireDate, &emp.Status,
		&emp.Address, &emp.EmergencyContactName, &emp.EmergencyContactPhone,
		&emp.CreatedBy, &emp.CreatedAt, &emp.UpdatedAt,
	)
	return emp, err
}
