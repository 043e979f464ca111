package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"ems/internal/app/server"
)

// Seeds a known workforce and asserts the aggregate numbers, not just the
// response shapes: two Engineering salaries of 90000 and 80000 and one
// Marketing salary of 60000 pin down the averaging, the min/max, the salary
// buckets, and the zero-defaulting for absent hire dates.
func TestAnalyticsAggregateValues(t *testing.T) {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	cfg := testConfig(dbURL)
	app, err := server.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	defer app.Close()

	// The aggregates are table-wide, so start from an empty employees table.
	if _, err := app.DB.Exec(context.Background(), "DELETE FROM employees"); err != nil {
		t.Fatalf("clear employees: %v", err)
	}

	ts := httptest.NewServer(app.Router)
	defer ts.Close()
	client := ts.Client()

	suffix := time.Now().UnixNano()
	token := register(t, client, ts.URL, fmt.Sprintf("agg-user-%d", suffix), fmt.Sprintf("agg-%d@example.com", suffix), "user")

	seed := []struct {
		code, first, last, department, salary string
	}{
		{"AGG001", "Alice", "Engineer", "Engineering", "90000"},
		{"AGG002", "Bob", "Engineer", "Engineering", "80000"},
		{"AGG003", "Carol", "Marketer", "Marketing", "60000"},
	}
	for i, emp := range seed {
		postJSON(t, client, ts.URL+"/api/employees", token, map[string]string{
			"employee_id": emp.code,
			"first_name":  emp.first,
			"last_name":   emp.last,
			"email":       fmt.Sprintf("agg-emp-%d-%d@example.com", i, suffix),
			"department":  emp.department,
			"salary":      emp.salary,
		}, http.StatusCreated)
	}

	// Department breakdown: Engineering first (headcount order), with the
	// exact count/avg/min/max/total.
	deptData := getJSON(t, client, ts.URL+"/api/analytics/departments", token)
	var departments []struct {
		Department    string  `json:"department"`
		EmployeeCount int     `json:"employee_count"`
		AvgSalary     int64   `json:"avg_salary"`
		MinSalary     float64 `json:"min_salary"`
		MaxSalary     float64 `json:"max_salary"`
		TotalSalary   float64 `json:"total_salary"`
		Active        int     `json:"active_employees"`
	}
	mustUnmarshal(t, deptData, &departments)
	if len(departments) != 2 {
		t.Fatalf("expected 2 departments, got %d", len(departments))
	}
	eng := departments[0]
	if eng.Department != "Engineering" {
		t.Fatalf("expected Engineering first, got %s", eng.Department)
	}
	if eng.EmployeeCount != 2 || eng.AvgSalary != 85000 || eng.MinSalary != 80000 || eng.MaxSalary != 90000 || eng.TotalSalary != 170000 {
		t.Fatalf("unexpected Engineering aggregates: %+v", eng)
	}
	if eng.Active != 2 {
		t.Fatalf("expected 2 active Engineering employees, got %d", eng.Active)
	}

	// Salary analysis: Marketing lands in $50K - $75K, both engineers in
	// $75K - $100K, buckets ordered by their minimum salary.
	salaryData := getJSON(t, client, ts.URL+"/api/analytics/salary-analysis", token)
	var analysis struct {
		SalaryRanges []struct {
			Range string `json:"salary_range"`
			Count int    `json:"count"`
		} `json:"salaryRanges"`
		SalaryByDepartment []struct {
			Department string `json:"department"`
			AvgSalary  int64  `json:"avg_salary"`
		} `json:"salaryByDepartment"`
		SalaryStats struct {
			AvgSalary int64   `json:"avg_salary"`
			MinSalary float64 `json:"min_salary"`
			MaxSalary float64 `json:"max_salary"`
			Total     int     `json:"total_employees_with_salary"`
		} `json:"salaryStats"`
	}
	mustUnmarshal(t, salaryData, &analysis)
	if len(analysis.SalaryRanges) != 2 {
		t.Fatalf("expected 2 salary buckets, got %+v", analysis.SalaryRanges)
	}
	if analysis.SalaryRanges[0].Range != "$50K - $75K" || analysis.SalaryRanges[0].Count != 1 {
		t.Fatalf("unexpected first bucket: %+v", analysis.SalaryRanges[0])
	}
	if analysis.SalaryRanges[1].Range != "$75K - $100K" || analysis.SalaryRanges[1].Count != 2 {
		t.Fatalf("unexpected second bucket: %+v", analysis.SalaryRanges[1])
	}
	if len(analysis.SalaryByDepartment) != 2 || analysis.SalaryByDepartment[0].Department != "Engineering" || analysis.SalaryByDepartment[0].AvgSalary != 85000 {
		t.Fatalf("unexpected per-department averages: %+v", analysis.SalaryByDepartment)
	}
	// 230000 / 3 rounds to 76667.
	stats := analysis.SalaryStats
	if stats.AvgSalary != 76667 || stats.MinSalary != 60000 || stats.MaxSalary != 90000 || stats.Total != 3 {
		t.Fatalf("unexpected global salary stats: %+v", stats)
	}

	// Dashboard totals over the same rows.
	dashData := getJSON(t, client, ts.URL+"/api/analytics/dashboard-stats", token)
	var dashboard struct {
		TotalEmployees   int   `json:"total_employees"`
		ActiveEmployees  int   `json:"active_employees"`
		TotalDepartments int   `json:"total_departments"`
		AvgSalary        int64 `json:"avg_salary"`
	}
	mustUnmarshal(t, dashData, &dashboard)
	if dashboard.TotalEmployees != 3 || dashboard.ActiveEmployees != 3 || dashboard.TotalDepartments != 2 || dashboard.AvgSalary != 76667 {
		t.Fatalf("unexpected dashboard stats: %+v", dashboard)
	}

	// No hire dates were supplied: tenure defaults to zero instead of
	// dropping the rows, and the hire trend list stays empty.
	metricsData := getJSON(t, client, ts.URL+"/api/analytics/employee-metrics", token)
	var metrics struct {
		HireDateTrends []json.RawMessage `json:"hireDateTrends"`
		EmployeeTenure []struct {
			TenureYears float64 `json:"tenure_years"`
		} `json:"employeeTenure"`
	}
	mustUnmarshal(t, metricsData, &metrics)
	if len(metrics.HireDateTrends) != 0 {
		t.Fatalf("expected no hire trends, got %d", len(metrics.HireDateTrends))
	}
	if len(metrics.EmployeeTenure) != 3 {
		t.Fatalf("expected tenure rows for all employees, got %d", len(metrics.EmployeeTenure))
	}
	for _, tenure := range metrics.EmployeeTenure {
		if tenure.TenureYears != 0 {
			t.Fatalf("expected zero tenure without hire date, got %v", tenure.TenureYears)
		}
	}
}
