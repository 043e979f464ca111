package analytics

import "time"

type DepartmentBreakdown struct {
	Department        string  `json:"department"`
	EmployeeCount     int     `json:"employee_count"`
	AvgSalary         int64   `json:"avg_salary"`
	MinSalary         float64 `json:"min_salary"`
	MaxSalary         float64 `json:"max_salary"`
	TotalSalary       float64 `json:"total_salary"`
	ActiveEmployees   int     `json:"active_employees"`
	InactiveEmployees int     `json:"inactive_employees"`
}

type SalaryRange struct {
	Range string `json:"salary_range"`
	Count int    `json:"count"`
}

type DepartmentSalary struct {
	Department    string `json:"department"`
	AvgSalary     int64  `json:"avg_salary"`
	EmployeeCount int    `json:"employee_count"`
}

type SalaryStats struct {
	AvgSalary                int64   `json:"avg_salary"`
	MinSalary                float64 `json:"min_salary"`
	MaxSalary                float64 `json:"max_salary"`
	TotalEmployeesWithSalary int     `json:"total_employees_with_salary"`
}

type SalaryAnalysis struct {
	SalaryRanges       []SalaryRange      `json:"salaryRanges"`
	SalaryByDepartment []DepartmentSalary `json:"salaryByDepartment"`
	SalaryStats        SalaryStats        `json:"salaryStats"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type HireTrend struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Hires int `json:"hires"`
}

type DepartmentGrowth struct {
	Department     string `json:"department"`
	CurrentCount   int    `json:"current_count"`
	FirstHireYear  int64  `json:"first_hire_year"`
	LatestHireYear int64  `json:"latest_hire_year"`
}

type EmployeeTenure struct {
	EmployeeCode string     `json:"employee_id"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Department   *string    `json:"department"`
	HireDate     *time.Time `json:"hire_date"`
	TenureYears  float64    `json:"tenure_years"`
}

type EmployeeMetrics struct {
	StatusDistribution []StatusCount      `json:"statusDistribution"`
	HireDateTrends     []HireTrend        `json:"hireDateTrends"`
	DepartmentGrowth   []DepartmentGrowth `json:"departmentGrowth"`
	EmployeeTenure     []EmployeeTenure   `json:"employeeTenure"`
}

type DashboardStats struct {
	TotalEmployees    int     `json:"total_employees"`
	ActiveEmployees   int     `json:"active_employees"`
	InactiveEmployees int     `json:"inactive_employees"`
	TotalDepartments  int     `json:"total_departments"`
	AvgSalary         int64   `json:"avg_salary"`
	MinSalary         float64 `json:"min_salary"`
	MaxSalary         float64 `json:"max_salary"`
	RecentHires       int     `json:"recent_hires"`
	HiresThisYear     int     `json:"hires_this_year"`
}

type DepartmentComparison struct {
	Department       string  `json:"department"`
	EmployeeCount    int     `json:"employee_count"`
	AvgSalary        int64   `json:"avg_salary"`
	ActiveCount      int     `json:"active_count"`
	NewHiresThisYear int     `json:"new_hires_this_year"`
	AvgTenureYears   float64 `json:"avg_tenure_years"`
}
