package analytics

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Store is the read side over the employees table. Every method is a single
// aggregate query; nothing here mutates.
type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) DepartmentBreakdown(ctx context.Context) ([]DepartmentBreakdown, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT
      department,
      COUNT(*) AS employee_count,
      AVG(salary) AS avg_salary,
      MIN(salary) AS min_salary,
      MAX(salary) AS max_salary,
      SUM(salary) AS total_salary,
      COUNT(CASE WHEN status = 'active' THEN 1 END) AS active_employees,
      COUNT(CASE WHEN status = 'inactive' THEN 1 END) AS inactive_employees
    FROM employees
    WHERE department IS NOT NULL AND department != ''
    GROUP BY department
    ORDER BY employee_count DESC
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []DepartmentBreakdown{}
	for rows.Next() {
		var dept DepartmentBreakdown
		var avg, min, max, total decimal.NullDecimal
		if err := rows.Scan(&dept.Department, &dept.EmployeeCount, &avg, &min, &max, &total,
			&dept.ActiveEmployees, &dept.InactiveEmployees); err != nil {
			return nil, err
		}
		dept.AvgSalary = roundWhole(avg)
		dept.MinSalary = toFloat(min)
		dept.MaxSalary = toFloat(max)
		dept.TotalSalary = toFloat(total)
		out = append(out, dept)
	}
	return out, rows.Err()
}

func (s *Store) SalaryAnalysis(ctx context.Context) (SalaryAnalysis, error) {
	analysis := SalaryAnalysis{
		SalaryRanges:       []SalaryRange{},
		SalaryByDepartment: []DepartmentSalary{},
	}

	rows, err := s.DB.Query(ctx, `
    SELECT
      CASE
        WHEN salary < 50000 THEN '< $50K'
        WHEN salary >= 50000 AND salary < 75000 THEN '$50K - $75K'
        WHEN salary >= 75000 AND salary < 100000 THEN '$75K - $100K'
        WHEN salary >= 100000 AND salary < 150000 THEN '$100K - $150K'
        WHEN salary >= 150000 THEN '$150K+'
        ELSE 'Not Specified'
      END AS salary_range,
      COUNT(*) AS count
    FROM employees
    GROUP BY salary_range
    ORDER BY MIN(salary)
  `)
	if err != nil {
		return analysis, err
	}
	defer rows.Close()
	for rows.Next() {
		var rng SalaryRange
		if err := rows.Scan(&rng.Range, &rng.Count); err != nil {
			return analysis, err
		}
		analysis.SalaryRanges = append(analysis.SalaryRanges, rng)
	}
	if err := rows.Err(); err != nil {
		return analysis, err
	}

	deptRows, err := s.DB.Query(ctx, `
    SELECT department, AVG(salary) AS avg_salary, COUNT(*) AS employee_count
    FROM employees
    WHERE department IS NOT NULL AND department != '' AND salary IS NOT NULL
    GROUP BY department
    ORDER BY avg_salary DESC
  `)
	if err != nil {
		return analysis, err
	}
	defer deptRows.Close()
	for deptRows.Next() {
		var dept DepartmentSalary
		var avg decimal.NullDecimal
		if err := deptRows.Scan(&dept.Department, &avg, &dept.EmployeeCount); err != nil {
			return analysis, err
		}
		dept.AvgSalary = roundWhole(avg)
		analysis.SalaryByDepartment = append(analysis.SalaryByDepartment, dept)
	}
	if err := deptRows.Err(); err != nil {
		return analysis, err
	}

	var avg, min, max decimal.NullDecimal
	err = s.DB.QueryRow(ctx, `
    SELECT AVG(salary), MIN(salary), MAX(salary), COUNT(*)
    FROM employees
    WHERE salary IS NOT NULL
  `).Scan(&avg, &min, &max, &analysis.SalaryStats.TotalEmployeesWithSalary)
	if err != nil {
		return analysis, err
	}
	analysis.SalaryStats.AvgSalary = roundWhole(avg)
	analysis.SalaryStats.MinSalary = toFloat(min)
	analysis.SalaryStats.MaxSalary = toFloat(max)

	return analysis, nil
}

func (s *Store) EmployeeMetrics(ctx context.Context) (EmployeeMetrics, error) {
	metrics := EmployeeMetrics{
		StatusDistribution: []StatusCount{},
		HireDateTrends:     []HireTrend{},
		DepartmentGrowth:   []DepartmentGrowth{},
		EmployeeTenure:     []EmployeeTenure{},
	}

	statusRows, err := s.DB.Query(ctx, `
    SELECT status, COUNT(*) AS count FROM employees GROUP BY status
  `)
	if err != nil {
		return metrics, err
	}
	defer statusRows.Close()
	for statusRows.Next() {
		var sc StatusCount
		if err := statusRows.Scan(&sc.Status, &sc.Count); err != nil {
			return metrics, err
		}
		metrics.StatusDistribution = append(metrics.StatusDistribution, sc)
	}
	if err := statusRows.Err(); err != nil {
		return metrics, err
	}

	trendRows, err := s.DB.Query(ctx, `
    SELECT
      EXTRACT(YEAR FROM hire_date)::int AS year,
      EXTRACT(MONTH FROM hire_date)::int AS month,
      COUNT(*) AS hires
    FROM employees
    WHERE hire_date IS NOT NULL
    GROUP BY year, month
    ORDER BY year DESC, month DESC
    LIMIT 12
  `)
	if err != nil {
		return metrics, err
	}
	defer trendRows.Close()
	for trendRows.Next() {
		var trend HireTrend
		if err := trendRows.Scan(&trend.Year, &trend.Month, &trend.Hires); err != nil {
			return metrics, err
		}
		metrics.HireDateTrends = append(metrics.HireDateTrends, trend)
	}
	if err := trendRows.Err(); err != nil {
		return metrics, err
	}
	// Query returns newest first; callers want oldest to newest.
	for i, j := 0, len(metrics.HireDateTrends)-1; i < j; i, j = i+1, j-1 {
		metrics.HireDateTrends[i], metrics.HireDateTrends[j] = metrics.HireDateTrends[j], metrics.HireDateTrends[i]
	}

	growthRows, err := s.DB.Query(ctx, `
    SELECT
      department,
      COUNT(*) AS current_count,
      EXTRACT(YEAR FROM MIN(hire_date)) AS first_hire_year,
      EXTRACT(YEAR FROM MAX(hire_date)) AS latest_hire_year
    FROM employees
    WHERE department IS NOT NULL AND department != ''
    GROUP BY department
  `)
	if err != nil {
		return metrics, err
	}
	defer growthRows.Close()
	for growthRows.Next() {
		var growth DepartmentGrowth
		var first, latest decimal.NullDecimal
		if err := growthRows.Scan(&growth.Department, &growth.CurrentCount, &first, &latest); err != nil {
			return metrics, err
		}
		growth.FirstHireYear = toInt(first)
		growth.LatestHireYear = toInt(latest)
		metrics.DepartmentGrowth = append(metrics.DepartmentGrowth, growth)
	}
	if err := growthRows.Err(); err != nil {
		return metrics, err
	}

	tenureRows, err := s.DB.Query(ctx, `
    SELECT
      employee_code, first_name, last_name, department, hire_date,
      CASE
        WHEN hire_date IS NULL THEN 0
        ELSE ROUND((CURRENT_DATE - hire_date)::numeric / 365.25, 1)
      END AS tenure_years
    FROM employees
    ORDER BY tenure_years DESC
  `)
	if err != nil {
		return metrics, err
	}
	defer tenureRows.Close()
	for tenureRows.Next() {
		var tenure EmployeeTenure
		var years decimal.NullDecimal
		if err := tenureRows.Scan(&tenure.EmployeeCode, &tenure.FirstName, &tenure.LastName,
			&tenure.Department, &tenure.HireDate, &years); err != nil {
			return metrics, err
		}
		tenure.TenureYears = roundTenth(years)
		metrics.EmployeeTenure = append(metrics.EmployeeTenure, tenure)
	}
	return metrics, tenureRows.Err()
}

func (s *Store) DashboardStats(ctx context.Context) (DashboardStats, error) {
	var stats DashboardStats
	var avg, min, max decimal.NullDecimal
	err := s.DB.QueryRow(ctx, `
    SELECT
      COUNT(*) AS total_employees,
      COUNT(CASE WHEN status = 'active' THEN 1 END) AS active_employees,
      COUNT(CASE WHEN status = 'inactive' THEN 1 END) AS inactive_employees,
      COUNT(DISTINCT department) AS total_departments,
      AVG(salary) AS avg_salary,
      MIN(salary) AS min_salary,
      MAX(salary) AS max_salary,
      COUNT(CASE WHEN hire_date >= CURRENT_DATE - INTERVAL '30 days' THEN 1 END) AS recent_hires,
      COUNT(CASE WHEN hire_date >= CURRENT_DATE - INTERVAL '365 days' THEN 1 END) AS hires_this_year
    FROM employees
  `).Scan(&stats.TotalEmployees, &stats.ActiveEmployees, &stats.InactiveEmployees,
		&stats.TotalDepartments, &avg, &min, &max, &stats.RecentHires, &stats.HiresThisYear)
	if err != nil {
		return stats, err
	}
	stats.AvgSalary = roundWhole(avg)
	stats.MinSalary = toFloat(min)
	stats.MaxSalary = toFloat(max)
	return stats, nil
}

func (s *Store) DepartmentComparison(ctx context.Context) ([]DepartmentComparison, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT
      department,
      COUNT(*) AS employee_count,
      AVG(salary) AS avg_salary,
      COUNT(CASE WHEN status = 'active' THEN 1 END) AS active_count,
      COUNT(CASE WHEN hire_date >= CURRENT_DATE - INTERVAL '365 days' THEN 1 END) AS new_hires_this_year,
      AVG(CASE
        WHEN hire_date IS NOT NULL THEN (CURRENT_DATE - hire_date)::numeric / 365.25
        ELSE 0
      END) AS avg_tenure_years
    FROM employees
    WHERE department IS NOT NULL AND department != ''
    GROUP BY department
    ORDER BY employee_count DESC
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []DepartmentComparison{}
	for rows.Next() {
		var dept DepartmentComparison
		var avgSalary, avgTenure decimal.NullDecimal
		if err := rows.Scan(&dept.Department, &dept.EmployeeCount, &avgSalary,
			&dept.ActiveCount, &dept.NewHiresThisYear, &avgTenure); err != nil {
			return nil, err
		}
		dept.AvgSalary = roundWhole(avgSalary)
		dept.AvgTenureYears = roundTenth(avgTenure)
		out = append(out, dept)
	}
	return out, rows.Err()
}
