package analytics

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// SummaryReport renders the dashboard stats and department breakdown as a
// one-page PDF.
func SummaryReport(stats DashboardStats, departments []DepartmentBreakdown) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Workforce Summary")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 8, fmt.Sprintf("Generated: %s", time.Now().UTC().Format("2006-01-02 15:04 UTC")))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employees: %d total, %d active, %d inactive", stats.TotalEmployees, stats.ActiveEmployees, stats.InactiveEmployees))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Departments: %d", stats.TotalDepartments))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Salary: avg %d, min %.2f, max %.2f", stats.AvgSalary, stats.MinSalary, stats.MaxSalary))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Hires: %d in the last 30 days, %d in the last year", stats.RecentHires, stats.HiresThisYear))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "By department")
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 11)
	for _, dept := range departments {
		pdf.Cell(0, 7, fmt.Sprintf("%s: %d employees (%d active), avg salary %d",
			dept.Department, dept.EmployeeCount, dept.ActiveEmployees, dept.AvgSalary))
		pdf.Ln(6)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
