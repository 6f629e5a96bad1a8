package reports

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

// WriteDashboardPDF renders the dashboard figures as a one-page A4 summary.
func WriteDashboardPDF(w io.Writer, stats DashboardStats, departments []DepartmentCount, generatedAt time.Time) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Staff Dashboard")
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 9)
	pdf.Cell(0, 6, "Generated "+generatedAt.UTC().Format("2006-01-02 15:04 MST"))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 12)
	for _, line := range []struct {
		label string
		value int
	}{
		{"Active employees", stats.TotalEmployees},
		{"Pending leave requests", stats.PendingLeaveRequests},
		{"Present today", stats.TodayPresent},
		{"Active departments", stats.TotalDepartments},
	} {
		pdf.CellFormat(80, 8, line.label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 8, strconv.Itoa(line.value), "1", 1, "R", false, 0, "")
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Employees by type")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 12)
	for _, tc := range stats.EmployeesByType {
		pdf.CellFormat(80, 8, tc.EmploymentType, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 8, strconv.Itoa(tc.Count), "1", 1, "R", false, 0, "")
	}

	if len(departments) > 0 {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, "Department distribution")
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 12)
		for _, dc := range departments {
			pdf.CellFormat(80, 8, dc.Name, "1", 0, "L", false, 0, "")
			pdf.CellFormat(30, 8, strconv.Itoa(dc.EmployeeCount), "1", 1, "R", false, 0, "")
		}
	}

	return pdf.Output(w)
}

var rosterHeader = []any{
	"Code", "First name", "Last name", "Email", "Phone", "Department", "Position",
	"Employment type", "Status", "Hire date", "Salary",
}

const rosterSheet = "Employees"

// WriteRosterXLSX writes one header row and one row per employee.
func WriteRosterXLSX(w io.Writer, rows []RosterRow) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", rosterSheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(rosterSheet, "A1", &rosterHeader); err != nil {
		return err
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		hire := ""
		if r.HireDate != nil {
			hire = r.HireDate.Format(time.DateOnly)
		}
		var salary any = ""
		if r.Salary.Valid {
			salary, _ = r.Salary.Decimal.Float64()
		}
		values := []any{
			r.Code, r.FirstName, r.LastName, r.Email, r.Phone, r.Department, r.Position,
			r.EmploymentType, r.Status, hire, salary,
		}
		if err := f.SetSheetRow(rosterSheet, cell, &values); err != nil {
			return fmt.Errorf("roster row %d: %w", i+1, err)
		}
	}
	if err := f.SetPanes(rosterSheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return err
	}
	_, err := f.WriteTo(w)
	return err
}
