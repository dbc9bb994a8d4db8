package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Asistencia-api/internal/application/dto"
)

func TestGenerateSummaryPDF(t *testing.T) {
	g := NewMarotoPDFGenerator("Acme S.A.S.")
	g.now = func() time.Time { return time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC) }

	doc, err := g.GenerateSummaryPDF(context.Background(), &dto.ReportSummaryDTO{
		StartDate: "2024-01-01", EndDate: "2024-01-31", WorkingDays: 23,
		ActiveEmployees: 1, Records: 2, CompletedRecords: 2,
		TotalHours: decimal.NewFromInt(16), AverageHours: decimal.NewFromInt(8),
		LeavesByStatus: map[string]int{"approved": 1},
		LeavesByType:   map[string]int{"vacation": 1},
		Employees: []dto.EmployeeSummaryDTO{{
			UserID: "u1", FullName: "Ana Pérez", Department: "Ventas", DaysPresent: 2,
			TotalHours: decimal.NewFromInt(16), AverageHours: decimal.NewFromInt(8), ApprovedLeaveDays: 3,
		}},
		Departments: []dto.DepartmentSummaryDTO{{
			Department: "Ventas", Employees: 1, DaysPresent: 2,
			AttendanceRate: decimal.RequireFromString("8.7"), AverageHours: decimal.NewFromInt(8),
		}},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF-")), "debe ser un PDF")
}
