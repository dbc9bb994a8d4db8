// Package pdf implementa el reporte de asistencia en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre de la organización │ Período + generado      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  INDICADORES: empleados / jornadas / horas / promedio        │
//	│  AUSENCIAS: por estado y por tipo                            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA DEPARTAMENTOS: Depto | Empl. | Días | Tasa | Prom.    │
//	│  TABLA EMPLEADOS: Nombre | Depto | Días | Horas | Ausencias  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: leyenda                                             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Asistencia-api/internal/application/dto"
	"github.com/jhoicas/Asistencia-api/internal/application/report"
	"github.com/jhoicas/Asistencia-api/internal/domain/entity"
)

var _ report.PDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa report.PDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	orgName string
	now     func() time.Time
}

// NewMarotoPDFGenerator construye el generador. orgName aparece en la cabecera.
func NewMarotoPDFGenerator(orgName string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{orgName: orgName, now: time.Now}
}

// GenerateSummaryPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateSummaryPDF(_ context.Context, s *dto.ReportSummaryDTO) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de asistencia", true).
		WithAuthor(g.orgName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(s))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(indicatorsRow(s))
	m.AddRows(leavesRow(s))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle("DEPARTAMENTOS"))
	m.AddRows(tableHeaderRow([]column{
		{"Departamento", 4, align.Left}, {"Empleados", 2, align.Center}, {"Días", 2, align.Center},
		{"Tasa asistencia", 2, align.Right}, {"Prom. horas", 2, align.Right},
	}))
	for _, r := range departmentRows(s.Departments) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(sectionTitle("EMPLEADOS"))
	m.AddRows(tableHeaderRow([]column{
		{"Nombre", 4, align.Left}, {"Departamento", 3, align.Left}, {"Días", 1, align.Center},
		{"Horas", 2, align.Right}, {"Ausencias", 2, align.Right},
	}))
	for _, r := range employeeRows(s.Employees) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: organización (izq) y período + fecha de generación (der).
func (g *MarotoPDFGenerator) headerRow(s *dto.ReportSummaryDTO) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(g.orgName, "Asistencia"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Reporte de asistencia y ausencias", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("PERÍODO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(s.StartDate+" a "+s.EndDate, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 6,
			}),
			text.New("Generado: "+g.now().Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

// indicatorsRow: totales globales del período.
func indicatorsRow(s *dto.ReportSummaryDTO) core.Row {
	box := func(label, value string) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1, Align: align.Center}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 12, Top: 5, Align: align.Center}),
		)
	}
	return row.New(14).Add(
		box("Empleados activos", fmt.Sprint(s.ActiveEmployees)),
		box("Jornadas (cerradas)", fmt.Sprintf("%d (%d)", s.Records, s.CompletedRecords)),
		box("Horas totales", s.TotalHours.StringFixed(2)),
		box("Promedio por jornada", s.AverageHours.StringFixed(2)),
	)
}

// leavesRow: conteo de solicitudes por estado y por tipo.
func leavesRow(s *dto.ReportSummaryDTO) core.Row {
	byStatus := make([]string, 0, len(entity.LeaveStatuses))
	for _, st := range entity.LeaveStatuses {
		byStatus = append(byStatus, fmt.Sprintf("%s: %d", st, s.LeavesByStatus[st]))
	}
	byType := make([]string, 0, len(entity.LeaveTypes))
	for _, lt := range entity.LeaveTypes {
		byType = append(byType, fmt.Sprintf("%s: %d", lt, s.LeavesByType[lt]))
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("SOLICITUDES DE AUSENCIA", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New("Por estado: "+strings.Join(byStatus, "   |   "), props.Text{Size: 8, Top: 6, Color: colorGray}),
			text.New("Por tipo: "+strings.Join(byType, "   |   "), props.Text{Size: 8, Top: 10, Color: colorGray}),
		),
	)
}

func sectionTitle(title string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 1}),
	))
}

type column struct {
	label string
	size  int
	align align.Type
}

// tableHeaderRow: cabecera de tabla con fondo azul.
func tableHeaderRow(cols []column) core.Row {
	out := make([]core.Col, 0, len(cols))
	for _, c := range cols {
		out = append(out, col.New(c.size).Add(text.New(c.label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: c.align,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(out...).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func cell(size int, value string, a align.Type) core.Col {
	return col.New(size).Add(text.New(value, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
}

func departmentRows(depts []dto.DepartmentSummaryDTO) []core.Row {
	result := make([]core.Row, 0, len(depts))
	for _, d := range depts {
		result = append(result, row.New(7).Add(
			cell(4, d.Department, align.Left),
			cell(2, fmt.Sprint(d.Employees), align.Center),
			cell(2, fmt.Sprint(d.DaysPresent), align.Center),
			cell(2, d.AttendanceRate.StringFixed(2)+"%", align.Right),
			cell(2, d.AverageHours.StringFixed(2), align.Right),
		))
	}
	return result
}

func employeeRows(emps []dto.EmployeeSummaryDTO) []core.Row {
	result := make([]core.Row, 0, len(emps))
	for _, e := range emps {
		result = append(result, row.New(7).Add(
			cell(4, e.FullName, align.Left),
			cell(3, e.Department, align.Left),
			cell(1, fmt.Sprint(e.DaysPresent), align.Center),
			cell(2, e.TotalHours.StringFixed(2), align.Right),
			cell(2, fmt.Sprintf("%d d", e.ApprovedLeaveDays), align.Right),
		))
	}
	return result
}

func footerRow() core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(
			"Tasa de asistencia = días hábiles con fichaje / (empleados activos × días hábiles del período). "+
				"Las horas corresponden a jornadas cerradas.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
