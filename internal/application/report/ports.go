package report

import (
	"context"

	"github.com/jhoicas/Asistencia-api/internal/application/dto"
)

// PDFGenerator renderiza el resumen como documento PDF.
// La implementación está en infrastructure/pdf (maroto).
type PDFGenerator interface {
	GenerateSummaryPDF(ctx context.Context, summary *dto.ReportSummaryDTO) ([]byte, error)
}
