package services

import (
	"context"
	"fmt"
	"html"
	"incident_flow_app_go/models"
	"os"
	"strings"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// getChromePath returns the Chrome executable path from environment variable
func getChromePath() string {
	return os.Getenv("CHROME_PATH")
}

// PDFOptions contains options for PDF generation
type PDFOptions struct {
	PageOrientation string // portrait, landscape
	MarginTop       int    // points (72 = 1 inch)
	MarginBottom    int
	MarginLeft      int
	MarginRight     int
}

// DefaultPDFOptions returns default options for occurrence reports (A4)
func DefaultPDFOptions() PDFOptions {
	return PDFOptions{
		PageOrientation: "portrait",
		MarginTop:       72,
		MarginBottom:    72,
		MarginLeft:      72,
		MarginRight:     72,
	}
}

// GeneratePDF renders HTML content to PDF using headless Chrome
func GeneratePDF(htmlContent string, options PDFOptions) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
		chromedp.DisableGPU,
	)

	// Check for custom Chrome path (for headless-shell in Docker)
	if chromePath := getChromePath(); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	defer allocCancel()

	ctx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	// A4
	paperWidth := 8.27
	paperHeight := 11.69
	if options.PageOrientation == "landscape" {
		paperWidth, paperHeight = paperHeight, paperWidth
	}

	marginTop := float64(options.MarginTop) / 72.0
	marginBottom := float64(options.MarginBottom) / 72.0
	marginLeft := float64(options.MarginLeft) / 72.0
	marginRight := float64(options.MarginRight) / 72.0

	var pdfBuf []byte

	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.Sleep(100),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPaperWidth(paperWidth).
				WithPaperHeight(paperHeight).
				WithMarginTop(marginTop).
				WithMarginBottom(marginBottom).
				WithMarginLeft(marginLeft).
				WithMarginRight(marginRight).
				WithPrintBackground(true).
				WithDisplayHeaderFooter(false).
				Do(ctx)
			if err != nil {
				return err
			}
			pdfBuf = buf
			return nil
		}),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return pdfBuf, nil
}

// BuildOccurrenceReportHTML renders a printable report for a single
// occurrence, including its response when one exists
func BuildOccurrenceReportHTML(occurrence *models.EventOccurrence) string {
	var b strings.Builder

	b.WriteString(`<!DOCTYPE html><html><head><meta charset="utf-8"><style>
body { font-family: Arial, sans-serif; font-size: 12px; color: #222; }
h1 { font-size: 18px; border-bottom: 2px solid #333; padding-bottom: 6px; }
h2 { font-size: 14px; margin-top: 20px; }
table { width: 100%; border-collapse: collapse; margin-top: 8px; }
td, th { border: 1px solid #999; padding: 6px; text-align: left; vertical-align: top; }
th { background: #eee; width: 30%; }
</style></head><body>`)

	b.WriteString("<h1>Relatório de Ocorrência</h1>")
	b.WriteString("<table>")
	row := func(label, value string) {
		b.WriteString("<tr><th>" + html.EscapeString(label) + "</th><td>" + html.EscapeString(value) + "</td></tr>")
	}

	row("Data da Ocorrência", occurrence.OccurrenceDate.Format("02/01/2006"))
	row("Hora da Ocorrência", occurrence.OccurrenceTime)
	if occurrence.ReportingDepartment != nil {
		row("Setor Notificante", occurrence.ReportingDepartment.Name)
	}
	if occurrence.NotifiedDepartment != nil {
		row("Setor Notificado", occurrence.NotifiedDepartment.Name)
	}
	if occurrence.PatientInvolved {
		row("Paciente envolvido", "Sim")
	} else {
		row("Paciente envolvido", "Não")
	}
	row("Descrição da Ocorrência", occurrence.DescriptionOccurrence)
	row("Ação Imediata", occurrence.ImmediateAction)
	b.WriteString("</table>")

	if occurrence.PatientInvolved && occurrence.Patient != nil {
		b.WriteString("<h2>Paciente</h2><table>")
		row("Nome", occurrence.Patient.PatientName)
		row("Atendimento", fmt.Sprintf("%d", occurrence.Patient.Attendance))
		row("Prontuário", fmt.Sprintf("%d", occurrence.Patient.Record))
		row("Data de Nascimento", occurrence.Patient.BirthDate.Format("02/01/2006"))
		row("Data da Internação", occurrence.Patient.InternmentDate.Format("02/01/2006"))
		b.WriteString("</table>")
	}

	if occurrence.Response != nil {
		b.WriteString("<h2>Tratativa</h2><table>")
		row("Descrição", occurrence.Response.Description)
		if occurrence.Response.DeadlineResponse != nil {
			row("Prazo da Resposta", occurrence.Response.DeadlineResponse.Format("02/01/2006"))
		}
		if occurrence.Response.Resolved {
			row("Resolvido", "Sim")
		} else {
			row("Resolvido", "Não")
		}
		b.WriteString("</table>")
	}

	b.WriteString("</body></html>")
	return b.String()
}
