package services

import (
	"incident_flow_app_go/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"
)

func TestExportOccurrencesExcel(t *testing.T) {
	db := setupOccurrenceTestDB()
	reporting, notified := occurrenceTestDepartments(t, db)

	occurrence := newTestOccurrence(reporting, notified)
	assert.NoError(t, CreateOccurrence(db, occurrence, nil))

	buf, err := ExportOccurrencesExcel(db)
	assert.NoError(t, err)
	assert.NotNil(t, buf)

	workbook, err := excelize.OpenReader(buf)
	assert.NoError(t, err)
	defer workbook.Close()

	rows, err := workbook.GetRows("Ocorrências")
	assert.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, "Data", rows[0][0])
	assert.Equal(t, occurrence.DescriptionOccurrence, rows[1][5])
	assert.Equal(t, "Sem tratativa", rows[1][8])
}

func TestExportFileName(t *testing.T) {
	now := time.Date(2026, 8, 31, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, "ocorrencias_2026-08-31.xlsx", ExportFileName(now))
}

func TestBuildOccurrenceReportHTML(t *testing.T) {
	deadline := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	occurrence := &models.EventOccurrence{
		OccurrenceDate:        time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC),
		OccurrenceTime:        "22:10",
		PatientInvolved:       true,
		DescriptionOccurrence: "Queda <com marcação>",
		ImmediateAction:       "Avaliação",
		ReportingDepartment:   &models.Department{Name: "UTI"},
		NotifiedDepartment:    &models.Department{Name: "Manutenção"},
		Patient: &models.EventPatient{
			PatientName:    "Paciente Teste",
			Attendance:     1001,
			Record:         2002,
			BirthDate:      time.Date(1950, 1, 1, 0, 0, 0, 0, time.UTC),
			InternmentDate: time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC),
		},
		Response: &models.ResponseOccurrence{
			Description:      "Tratativa do relatório",
			DeadlineResponse: &deadline,
			Resolved:         true,
		},
	}

	html := BuildOccurrenceReportHTML(occurrence)

	assert.Contains(t, html, "Relatório de Ocorrência")
	assert.Contains(t, html, "20/08/2026")
	assert.Contains(t, html, "22:10")
	assert.Contains(t, html, "UTI")
	assert.Contains(t, html, "Paciente Teste")
	assert.Contains(t, html, "Tratativa do relatório")
	assert.Contains(t, html, "15/09/2026")
	// Free text is escaped, never embedded raw
	assert.NotContains(t, html, "<com marcação>")
	assert.Contains(t, html, "&lt;com marcação&gt;")
}

func TestBuildOccurrenceReportHTMLWithoutResponse(t *testing.T) {
	occurrence := &models.EventOccurrence{
		OccurrenceDate:        time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC),
		OccurrenceTime:        "07:00",
		DescriptionOccurrence: "Sem tratativa ainda",
		ImmediateAction:       "Registro",
	}

	html := BuildOccurrenceReportHTML(occurrence)
	assert.Contains(t, html, "Sem tratativa ainda")
	assert.NotContains(t, html, "Tratativa</h2>")
}
