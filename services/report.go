package services

import (
	"bytes"
	"fmt"
	"incident_flow_app_go/models"
	"time"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportOccurrencesExcel builds an occurrence-register workbook. Resolution
// state is derived from the response attached to each occurrence.
func ExportOccurrencesExcel(db *gorm.DB) (*bytes.Buffer, error) {
	var occurrences []models.EventOccurrence
	err := db.Preload("ReportingDepartment").
		Preload("NotifiedDepartment").
		Preload("Response").
		Order("occurrence_date").
		Find(&occurrences).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load occurrences: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Ocorrências"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{
		"Data", "Hora", "Setor Notificante", "Setor Notificado",
		"Paciente Envolvido", "Descrição", "Ação Imediata",
		"Prazo da Resposta", "Resolvido",
	}
	headerStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for i, occurrence := range occurrences {
		rowNum := i + 2
		set := func(col int, value interface{}) {
			cell, _ := excelize.CoordinatesToCellName(col, rowNum)
			f.SetCellValue(sheet, cell, value)
		}

		set(1, occurrence.OccurrenceDate.Format("02/01/2006"))
		set(2, occurrence.OccurrenceTime)
		if occurrence.ReportingDepartment != nil {
			set(3, occurrence.ReportingDepartment.Name)
		}
		if occurrence.NotifiedDepartment != nil {
			set(4, occurrence.NotifiedDepartment.Name)
		}
		set(5, boolLabel(occurrence.PatientInvolved))
		set(6, occurrence.DescriptionOccurrence)
		set(7, occurrence.ImmediateAction)
		if occurrence.Response != nil {
			if occurrence.Response.DeadlineResponse != nil {
				set(8, occurrence.Response.DeadlineResponse.Format("02/01/2006"))
			}
			set(9, boolLabel(occurrence.Response.Resolved))
		} else {
			set(9, "Sem tratativa")
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf, nil
}

// ExportFileName returns a timestamped name for the exported register
func ExportFileName(now time.Time) string {
	return fmt.Sprintf("ocorrencias_%s.xlsx", now.Format("2006-01-02"))
}

func boolLabel(value bool) string {
	if value {
		return "Sim"
	}
	return "Não"
}
