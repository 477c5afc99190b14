package handlers

import (
	"errors"
	"incident_flow_app_go/config"
	"incident_flow_app_go/db"
	"incident_flow_app_go/models"
	"incident_flow_app_go/services"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// OccurrenceRequest is the occurrence notification payload. Patient fields
// are read only when PatientInvolved is set.
type OccurrenceRequest struct {
	PatientInvolved       bool   `json:"patient_involved" form:"patient_involved"`
	OccurrenceDate        string `json:"occurrence_date" form:"occurrence_date"`
	OccurrenceTime        string `json:"occurrence_time" form:"occurrence_time"`
	ReportingDepartmentID string `json:"reporting_department_id" form:"reporting_department_id"`
	NotifiedDepartmentID  string `json:"notified_department_id" form:"notified_department_id"`
	DescriptionOccurrence string `json:"description_occurrence" form:"description_occurrence"`
	ImmediateAction       string `json:"immediate_action" form:"immediate_action"`

	// Patient (required when patient_involved)
	PatientName    string  `json:"patient_name" form:"patient_name"`
	Attendance     int     `json:"attendance" form:"attendance"`
	Record         int     `json:"record" form:"record"`
	BirthDate      string  `json:"birth_date" form:"birth_date"`
	InternmentDate string  `json:"internment_date" form:"internment_date"`
	GenderID       *string `json:"gender_id" form:"gender_id"`
	RaceID         *string `json:"race_id" form:"race_id"`
}

// CreateOccurrence registers a new adverse-event notification, creating the
// involved patient alongside when applicable
func CreateOccurrence(c echo.Context) error {
	req := new(OccurrenceRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid request body",
		})
	}

	fieldErrors := map[string]string{}

	occurrenceDate, err := services.ParseDate(req.OccurrenceDate)
	if err != nil {
		fieldErrors["occurrence_date"] = err.Error()
	}
	occurrenceTime, err := services.ParseClock(req.OccurrenceTime)
	if err != nil {
		fieldErrors["occurrence_time"] = err.Error()
	}
	if req.ReportingDepartmentID == "" {
		fieldErrors["reporting_department_id"] = "Setor notificante é obrigatório."
	}
	if req.NotifiedDepartmentID == "" {
		fieldErrors["notified_department_id"] = "Setor notificado é obrigatório."
	}
	if services.SanitizeText(req.DescriptionOccurrence) == "" {
		fieldErrors["description_occurrence"] = "Descrição da ocorrência é obrigatória."
	}
	if services.SanitizeText(req.ImmediateAction) == "" {
		fieldErrors["immediate_action"] = "Ação imediata é obrigatória."
	}

	var patient *models.EventPatient
	if req.PatientInvolved {
		patient = &models.EventPatient{
			PatientName: req.PatientName,
			Attendance:  req.Attendance,
			Record:      req.Record,
			GenderID:    req.GenderID,
			RaceID:      req.RaceID,
		}
		if req.PatientName == "" {
			fieldErrors["patient_name"] = "Nome do paciente é obrigatório."
		}
		if birthDate, err := services.ParseDate(req.BirthDate); err != nil {
			fieldErrors["birth_date"] = err.Error()
		} else {
			patient.BirthDate = birthDate
		}
		if internmentDate, err := services.ParseDate(req.InternmentDate); err != nil {
			fieldErrors["internment_date"] = err.Error()
		} else {
			patient.InternmentDate = internmentDate
		}
	}

	if len(fieldErrors) > 0 {
		return c.JSON(http.StatusBadRequest, fieldErrors)
	}

	occurrence := &models.EventOccurrence{
		PatientInvolved:       req.PatientInvolved,
		OccurrenceDate:        occurrenceDate,
		OccurrenceTime:        occurrenceTime,
		ReportingDepartmentID: req.ReportingDepartmentID,
		NotifiedDepartmentID:  req.NotifiedDepartmentID,
		DescriptionOccurrence: services.SanitizeText(req.DescriptionOccurrence),
		ImmediateAction:       services.SanitizeText(req.ImmediateAction),
	}

	if err := services.CreateOccurrence(db.DB, occurrence, patient); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to create occurrence",
		})
	}

	// Notify the flagged sector's owner asynchronously
	notifyNotifiedDepartment(c, occurrence)

	return c.JSON(http.StatusCreated, occurrence)
}

// GetOccurrence returns a single occurrence with patient and response
func GetOccurrence(c echo.Context) error {
	occurrence, err := services.GetOccurrenceByID(db.DB, c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{
				"error": "Occurrence not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to fetch occurrence",
		})
	}
	return c.JSON(http.StatusOK, occurrence)
}

// GetOccurrencesNeedingResponse lists occurrences that still have no
// response, paginated
func GetOccurrencesNeedingResponse(c echo.Context) error {
	page, pageSize := paginationParams(c)

	occurrences, total, err := services.ListOccurrencesNeedingResponse(db.DB, page, pageSize)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to fetch occurrences",
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"occurrences": occurrences,
		"total":       total,
		"page":        page,
		"page_size":   pageSize,
	})
}

// GetOccurrences lists all non-deleted occurrences, paginated
func GetOccurrences(c echo.Context) error {
	page, pageSize := paginationParams(c)

	occurrences, total, err := services.ListOccurrences(db.DB, page, pageSize)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to fetch occurrences",
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"occurrences": occurrences,
		"total":       total,
		"page":        page,
		"page_size":   pageSize,
	})
}

// DeleteOccurrence soft-deletes an occurrence (staff only, routed)
func DeleteOccurrence(c echo.Context) error {
	if err := services.SoftDeleteOccurrence(db.DB, c.Param("id")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{
				"error": "Occurrence not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to delete occurrence",
		})
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Occurrence deleted",
	})
}

// RestoreOccurrence clears the soft-delete mark (staff only, routed)
func RestoreOccurrence(c echo.Context) error {
	if err := services.RestoreOccurrence(db.DB, c.Param("id")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{
				"error": "Occurrence not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to restore occurrence",
		})
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Occurrence restored",
	})
}

// ExportOccurrencesExcel downloads the occurrence register as a workbook
func ExportOccurrencesExcel(c echo.Context) error {
	buf, err := services.ExportOccurrencesExcel(db.DB)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to export occurrences",
		})
	}

	fileName := services.ExportFileName(time.Now())
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return c.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}

// ExportOccurrencePDF downloads a printable report for one occurrence
func ExportOccurrencePDF(c echo.Context) error {
	occurrence, err := services.GetOccurrenceByID(db.DB, c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{
				"error": "Occurrence not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to fetch occurrence",
		})
	}

	html := services.BuildOccurrenceReportHTML(occurrence)
	pdf, err := services.GeneratePDF(html, services.DefaultPDFOptions())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to generate PDF",
		})
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		`attachment; filename="ocorrencia_`+occurrence.ID+`.pdf"`)
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}

// notifyNotifiedDepartment emails the owner of the notified department
func notifyNotifiedDepartment(c echo.Context, occurrence *models.EventOccurrence) {
	cfg, ok := c.Get("config").(*config.Config)
	if !ok {
		return
	}

	var notified models.Department
	if err := db.DB.Preload("Owner").First(&notified, "id = ?", occurrence.NotifiedDepartmentID).Error; err != nil {
		return
	}
	if notified.Owner == nil || notified.Owner.Email == "" {
		return
	}

	reportingName := ""
	var reporting models.Department
	if err := db.DB.First(&reporting, "id = ?", occurrence.ReportingDepartmentID).Error; err == nil {
		reportingName = reporting.Name
	}

	email := services.BuildOccurrenceNotificationEmail(
		notified.Owner.Email, notified.Name, reportingName, occurrence.OccurrenceDate)
	services.SendEmailAsync(cfg, email)
}

// paginationParams reads page/page_size query params with sane defaults
func paginationParams(c echo.Context) (int, int) {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.QueryParam("page_size"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 5
	}
	return page, pageSize
}
