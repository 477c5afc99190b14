package handlers

import (
	"errors"
	"incident_flow_app_go/config"
	"incident_flow_app_go/db"
	"incident_flow_app_go/middleware"
	"incident_flow_app_go/models"
	"incident_flow_app_go/services"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// ResponseRequest carries a response ("tratativa") to an occurrence
type ResponseRequest struct {
	OccurrenceID               string `json:"occurrence_id" form:"occurrence_id"`
	OccurrenceDescriptionID    string `json:"occurrence_description_id" form:"occurrence_description_id"`
	MetaID                     string `json:"meta_id" form:"meta_id"`
	Description                string `json:"description" form:"description"`
	Resolved                   bool   `json:"resolved" form:"resolved"`
	SendManager                bool   `json:"send_manager" form:"send_manager"`
	EventInvestigation         bool   `json:"event_investigation" form:"event_investigation"`
	IncidentClassificationID   string `json:"incident_classification_id" form:"incident_classification_id"`
	OccurrenceClassificationID string `json:"occurrence_classification_id" form:"occurrence_classification_id"`
	DamageClassificationID     string `json:"damage_classification_id" form:"damage_classification_id"`
}

// CreateResponse answers an occurrence. The acting user becomes the owner
// and the deadline is stamped from the chosen classifications.
func CreateResponse(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error": "Not authenticated",
		})
	}

	req := new(ResponseRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid request body",
		})
	}

	fieldErrors := map[string]string{}
	if req.OccurrenceID == "" {
		fieldErrors["occurrence_id"] = "Ocorrência é obrigatória."
	}
	if req.OccurrenceDescriptionID == "" {
		fieldErrors["occurrence_description_id"] = "Descrição da ocorrência é obrigatória."
	}
	if req.MetaID == "" {
		fieldErrors["meta_id"] = "Meta é obrigatória."
	}
	if services.SanitizeText(req.Description) == "" {
		fieldErrors["description"] = "Descrição da tratativa é obrigatória."
	}
	if req.IncidentClassificationID == "" {
		fieldErrors["incident_classification_id"] = "Classificação do incidente é obrigatória."
	}
	if req.OccurrenceClassificationID == "" {
		fieldErrors["occurrence_classification_id"] = "Classificação da ocorrência é obrigatória."
	}
	if req.DamageClassificationID == "" {
		fieldErrors["damage_classification_id"] = "Classificação do dano é obrigatória."
	}
	if len(fieldErrors) > 0 {
		return c.JSON(http.StatusBadRequest, fieldErrors)
	}

	response := &models.ResponseOccurrence{
		OccurrenceID:               req.OccurrenceID,
		OccurrenceDescriptionID:    req.OccurrenceDescriptionID,
		MetaID:                     req.MetaID,
		Description:                services.SanitizeText(req.Description),
		Resolved:                   req.Resolved,
		SendManager:                req.SendManager,
		EventInvestigation:         req.EventInvestigation,
		IncidentClassificationID:   req.IncidentClassificationID,
		OccurrenceClassificationID: req.OccurrenceClassificationID,
		DamageClassificationID:     req.DamageClassificationID,
		OwnerID:                    user.ID,
	}

	if err := services.CreateResponseOccurrence(db.DB, response); err != nil {
		if errors.Is(err, services.ErrDuplicateResponse) {
			return c.JSON(http.StatusConflict, map[string]string{
				"error": "Esta ocorrência já possui uma tratativa.",
			})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to create response",
		})
	}

	if response.SendManager {
		notifyManagerEscalation(c, response)
	}

	return c.JSON(http.StatusCreated, response)
}

// GetResponse returns one response after the access guard
func GetResponse(c echo.Context) error {
	response, _, denied := guardedResponse(c)
	if response == nil {
		return denied
	}
	return c.JSON(http.StatusOK, response)
}

// GetResponseForOccurrence returns the response attached to an occurrence
func GetResponseForOccurrence(c echo.Context) error {
	response, err := services.GetResponseForOccurrence(db.DB, c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{
				"error": "Response not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to fetch response",
		})
	}
	return c.JSON(http.StatusOK, response)
}

// UpdateResponse edits a response. The deadline is stamped only when still
// unset; edits never recompute it.
func UpdateResponse(c echo.Context) error {
	response, _, denied := guardedResponse(c)
	if response == nil {
		return denied
	}

	req := new(ResponseRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid request body",
		})
	}

	wasEscalated := response.SendManager

	if req.OccurrenceDescriptionID != "" {
		response.OccurrenceDescriptionID = req.OccurrenceDescriptionID
	}
	if req.MetaID != "" {
		response.MetaID = req.MetaID
	}
	if services.SanitizeText(req.Description) != "" {
		response.Description = services.SanitizeText(req.Description)
	}
	if req.IncidentClassificationID != "" {
		response.IncidentClassificationID = req.IncidentClassificationID
	}
	if req.OccurrenceClassificationID != "" {
		response.OccurrenceClassificationID = req.OccurrenceClassificationID
	}
	if req.DamageClassificationID != "" {
		response.DamageClassificationID = req.DamageClassificationID
	}
	response.Resolved = req.Resolved
	response.SendManager = req.SendManager
	response.EventInvestigation = req.EventInvestigation

	if err := services.SaveResponseOccurrence(db.DB, response); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to update response",
		})
	}

	if response.SendManager && !wasEscalated {
		notifyManagerEscalation(c, response)
	}

	return c.JSON(http.StatusOK, response)
}

// GetEscalatedResponses lists responses flagged for manager review
func GetEscalatedResponses(c echo.Context) error {
	page, pageSize := paginationParams(c)

	responses, total, err := services.ListResponsesSentToManager(db.DB, page, pageSize)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to fetch responses",
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"responses": responses,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// guardedResponse fetches a response by path id and applies the object
// permission check, replying with the home redirect + flash when denied.
// A nil response means the denial has already been written.
func guardedResponse(c echo.Context) (*models.ResponseOccurrence, *models.User, error) {
	response, err := services.GetResponseByID(db.DB, c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, c.JSON(http.StatusNotFound, map[string]string{
				"error": "Response not found",
			})
		}
		return nil, nil, c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to fetch response",
		})
	}

	user, err := currentProfile(c)
	if err != nil {
		return nil, nil, middleware.RedirectHomeWithError(c, msgProfileNotFound)
	}

	allowed, err := services.CanAccessObject(db.DB, user, response.OwnerID, nil)
	if err != nil {
		return nil, nil, c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to check permissions",
		})
	}
	if !allowed {
		return nil, nil, middleware.RedirectHomeWithError(c, msgNoObjectPermission)
	}

	return response, user, nil
}

// notifyManagerEscalation emails the manager of the notified sector when a
// response is flagged for their review
func notifyManagerEscalation(c echo.Context, response *models.ResponseOccurrence) {
	cfg, ok := c.Get("config").(*config.Config)
	if !ok {
		return
	}

	var occurrence models.EventOccurrence
	err := db.DB.
		Preload("NotifiedDepartment.Owner").
		First(&occurrence, "id = ?", response.OccurrenceID).Error
	if err != nil || occurrence.NotifiedDepartment == nil || occurrence.NotifiedDepartment.Owner == nil {
		return
	}

	manager := occurrence.NotifiedDepartment.Owner
	if manager.Email == "" {
		return
	}

	var responder models.User
	if err := db.DB.First(&responder, "id = ?", response.OwnerID).Error; err != nil {
		return
	}

	email := services.BuildManagerEscalationEmail(manager.Email, responder.Username, response.DeadlineResponse)
	services.SendEmailAsync(cfg, email)
}
