package handlers

import (
	"errors"
	"incident_flow_app_go/db"
	"incident_flow_app_go/middleware"
	"incident_flow_app_go/models"
	"incident_flow_app_go/services"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// ManagerResponseRequest carries a manager note on an escalated response
type ManagerResponseRequest struct {
	ResponseOccurrenceID string `json:"response_occurrence_id" form:"response_occurrence_id"`
	ResponseText         string `json:"response_text" form:"response_text"`
}

// CreateManagerResponse records a manager note. The parent response must
// have been flagged send_manager.
func CreateManagerResponse(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error": "Not authenticated",
		})
	}

	req := new(ManagerResponseRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid request body",
		})
	}

	fieldErrors := map[string]string{}
	if req.ResponseOccurrenceID == "" {
		fieldErrors["response_occurrence_id"] = "Tratativa é obrigatória."
	}
	if services.SanitizeText(req.ResponseText) == "" {
		fieldErrors["response_text"] = "Resposta da gestão é obrigatória."
	}
	if len(fieldErrors) > 0 {
		return c.JSON(http.StatusBadRequest, fieldErrors)
	}

	managerResponse := &models.ManagerResponse{
		ResponseOccurrenceID: req.ResponseOccurrenceID,
		ResponseText:         services.SanitizeText(req.ResponseText),
		OwnerID:              user.ID,
	}

	if err := services.CreateManagerResponse(db.DB, managerResponse); err != nil {
		if errors.Is(err, services.ErrNotEscalated) {
			return c.JSON(http.StatusBadRequest, map[string]string{
				"error": "Esta tratativa não foi enviada à gestão.",
			})
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{
				"error": "Response not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to create manager response",
		})
	}

	return c.JSON(http.StatusCreated, managerResponse)
}

// GetManagerResponses lists the manager notes on one escalated response
func GetManagerResponses(c echo.Context) error {
	var notes []models.ManagerResponse
	err := db.DB.
		Where("response_occurrence_id = ?", c.Param("id")).
		Order("created_at").
		Find(&notes).Error
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to fetch manager responses",
		})
	}
	return c.JSON(http.StatusOK, notes)
}
