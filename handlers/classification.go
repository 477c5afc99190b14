package handlers

import (
	"incident_flow_app_go/db"
	"incident_flow_app_go/models"
	"net/http"

	"github.com/labstack/echo/v4"
)

// ClassificationRequest carries a classification label
type ClassificationRequest struct {
	Classification string `json:"classification" form:"classification"`
}

// GetIncidentClassifications lists incident labels alphabetically
func GetIncidentClassifications(c echo.Context) error {
	var classifications []models.IncidentClassification
	if err := db.DB.Order("classification").Find(&classifications).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to fetch classifications",
		})
	}
	return c.JSON(http.StatusOK, classifications)
}

// GetOccurrenceClassifications lists occurrence labels alphabetically
func GetOccurrenceClassifications(c echo.Context) error {
	var classifications []models.OccurrenceClassification
	if err := db.DB.Order("classification").Find(&classifications).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to fetch classifications",
		})
	}
	return c.JSON(http.StatusOK, classifications)
}

// GetDamageClassifications lists damage labels alphabetically
func GetDamageClassifications(c echo.Context) error {
	var classifications []models.DamageClassification
	if err := db.DB.Order("classification").Find(&classifications).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to fetch classifications",
		})
	}
	return c.JSON(http.StatusOK, classifications)
}

// CreateIncidentClassification adds an incident label (staff only, routed)
func CreateIncidentClassification(c echo.Context) error {
	req := new(ClassificationRequest)
	if err := c.Bind(req); err != nil || req.Classification == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"classification": "Este campo não pode estar vazio.",
		})
	}

	classification := &models.IncidentClassification{Classification: req.Classification}
	if err := db.DB.Create(classification).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to create classification",
		})
	}
	return c.JSON(http.StatusCreated, classification)
}

// CreateOccurrenceClassification adds an occurrence label (staff only, routed)
func CreateOccurrenceClassification(c echo.Context) error {
	req := new(ClassificationRequest)
	if err := c.Bind(req); err != nil || req.Classification == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"classification": "Este campo não pode estar vazio.",
		})
	}

	classification := &models.OccurrenceClassification{Classification: req.Classification}
	if err := db.DB.Create(classification).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to create classification",
		})
	}
	return c.JSON(http.StatusCreated, classification)
}

// CreateDamageClassification adds a damage label (staff only, routed)
func CreateDamageClassification(c echo.Context) error {
	req := new(ClassificationRequest)
	if err := c.Bind(req); err != nil || req.Classification == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"classification": "Este campo não pode estar vazio.",
		})
	}

	classification := &models.DamageClassification{Classification: req.Classification}
	if err := db.DB.Create(classification).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to create classification",
		})
	}
	return c.JSON(http.StatusCreated, classification)
}
