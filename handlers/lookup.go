package handlers

import (
	"incident_flow_app_go/db"
	"incident_flow_app_go/middleware"
	"incident_flow_app_go/models"
	"net/http"

	"github.com/labstack/echo/v4"
)

// LookupRequest carries a named lookup entry
type LookupRequest struct {
	Name string `json:"name" form:"name"`
}

// GetGenders lists gender options for patient records
func GetGenders(c echo.Context) error {
	var genders []models.Gender
	if err := db.DB.Order("name").Find(&genders).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to fetch genders",
		})
	}
	return c.JSON(http.StatusOK, genders)
}

// GetRaces lists race options for patient records
func GetRaces(c echo.Context) error {
	var races []models.Race
	if err := db.DB.Order("name").Find(&races).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to fetch races",
		})
	}
	return c.JSON(http.StatusOK, races)
}

// GetMetas lists regulatory-goal tags
func GetMetas(c echo.Context) error {
	var metas []models.Meta
	if err := db.DB.Order("name").Find(&metas).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to fetch metas",
		})
	}
	return c.JSON(http.StatusOK, metas)
}

// CreateMeta adds a regulatory-goal tag owned by the acting user
func CreateMeta(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error": "Not authenticated",
		})
	}

	req := new(LookupRequest)
	if err := c.Bind(req); err != nil || req.Name == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"name": "Este campo não pode estar vazio.",
		})
	}

	meta := &models.Meta{Name: req.Name, OwnerID: user.ID}
	if err := db.DB.Create(meta).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to create meta",
		})
	}
	return c.JSON(http.StatusCreated, meta)
}

// GetOccurrenceDescriptions lists the catalog of occurrence descriptions
func GetOccurrenceDescriptions(c echo.Context) error {
	var descriptions []models.OccurrenceDescription
	if err := db.DB.Order("name").Find(&descriptions).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to fetch occurrence descriptions",
		})
	}
	return c.JSON(http.StatusOK, descriptions)
}

// CreateOccurrenceDescription adds a catalog entry owned by the acting user
func CreateOccurrenceDescription(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error": "Not authenticated",
		})
	}

	req := new(LookupRequest)
	if err := c.Bind(req); err != nil || req.Name == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"name": "Este campo não pode estar vazio.",
		})
	}

	description := &models.OccurrenceDescription{Name: req.Name, OwnerID: user.ID}
	if err := db.DB.Create(description).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to create occurrence description",
		})
	}
	return c.JSON(http.StatusCreated, description)
}
