package handlers

import (
	"errors"
	"incident_flow_app_go/db"
	"incident_flow_app_go/middleware"
	"incident_flow_app_go/models"
	"incident_flow_app_go/services"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

const (
	msgNoObjectPermission = "Você não tem nível de permissão para acessar este recurso."
	msgProfileNotFound    = "Perfil do usuário não encontrado."
)

// DepartmentRequest is the department form payload
type DepartmentRequest struct {
	Name        string  `json:"name" form:"name"`
	Description *string `json:"description" form:"description"`
}

// GetDepartments lists departments the current user may see, optionally
// filtered by name
func GetDepartments(c echo.Context) error {
	user, err := currentProfile(c)
	if err != nil {
		return middleware.RedirectHomeWithError(c, msgProfileNotFound)
	}

	query := services.DepartmentScopedQuery(db.DB.Model(&models.Department{}), user, "")

	if name := c.QueryParam("name"); name != "" {
		query = query.Where("name LIKE ?", "%"+name+"%")
	}

	var departments []models.Department
	if err := query.Order("name").Find(&departments).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to fetch departments",
		})
	}

	return c.JSON(http.StatusOK, departments)
}

// GetDepartment returns a single department, guarded by ownership/department
// membership
func GetDepartment(c echo.Context) error {
	department, _, denied := guardedDepartment(c)
	if department == nil {
		return denied
	}

	return c.JSON(http.StatusOK, department)
}

// CreateDepartment creates a department owned by the current user
func CreateDepartment(c echo.Context) error {
	currentUser := middleware.GetCurrentUser(c)

	req := new(DepartmentRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid request body",
		})
	}

	if strings.TrimSpace(req.Name) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"name": "Este campo não pode estar vazio.",
		})
	}

	department := &models.Department{
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     currentUser.ID,
	}

	if err := db.DB.Create(department).Error; err != nil {
		if isDuplicateError(err) {
			return c.JSON(http.StatusConflict, map[string]string{
				"name": "Já existe um departamento com este nome.",
			})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to create department",
		})
	}

	return c.JSON(http.StatusCreated, department)
}

// UpdateDepartment updates name/description; ownership is never reassigned
func UpdateDepartment(c echo.Context) error {
	department, _, denied := guardedDepartment(c)
	if department == nil {
		return denied
	}

	req := new(DepartmentRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid request body",
		})
	}

	if strings.TrimSpace(req.Name) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"name": "Este campo não pode estar vazio.",
		})
	}

	department.Name = req.Name
	department.Description = req.Description

	if err := db.DB.Save(department).Error; err != nil {
		if isDuplicateError(err) {
			return c.JSON(http.StatusConflict, map[string]string{
				"name": "Já existe um departamento com este nome.",
			})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to update department",
		})
	}

	return c.JSON(http.StatusOK, department)
}

// DeleteDepartment soft-deletes a department
func DeleteDepartment(c echo.Context) error {
	department, _, denied := guardedDepartment(c)
	if department == nil {
		return denied
	}

	if err := db.DB.Delete(department).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to delete department",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Department deleted",
	})
}

// guardedDepartment fetches the target department and applies the
// single-object guard. When access is denied or the target is missing the
// denial response is already written and the department comes back nil.
func guardedDepartment(c echo.Context) (*models.Department, *models.User, error) {
	id := c.Param("id")

	var department models.Department
	if err := db.DB.First(&department, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, c.JSON(http.StatusNotFound, map[string]string{
				"error": "Department not found",
			})
		}
		return nil, nil, c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to fetch department",
		})
	}

	user, err := currentProfile(c)
	if err != nil {
		return nil, nil, middleware.RedirectHomeWithError(c, msgProfileNotFound)
	}

	allowed, err := services.CanAccessObject(db.DB, user, department.OwnerID, nil)
	if err != nil {
		return nil, nil, c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to check permissions",
		})
	}
	if !allowed {
		return nil, nil, middleware.RedirectHomeWithError(c, msgNoObjectPermission)
	}

	return &department, user, nil
}

// currentProfile re-reads the authenticated user with department
// memberships; guards never trust a stale session copy
func currentProfile(c echo.Context) (*models.User, error) {
	sessionUser := middleware.GetCurrentUser(c)
	if sessionUser == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return services.LoadUserWithDepartments(db.DB, sessionUser.ID)
}

// isDuplicateError recognizes unique-constraint violations
func isDuplicateError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
