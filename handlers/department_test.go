package handlers

import (
	"incident_flow_app_go/models"
	"incident_flow_app_go/services"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateDepartment(t *testing.T) {
	database := setupTestDB(t)
	user := createTestUser(t, database, "criadora@hospital.org", "criadora")

	t.Run("Success", func(t *testing.T) {
		f := url.Values{}
		f.Add("name", "Nutrição")
		f.Add("description", "Serviço de Nutrição e Dietética")

		_, c, rec := setupEcho(http.MethodPost, "/api/departments", strings.NewReader(f.Encode()))
		c.Request().Header.Set("Content-Type", "application/x-www-form-urlencoded")
		actAs(c, user)

		assert.NoError(t, CreateDepartment(c))
		assert.Equal(t, http.StatusCreated, rec.Code)

		var dept models.Department
		assert.NoError(t, database.First(&dept, "name = ?", "Nutrição").Error)
		assert.Equal(t, user.ID, dept.OwnerID)
	})

	t.Run("Blank name", func(t *testing.T) {
		f := url.Values{}
		f.Add("name", "   ")

		_, c, rec := setupEcho(http.MethodPost, "/api/departments", strings.NewReader(f.Encode()))
		c.Request().Header.Set("Content-Type", "application/x-www-form-urlencoded")
		actAs(c, user)

		assert.NoError(t, CreateDepartment(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "não pode estar vazio")
	})

	t.Run("Duplicate name", func(t *testing.T) {
		f := url.Values{}
		f.Add("name", "Nutrição")

		_, c, rec := setupEcho(http.MethodPost, "/api/departments", strings.NewReader(f.Encode()))
		c.Request().Header.Set("Content-Type", "application/x-www-form-urlencoded")
		actAs(c, user)

		assert.NoError(t, CreateDepartment(c))
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), "Já existe um departamento")
	})
}

func TestGetDepartmentsScoped(t *testing.T) {
	database := setupTestDB(t)

	admin := createTestUser(t, database, "admin@hospital.org", "adminuser")
	nurse := createTestUser(t, database, "nurse@hospital.org", "nurseuser")
	outsider := createTestUser(t, database, "fora@hospital.org", "forauser")

	adminDept := models.Department{Name: services.AdminDepartmentName, OwnerID: admin.ID}
	nursing := models.Department{Name: "Enfermagem", OwnerID: nurse.ID}
	assert.NoError(t, database.Create(&adminDept).Error)
	assert.NoError(t, database.Create(&nursing).Error)
	assert.NoError(t, database.Model(admin).Association("Departments").Append(&adminDept))
	assert.NoError(t, database.Model(nurse).Association("Departments").Append(&nursing))

	t.Run("Admin sees everything", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodGet, "/api/departments", nil)
		actAs(c, admin)

		assert.NoError(t, GetDepartments(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Enfermagem")
		assert.Contains(t, rec.Body.String(), services.AdminDepartmentName)
	})

	t.Run("Member sees own rows only", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodGet, "/api/departments", nil)
		actAs(c, nurse)

		assert.NoError(t, GetDepartments(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Enfermagem")
		assert.NotContains(t, rec.Body.String(), services.AdminDepartmentName)
	})

	t.Run("Outsider sees nothing", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodGet, "/api/departments", nil)
		actAs(c, outsider)

		assert.NoError(t, GetDepartments(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotContains(t, rec.Body.String(), "Enfermagem")
	})

	t.Run("Name filter", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodGet, "/api/departments?name=Enferm", nil)
		actAs(c, admin)

		assert.NoError(t, GetDepartments(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Enfermagem")
		assert.NotContains(t, rec.Body.String(), services.AdminDepartmentName)
	})
}

func TestGetDepartmentGuard(t *testing.T) {
	database := setupTestDB(t)

	owner := createTestUser(t, database, "zelosa@hospital.org", "zelosauser")
	stranger := createTestUser(t, database, "estranha@hospital.org", "estranhauser")

	dept := models.Department{Name: "Faturamento", OwnerID: owner.ID}
	assert.NoError(t, database.Create(&dept).Error)

	t.Run("Owner allowed", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodGet, "/api/departments/"+dept.ID, nil)
		c.SetParamNames("id")
		c.SetParamValues(dept.ID)
		actAs(c, owner)

		assert.NoError(t, GetDepartment(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Faturamento")
	})

	t.Run("Stranger redirected home with notice", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodGet, "/api/departments/"+dept.ID, nil)
		c.SetParamNames("id")
		c.SetParamValues(dept.ID)
		actAs(c, stranger)

		assert.NoError(t, GetDepartment(c))
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/", rec.Header().Get("Location"))

		// The denial message rides in the flash cookie
		var flash string
		for _, cookie := range rec.Result().Cookies() {
			if cookie.Name == "incident_flow_flash" {
				flash, _ = url.QueryUnescape(cookie.Value)
			}
		}
		assert.Equal(t, "Você não tem nível de permissão para acessar este recurso.", flash)
	})

	t.Run("HTMX denial gets HX-Redirect", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodGet, "/api/departments/"+dept.ID, nil)
		c.Request().Header.Set("HX-Request", "true")
		c.SetParamNames("id")
		c.SetParamValues(dept.ID)
		actAs(c, stranger)

		assert.NoError(t, GetDepartment(c))
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "/", rec.Header().Get("HX-Redirect"))
	})

	t.Run("Missing department", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodGet, "/api/departments/missing", nil)
		c.SetParamNames("id")
		c.SetParamValues("missing")
		actAs(c, owner)

		assert.NoError(t, GetDepartment(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestUpdateDepartment(t *testing.T) {
	database := setupTestDB(t)
	owner := createTestUser(t, database, "editora@hospital.org", "editorauser")

	dept := models.Department{Name: "Almoxarifado", OwnerID: owner.ID}
	assert.NoError(t, database.Create(&dept).Error)

	f := url.Values{}
	f.Add("name", "Almoxarifado Central")

	_, c, rec := setupEcho(http.MethodPut, "/api/departments/"+dept.ID, strings.NewReader(f.Encode()))
	c.Request().Header.Set("Content-Type", "application/x-www-form-urlencoded")
	c.SetParamNames("id")
	c.SetParamValues(dept.ID)
	actAs(c, owner)

	assert.NoError(t, UpdateDepartment(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var reloaded models.Department
	assert.NoError(t, database.First(&reloaded, "id = ?", dept.ID).Error)
	assert.Equal(t, "Almoxarifado Central", reloaded.Name)
	assert.Equal(t, owner.ID, reloaded.OwnerID)
}

func TestDeleteDepartmentSoftDeletes(t *testing.T) {
	database := setupTestDB(t)
	owner := createTestUser(t, database, "removedora@hospital.org", "removedora")

	dept := models.Department{Name: "Setor Temporário", OwnerID: owner.ID}
	assert.NoError(t, database.Create(&dept).Error)

	_, c, rec := setupEcho(http.MethodDelete, "/api/departments/"+dept.ID, nil)
	c.SetParamNames("id")
	c.SetParamValues(dept.ID)
	actAs(c, owner)

	assert.NoError(t, DeleteDepartment(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var count int64
	database.Model(&models.Department{}).Where("id = ?", dept.ID).Count(&count)
	assert.Equal(t, int64(0), count)

	database.Unscoped().Model(&models.Department{}).Where("id = ?", dept.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}
