package handlers

import (
	"incident_flow_app_go/config"
	"incident_flow_app_go/db"
	"incident_flow_app_go/middleware"
	"incident_flow_app_go/models"
	"incident_flow_app_go/services"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	// Unique shared memory name to isolate tests while allowing shared cache
	dbName := "mem_" + uuid.New().String()
	testDB, err := gorm.Open(sqlite.Open("file:"+dbName+"?mode=memory&cache=shared&_busy_timeout=5000"), &gorm.Config{TranslateError: true})
	assert.NoError(t, err)

	// Initialize Storage for tests if not already set
	if services.Storage == nil {
		services.Storage = services.NewLocalStorage("tmp/test_uploads")
	}

	err = testDB.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Department{},
		&models.Gender{},
		&models.Race{},
		&models.Meta{},
		&models.OccurrenceDescription{},
		&models.IncidentClassification{},
		&models.OccurrenceClassification{},
		&models.DamageClassification{},
		&models.EventPatient{},
		&models.EventOccurrence{},
		&models.ResponseOccurrence{},
		&models.ManagerResponse{},
		&models.OccurrenceAttachment{},
	)
	assert.NoError(t, err)

	// Set global DB
	db.DB = testDB

	return testDB
}

func setupEcho(method, path string, body io.Reader) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, body)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	// Add config to context
	c.Set("config", &config.Config{
		Environment:   "test",
		EmailTestMode: true,
	})

	return e, c, rec
}

// createTestUser persists an active user and returns it
func createTestUser(t *testing.T, database *gorm.DB, email, username string) *models.User {
	t.Helper()
	hashed, err := services.HashPassword("pass123456789")
	assert.NoError(t, err)
	user := &models.User{
		Email:    email,
		Username: username,
		Password: hashed,
		IsActive: true,
	}
	assert.NoError(t, database.Create(user).Error)
	return user
}

// actAs places the user in the request context the way RequireAuth would
func actAs(c echo.Context, user *models.User) {
	c.Set(middleware.ContextKeyUser, user)
}

// createTestOccurrence persists a minimal occurrence with its departments
func createTestOccurrence(t *testing.T, database *gorm.DB, owner *models.User) *models.EventOccurrence {
	t.Helper()

	reporting := &models.Department{Name: "Reporting " + uuid.New().String(), OwnerID: owner.ID}
	notified := &models.Department{Name: "Notified " + uuid.New().String(), OwnerID: owner.ID}
	assert.NoError(t, database.Create(reporting).Error)
	assert.NoError(t, database.Create(notified).Error)

	occurrence := &models.EventOccurrence{
		OccurrenceDate:        time.Now(),
		OccurrenceTime:        "11:45",
		ReportingDepartmentID: reporting.ID,
		NotifiedDepartmentID:  notified.ID,
		DescriptionOccurrence: "Ocorrência de teste",
		ImmediateAction:       "Ação imediata de teste",
	}
	assert.NoError(t, database.Create(occurrence).Error)
	return occurrence
}

// createResponseDeps persists the lookups a response payload references
func createResponseDeps(t *testing.T, database *gorm.DB, owner *models.User, occLabel, dmgLabel string) (meta *models.Meta, description *models.OccurrenceDescription, inc *models.IncidentClassification, occ *models.OccurrenceClassification, dmg *models.DamageClassification) {
	t.Helper()

	meta = &models.Meta{Name: "Meta " + uuid.New().String(), OwnerID: owner.ID}
	description = &models.OccurrenceDescription{Name: "Descrição " + uuid.New().String(), OwnerID: owner.ID}
	inc = &models.IncidentClassification{Classification: "Evento Adverso"}
	occ = &models.OccurrenceClassification{Classification: occLabel}
	dmg = &models.DamageClassification{Classification: dmgLabel}

	assert.NoError(t, database.Create(meta).Error)
	assert.NoError(t, database.Create(description).Error)
	assert.NoError(t, database.Create(inc).Error)
	assert.NoError(t, database.Create(occ).Error)
	assert.NoError(t, database.Create(dmg).Error)
	return
}
