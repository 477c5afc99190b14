package jobs

import (
	"incident_flow_app_go/config"
	"incident_flow_app_go/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupReminderTestDB(t *testing.T) (*gorm.DB, *models.User) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	db.AutoMigrate(
		&models.User{},
		&models.Department{},
		&models.Meta{},
		&models.OccurrenceDescription{},
		&models.IncidentClassification{},
		&models.OccurrenceClassification{},
		&models.DamageClassification{},
		&models.EventOccurrence{},
		&models.ResponseOccurrence{},
	)

	user := &models.User{Email: "respondente@hospital.org", Username: "respondente", Password: "x", IsActive: true}
	assert.NoError(t, db.Create(user).Error)
	return db, user
}

func reminderTestResponse(t *testing.T, db *gorm.DB, owner *models.User, deadline *time.Time, resolved bool) *models.ResponseOccurrence {
	t.Helper()

	reporting := models.Department{Name: "Setor A " + time.Now().String(), OwnerID: owner.ID}
	notified := models.Department{Name: "Setor B " + time.Now().String(), OwnerID: owner.ID}
	assert.NoError(t, db.Create(&reporting).Error)
	assert.NoError(t, db.Create(&notified).Error)

	occurrence := models.EventOccurrence{
		OccurrenceDate:        time.Now(),
		OccurrenceTime:        "10:00",
		ReportingDepartmentID: reporting.ID,
		NotifiedDepartmentID:  notified.ID,
		DescriptionOccurrence: "Ocorrência de teste",
		ImmediateAction:       "Ação imediata",
	}
	assert.NoError(t, db.Create(&occurrence).Error)

	occClass := models.OccurrenceClassification{Classification: "Incidente sem dano"}
	dmgClass := models.DamageClassification{Classification: "Nenhum"}
	incClass := models.IncidentClassification{Classification: "Evento Adverso"}
	assert.NoError(t, db.Create(&occClass).Error)
	assert.NoError(t, db.Create(&dmgClass).Error)
	assert.NoError(t, db.Create(&incClass).Error)

	meta := models.Meta{Name: "Meta de teste", OwnerID: owner.ID}
	description := models.OccurrenceDescription{Name: "Descrição de teste", OwnerID: owner.ID}
	assert.NoError(t, db.Create(&meta).Error)
	assert.NoError(t, db.Create(&description).Error)

	response := &models.ResponseOccurrence{
		OccurrenceID:               occurrence.ID,
		OccurrenceDescriptionID:    description.ID,
		MetaID:                     meta.ID,
		Description:                "Tratativa",
		DeadlineResponse:           deadline,
		Resolved:                   resolved,
		IncidentClassificationID:   incClass.ID,
		OccurrenceClassificationID: occClass.ID,
		DamageClassificationID:     dmgClass.ID,
		OwnerID:                    owner.ID,
	}
	assert.NoError(t, db.Create(response).Error)
	return response
}

func testConfig() *config.Config {
	// Test mode keeps emails on the console
	return &config.Config{EmailTestMode: true, EmailFrom: "noreply@hospital.org"}
}

func TestSendDeadlineRemindersWithinWindow(t *testing.T) {
	db, user := setupReminderTestDB(t)

	soon := time.Now().Add(24 * time.Hour)
	response := reminderTestResponse(t, db, user, &soon, false)

	SendDeadlineReminders(db, testConfig())

	var reloaded models.ResponseOccurrence
	assert.NoError(t, db.First(&reloaded, "id = ?", response.ID).Error)
	assert.NotNil(t, reloaded.ReminderSentAt)
}

func TestSendDeadlineRemindersOverdue(t *testing.T) {
	db, user := setupReminderTestDB(t)

	past := time.Now().Add(-24 * time.Hour)
	response := reminderTestResponse(t, db, user, &past, false)

	SendDeadlineReminders(db, testConfig())

	var reloaded models.ResponseOccurrence
	assert.NoError(t, db.First(&reloaded, "id = ?", response.ID).Error)
	assert.NotNil(t, reloaded.ReminderSentAt)
}

func TestSendDeadlineRemindersSkipsOutsideWindow(t *testing.T) {
	db, user := setupReminderTestDB(t)

	far := time.Now().Add(DeadlineReminderWindow + 24*time.Hour)
	response := reminderTestResponse(t, db, user, &far, false)

	SendDeadlineReminders(db, testConfig())

	var reloaded models.ResponseOccurrence
	assert.NoError(t, db.First(&reloaded, "id = ?", response.ID).Error)
	assert.Nil(t, reloaded.ReminderSentAt)
}

func TestSendDeadlineRemindersSkipsResolved(t *testing.T) {
	db, user := setupReminderTestDB(t)

	soon := time.Now().Add(24 * time.Hour)
	response := reminderTestResponse(t, db, user, &soon, true)

	SendDeadlineReminders(db, testConfig())

	var reloaded models.ResponseOccurrence
	assert.NoError(t, db.First(&reloaded, "id = ?", response.ID).Error)
	assert.Nil(t, reloaded.ReminderSentAt)
}

func TestSendDeadlineRemindersOnlyOnce(t *testing.T) {
	db, user := setupReminderTestDB(t)

	soon := time.Now().Add(24 * time.Hour)
	response := reminderTestResponse(t, db, user, &soon, false)

	SendDeadlineReminders(db, testConfig())

	var first models.ResponseOccurrence
	assert.NoError(t, db.First(&first, "id = ?", response.ID).Error)
	assert.NotNil(t, first.ReminderSentAt)
	sentAt := *first.ReminderSentAt

	// A second run leaves the already-reminded response alone
	SendDeadlineReminders(db, testConfig())

	var second models.ResponseOccurrence
	assert.NoError(t, db.First(&second, "id = ?", response.ID).Error)
	assert.Equal(t, sentAt.Unix(), second.ReminderSentAt.Unix())
}

func TestSendDeadlineRemindersSkipsNoDeadline(t *testing.T) {
	db, user := setupReminderTestDB(t)

	response := reminderTestResponse(t, db, user, nil, false)

	SendDeadlineReminders(db, testConfig())

	var reloaded models.ResponseOccurrence
	assert.NoError(t, db.First(&reloaded, "id = ?", response.ID).Error)
	assert.Nil(t, reloaded.ReminderSentAt)
}
