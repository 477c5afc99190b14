package services

import (
	"incident_flow_app_go/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDeadlineTestDB() *gorm.DB {
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
	return db
}

func TestCalculateDeadline(t *testing.T) {
	tests := []struct {
		name            string
		occurrenceLabel string
		damageLabel     string
		expected        int
	}{
		{"improcedente with light damage", "Improcedente", "Dano Leve", 8},
		{"no-harm incident with no damage", "Incidente sem dano", "Nenhum", 25},
		{"nonconformity with death", "Não conformidade", "Dano Óbito", 30},
		{"risk circumstance with moderate damage", "Circustância de Risco", "Dano Moderado", 20},
		{"quality deviation with severe damage", "Desvio da Qualidade", "Dano Grave", 18},
		{"contract breach with no damage", "Quebra de contratualização", "Nenhum", 30},
		{"improcedente alone", "Improcedente", "", 1},
		{"damage alone", "", "Dano Leve", 7},
		{"both unknown", "Outra coisa", "Sei lá", 0},
		{"empty labels", "", "", 0},
		// Matching is exact: lowercase and missing accents do not count
		{"case sensitive", "improcedente", "dano leve", 0},
		{"accent sensitive", "Dano Obito", "Nao conformidade", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CalculateDeadline(tt.occurrenceLabel, tt.damageLabel))
		})
	}
}

// deadlineFixture creates everything a response needs to be persisted
type deadlineFixture struct {
	user        models.User
	occurrence  models.EventOccurrence
	occClass    models.OccurrenceClassification
	dmgClass    models.DamageClassification
	incClass    models.IncidentClassification
	meta        models.Meta
	description models.OccurrenceDescription
}

func newDeadlineFixture(t *testing.T, db *gorm.DB, occLabel, dmgLabel string) *deadlineFixture {
	t.Helper()

	f := &deadlineFixture{}

	f.user = models.User{Email: "qualidade@hospital.org", Username: "qualidade", Password: "x", IsActive: true}
	assert.NoError(t, db.Create(&f.user).Error)

	reporting := models.Department{Name: "Farmácia", OwnerID: f.user.ID}
	notified := models.Department{Name: "Enfermagem", OwnerID: f.user.ID}
	assert.NoError(t, db.Create(&reporting).Error)
	assert.NoError(t, db.Create(&notified).Error)

	f.occurrence = models.EventOccurrence{
		OccurrenceDate:        time.Now(),
		OccurrenceTime:        "14:30",
		ReportingDepartmentID: reporting.ID,
		NotifiedDepartmentID:  notified.ID,
		DescriptionOccurrence: "Medicamento administrado fora do horário",
		ImmediateAction:       "Paciente monitorado",
	}
	assert.NoError(t, db.Create(&f.occurrence).Error)

	f.occClass = models.OccurrenceClassification{Classification: occLabel}
	f.dmgClass = models.DamageClassification{Classification: dmgLabel}
	f.incClass = models.IncidentClassification{Classification: "Assistencial"}
	assert.NoError(t, db.Create(&f.occClass).Error)
	assert.NoError(t, db.Create(&f.dmgClass).Error)
	assert.NoError(t, db.Create(&f.incClass).Error)

	f.meta = models.Meta{Name: "Meta 1 - Identificação do paciente", OwnerID: f.user.ID}
	f.description = models.OccurrenceDescription{Name: "Erro de medicação", OwnerID: f.user.ID}
	assert.NoError(t, db.Create(&f.meta).Error)
	assert.NoError(t, db.Create(&f.description).Error)

	return f
}

func (f *deadlineFixture) newResponse() *models.ResponseOccurrence {
	return &models.ResponseOccurrence{
		OccurrenceID:               f.occurrence.ID,
		OccurrenceDescriptionID:    f.description.ID,
		MetaID:                     f.meta.ID,
		Description:                "Tratativa registrada",
		IncidentClassificationID:   f.incClass.ID,
		OccurrenceClassificationID: f.occClass.ID,
		DamageClassificationID:     f.dmgClass.ID,
		OwnerID:                    f.user.ID,
	}
}

func TestStampDeadline(t *testing.T) {
	db := setupDeadlineTestDB()
	f := newDeadlineFixture(t, db, "Incidente sem dano", "Dano Leve")

	response := f.newResponse()
	assert.NoError(t, StampDeadline(db, response))
	assert.NotNil(t, response.DeadlineResponse)

	// 10 + 7 days ahead, truncated to midnight
	expected := time.Now().AddDate(0, 0, 17)
	assert.Equal(t, expected.Year(), response.DeadlineResponse.Year())
	assert.Equal(t, expected.YearDay(), response.DeadlineResponse.YearDay())
	assert.Equal(t, 0, response.DeadlineResponse.Hour())
	assert.Equal(t, 0, response.DeadlineResponse.Minute())
}

func TestStampDeadlineUnknownLabels(t *testing.T) {
	db := setupDeadlineTestDB()
	f := newDeadlineFixture(t, db, "Classificação inexistente", "Dano desconhecido")

	response := f.newResponse()
	assert.NoError(t, StampDeadline(db, response))

	// Zero days means no deadline at all
	assert.Nil(t, response.DeadlineResponse)
}

func TestStampDeadlineOnlyOnce(t *testing.T) {
	db := setupDeadlineTestDB()
	f := newDeadlineFixture(t, db, "Improcedente", "Nenhum")

	response := f.newResponse()
	assert.NoError(t, StampDeadline(db, response))
	assert.NotNil(t, response.DeadlineResponse)
	first := *response.DeadlineResponse

	// Reclassify to a much more severe pair and stamp again
	severe := models.OccurrenceClassification{Classification: "Não conformidade"}
	death := models.DamageClassification{Classification: "Dano Óbito"}
	assert.NoError(t, db.Create(&severe).Error)
	assert.NoError(t, db.Create(&death).Error)
	response.OccurrenceClassificationID = severe.ID
	response.DamageClassificationID = death.ID

	assert.NoError(t, StampDeadline(db, response))
	assert.Equal(t, first, *response.DeadlineResponse)
}
