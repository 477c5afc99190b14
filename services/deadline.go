package services

import (
	"fmt"
	"incident_flow_app_go/models"
	"time"

	"gorm.io/gorm"
)

// CalculateDeadline returns the number of calendar days a sector has to
// answer an occurrence, derived from the occurrence and damage
// classification labels. Contributions are additive. Labels are matched by
// exact value; anything outside the rule table contributes zero days.
func CalculateDeadline(occurrenceLabel, damageLabel string) int {
	days := 0

	// Classificação da ocorrência
	switch occurrenceLabel {
	case "Improcedente":
		days += 1
	case "Não conformidade", "Circustância de Risco",
		"Quebra de contratualização", "Desvio da Qualidade":
		days += 15
	case "Incidente sem dano":
		days += 10
	}

	// Classificação do dano
	switch damageLabel {
	case "Nenhum":
		days += 15
	case "Dano Leve":
		days += 7
	case "Dano Moderado":
		days += 5
	case "Dano Grave":
		days += 3
	case "Dano Óbito":
		days += 15
	}

	return days
}

// StampDeadline sets the response deadline if it has not been set yet.
// The deadline is computed once, at first save; later classification changes
// never move an already-stamped deadline.
func StampDeadline(db *gorm.DB, response *models.ResponseOccurrence) error {
	if response.DeadlineResponse != nil {
		return nil
	}

	var occ models.OccurrenceClassification
	if err := db.First(&occ, "id = ?", response.OccurrenceClassificationID).Error; err != nil {
		return fmt.Errorf("failed to load occurrence classification: %w", err)
	}

	var dmg models.DamageClassification
	if err := db.First(&dmg, "id = ?", response.DamageClassificationID).Error; err != nil {
		return fmt.Errorf("failed to load damage classification: %w", err)
	}

	days := CalculateDeadline(occ.Classification, dmg.Classification)
	if days > 0 {
		deadline := time.Now().AddDate(0, 0, days)
		deadline = time.Date(deadline.Year(), deadline.Month(), deadline.Day(), 0, 0, 0, 0, deadline.Location())
		response.DeadlineResponse = &deadline
	}

	return nil
}
