package services

import (
	"fmt"
	"incident_flow_app_go/models"
	"log"

	"gorm.io/gorm"
)

// seedDepartments are the four fixed organizational units
var seedDepartments = []struct {
	Name        string
	Description string
}{
	{"Administração", "Departamento Administrativo"},
	{"Financeiro", "Departamento Financeiro"},
	{"Recursos Humanos", "Departamento de RH"},
	{"TI", "Departamento de Tecnologia da Informação"},
}

// seedOccurrenceClassifications are the severity labels the deadline rules key on
var seedOccurrenceClassifications = []string{
	"Improcedente",
	"Não conformidade",
	"Circustância de Risco",
	"Quebra de contratualização",
	"Desvio da Qualidade",
	"Incidente sem dano",
}

// seedDamageClassifications are the harm labels the deadline rules key on
var seedDamageClassifications = []string{
	"Nenhum",
	"Dano Leve",
	"Dano Moderado",
	"Dano Grave",
	"Dano Óbito",
}

var seedIncidentClassifications = []string{
	"Evento Adverso",
	"Near Miss",
	"Incidente sem dano",
	"Circunstância de Risco",
}

// seedOccurrenceDescriptions is the fixed catalog of what an occurrence may
// describe, including the six international patient-safety goals
var seedOccurrenceDescriptions = []string{
	"Não se Aplica",
	"Meta 1 - Identificação: Paciente - dispositivo - medicamento - nutrição - Prontuário",
	"Meta 2 - Falha na comunicação entre os profissionais",
	"Meta 3 - Farmacovigilância - Erro de Medicação",
	"Meta 4 - Falha na cirurgia - erro - cancelamento - reoperação 48h - óbito 7 dias, Não Sinalização de lateralidade",
	"Meta 5 - Falha na higienização das mãos",
	"Meta 6 - LPP - Lesão por pressão - ou por lesão por dispositivo médico",
	"Falha na assistência",
	"Tecnovigilância - Queixa técnica",
	"Falha do transporte",
	"Atraso no atendimento",
	"Falha no uso de EPI",
	"Falha na Prescrição",
	"Queda do paciente - meta 6",
	"Procedimento inadequado (Ajuste de Rotina)",
	"Prontuário Incompleto - falta de: protocolo - evolução - transferência - termo - sem registro de volume infundido",
	"Falha na dispensação",
	"Hemovigilância - Reação transfusional - Ficha incompleta",
	"Perda de dispositivo - SNG",
	"Dieta com alterações de deterioração, Defeito no conector",
	"Flebite",
	"Falha na dupla checagem do material",
	"Glosa pelo convênio",
	"Readmissões em até 48h após a alta na emergência/ Internação até 48h na UTI",
	"Extravasamento de contraste",
	"Evasão",
	"Óbito inesperado",
	"Saneantes",
	"IRAS - Infecção relacionada à assistência à saúde",
	"Desnutrição",
	"Diarreia",
	"Ergonomia",
	"Alta indevida",
	"Comportamental",
	"Paciente sem acompanhante",
	"Produto para ser substituído",
	"Quebra de acordo entre as partes (não conformidade)",
	"Reintubação 24h",
	"Médico sem cadastro no hospital - médico sem cadastro no sistema Medview",
	"Broncoaspiração",
	"PAV - Pneumonia associada à ventilação mecânica",
	"Perda de dispositivo - SNE",
	"Perda de dispositivo - TOT",
	"Perda de dispositivo - SVD",
	"Perda de dispositivo - AVP",
	"Perda de dispositivo - AVC",
	"Perda de dispositivo - PICC/PAI",
	"Perda de dispositivo - CTL",
	"Reoperação 48h",
	"Óbito 7 dias",
	"Reação alérgica ao fármaco",
	"Erro de infusão",
	"Cancelamento de cirurgia",
	"Paciente admitida no hospital com lesões por pressão",
	"Registro de volume infundido da dieta enteral incompleto",
	"Protocolo de dor torácica",
	"Falha na Higienização",
	"Prescrição manual",
	"Aprazamento",
	"Perda de dispositivo - GTT",
	"Óbito Gatilho",
	"Protocolo de TEV - RISCO DE TEV E USO DA PROFILAXIA EM PACIENTES CLÍNICOS INTERNADOS",
	"Protocolo de Sepse",
	"Tempo de administração de antibioticoprofilaxia cirúrgica",
	"Falha no tratamento de DOR",
	"ITU",
	"Administração de dieta enteral inadequada (Vencida, volume menor/maior do que o prescrito)",
	"Organizacional",
	"Cardápio",
	"Ausência ou falha de preenchimento do Termo para procedimento cirúrgico/Anestésico/hemocomponentes",
	"Infecção FO pelo Dispositivo médico",
	"Farmacovilância - Queixa técnica",
	"Fratura após assistência",
	"Desvio de qualidade",
	"Circunstância de Risco",
	"Falha na Comunicação",
	"Atraso na entrega do medicamento prescrito",
	"Transporte e transferência não preenchido/Transporte seguro",
	"Suspensão de Cirurgia",
	"Prontuário Eletrônico",
	"Atraso na entrega de dieta",
	"Problemas com Equipamento- Ar condicionado, termômetro",
	"Suporte de TI",
	"Retorno < 48h",
	"Jejum Prolongado",
	"Descarte inadequado de perfurocortantes",
	"Extravasamento/infiltração de medicação endovenosa",
	"Acidente de trabalho",
	"DO - Declaração de Óbito",
	"Material CME",
}

// findAdmin resolves the seeding administrator by email. Seeding runs
// against a known-good baseline; a missing administrator is fatal to the
// caller, not silently skipped.
func findAdmin(db *gorm.DB, adminEmail string) (*models.User, error) {
	if adminEmail == "" {
		return nil, fmt.Errorf("admin email is required for seeding")
	}
	var admin models.User
	if err := db.Where("email = ?", adminEmail).First(&admin).Error; err != nil {
		return nil, fmt.Errorf("admin user %q not found: %w", adminEmail, err)
	}
	return &admin, nil
}

// SeedDepartments creates the four fixed departments if they do not exist
// and associates the administrator with all of them. Idempotent.
func SeedDepartments(db *gorm.DB, adminEmail string) error {
	admin, err := findAdmin(db, adminEmail)
	if err != nil {
		return err
	}

	for _, dept := range seedDepartments {
		var existing models.Department
		err := db.Where("name = ?", dept.Name).First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return fmt.Errorf("failed to look up department %q: %w", dept.Name, err)
		}

		description := dept.Description
		department := models.Department{
			Name:        dept.Name,
			Description: &description,
			OwnerID:     admin.ID,
		}
		if err := db.Create(&department).Error; err != nil {
			return fmt.Errorf("failed to create department %q: %w", dept.Name, err)
		}
		log.Printf("[SEED] Department %q created", dept.Name)
	}

	var all []models.Department
	if err := db.Find(&all).Error; err != nil {
		return fmt.Errorf("failed to load departments: %w", err)
	}
	if err := db.Model(admin).Association("Departments").Replace(all); err != nil {
		return fmt.Errorf("failed to associate admin with departments: %w", err)
	}

	log.Printf("[SEED] Departments associated with %s", admin.Email)
	return nil
}

// SeedOccurrenceDescriptions populates the fixed occurrence-description
// catalog, owned by the administrator. Idempotent.
func SeedOccurrenceDescriptions(db *gorm.DB, adminEmail string) error {
	admin, err := findAdmin(db, adminEmail)
	if err != nil {
		return err
	}

	created := 0
	for _, name := range seedOccurrenceDescriptions {
		var existing models.OccurrenceDescription
		err := db.Where("name = ?", name).First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return fmt.Errorf("failed to look up occurrence description: %w", err)
		}

		description := models.OccurrenceDescription{Name: name, OwnerID: admin.ID}
		if err := db.Create(&description).Error; err != nil {
			return fmt.Errorf("failed to create occurrence description %q: %w", name, err)
		}
		created++
	}

	log.Printf("[SEED] Occurrence descriptions populated (%d created)", created)
	return nil
}

// SeedClassifications populates the three classification registries with the
// labels the deadline rules recognize. Idempotent.
func SeedClassifications(db *gorm.DB) error {
	for _, label := range seedOccurrenceClassifications {
		var existing models.OccurrenceClassification
		if err := db.Where("classification = ?", label).First(&existing).Error; err == gorm.ErrRecordNotFound {
			if err := db.Create(&models.OccurrenceClassification{Classification: label}).Error; err != nil {
				return fmt.Errorf("failed to create occurrence classification %q: %w", label, err)
			}
		} else if err != nil {
			return fmt.Errorf("failed to look up occurrence classification: %w", err)
		}
	}

	for _, label := range seedDamageClassifications {
		var existing models.DamageClassification
		if err := db.Where("classification = ?", label).First(&existing).Error; err == gorm.ErrRecordNotFound {
			if err := db.Create(&models.DamageClassification{Classification: label}).Error; err != nil {
				return fmt.Errorf("failed to create damage classification %q: %w", label, err)
			}
		} else if err != nil {
			return fmt.Errorf("failed to look up damage classification: %w", err)
		}
	}

	for _, label := range seedIncidentClassifications {
		var existing models.IncidentClassification
		if err := db.Where("classification = ?", label).First(&existing).Error; err == gorm.ErrRecordNotFound {
			if err := db.Create(&models.IncidentClassification{Classification: label}).Error; err != nil {
				return fmt.Errorf("failed to create incident classification %q: %w", label, err)
			}
		} else if err != nil {
			return fmt.Errorf("failed to look up incident classification: %w", err)
		}
	}

	log.Println("[SEED] Classifications populated")
	return nil
}
