package main

import (
	"flag"
	"fmt"
	"incident_flow_app_go/config"
	"incident_flow_app_go/db"
	"incident_flow_app_go/models"
	"incident_flow_app_go/services"
	"log"
)

func main() {
	// Load configuration
	cfg := config.Load()

	adminEmail := flag.String("admin", cfg.AdminEmail, "email of the user who will own the seeded records")
	flag.Parse()

	if *adminEmail == "" {
		log.Fatal("Admin email is required. Pass -admin or set ADMIN_EMAIL.")
	}

	// Initialize database
	if err := db.Initialize(cfg.DBPath, cfg.Environment); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.AutoMigrate(
		&models.User{},
		&models.Department{},
		&models.Gender{},
		&models.Race{},
		&models.Meta{},
		&models.OccurrenceDescription{},
		&models.IncidentClassification{},
		&models.OccurrenceClassification{},
		&models.DamageClassification{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	fmt.Println("=== Seeding base data ===")

	if err := services.SeedDepartments(db.DB, *adminEmail); err != nil {
		log.Fatalf("Failed to seed departments: %v", err)
	}
	fmt.Println("✓ Departments seeded")

	if err := services.SeedOccurrenceDescriptions(db.DB, *adminEmail); err != nil {
		log.Fatalf("Failed to seed occurrence descriptions: %v", err)
	}
	fmt.Println("✓ Occurrence descriptions seeded")

	if err := services.SeedClassifications(db.DB); err != nil {
		log.Fatalf("Failed to seed classifications: %v", err)
	}
	fmt.Println("✓ Classifications seeded")

	fmt.Println()
	fmt.Printf("Seed complete. Records owned by %s.\n", *adminEmail)
}
