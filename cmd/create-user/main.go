package main

import (
	"bufio"
	"fmt"
	"incident_flow_app_go/config"
	"incident_flow_app_go/db"
	"incident_flow_app_go/models"
	"incident_flow_app_go/services"
	"log"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	if err := db.Initialize(cfg.DBPath, cfg.Environment); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.AutoMigrate(&models.User{}, &models.Session{}, &models.Department{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	reader := bufio.NewReader(os.Stdin)

	// Get user details
	fmt.Println("=== Create New User ===")
	fmt.Println()

	fmt.Print("Username: ")
	username, _ := reader.ReadString('\n')
	username = strings.TrimSpace(username)

	fmt.Print("Email: ")
	email, _ := reader.ReadString('\n')
	email = strings.TrimSpace(email)

	fmt.Print("Staff user? (y/N): ")
	staffAnswer, _ := reader.ReadString('\n')
	isStaff := strings.EqualFold(strings.TrimSpace(staffAnswer), "y")

	// Get password securely
	fmt.Print("Password: ")
	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		log.Fatalf("Failed to read password: %v", err)
	}
	password := string(passwordBytes)
	fmt.Println() // New line after password input

	if password == "" {
		log.Fatal("Password is required")
	}
	if len(password) < 8 {
		log.Fatal("Password must be at least 8 characters long")
	}

	user := &models.User{
		Username: username,
		Email:    email,
		IsActive: true,
		IsStaff:  isStaff,
	}

	if err := services.ValidateNewUser(user); err != nil {
		log.Fatalf("Invalid user: %v", err)
	}

	// Check if user already exists
	var existingUser models.User
	if err := db.DB.Where("email = ?", email).First(&existingUser).Error; err == nil {
		log.Fatalf("User with email %s already exists", email)
	}

	// Hash password
	hashedPassword, err := services.HashPassword(password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}
	user.Password = hashedPassword

	if err := db.DB.Create(user).Error; err != nil {
		log.Fatalf("Failed to create user: %v", err)
	}

	fmt.Println()
	fmt.Println("✓ User created successfully!")
	fmt.Printf("  ID: %s\n", user.ID)
	fmt.Printf("  Username: %s\n", user.Username)
	fmt.Printf("  Email: %s\n", user.Email)
	fmt.Println()
	fmt.Println("The user can now log in at http://localhost:8080/login")
	fmt.Println("Assign departments with the seed command or via the API.")
}
