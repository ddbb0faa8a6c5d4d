package main

import (
	"academia/config"
	"academia/database"
	"academia/models"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
)

// Seeds the bootstrap administrator account. Run once after the first
// deployment:
//
//	go run ./scripts ADMIN_PASSWORD
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: seedAdmin <password>")
	}

	config.LoadConfig()
	database.ConnectDb()

	email := config.AppConfig.AdminBootstrapEmail
	if email == "" {
		log.Fatal("ADMIN_BOOTSTRAP_EMAIL must be set")
	}

	db := database.Database.Db

	var existing models.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		log.Printf("Admin %s already exists (id %d)", email, existing.ID)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(os.Args[1]), config.AppConfig.SaltRound)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	admin := models.User{
		Name:     "Administrator",
		Email:    email,
		Password: string(hashed),
		Role:     "ADMIN",
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}

	log.Printf("Admin %s created (id %d)", email, admin.ID)
}
