package main

import (
	"context"
	"errors"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"taskdesk/internal/config"
	"taskdesk/internal/db"
	"taskdesk/internal/model"
	"taskdesk/internal/repository"
)

// Seeds the initial admin account so user management is reachable on a fresh
// database. Credentials come from ADMIN_EMAIL / ADMIN_PASSWORD.
func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Task{}, &model.Document{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	email := getEnv("ADMIN_EMAIL", "admin@taskdesk.local")
	password := getEnv("ADMIN_PASSWORD", "changeme123")

	users := repository.NewUserRepository(gormDB)
	ctx := context.Background()

	if existing, err := users.FindByEmail(ctx, email); err == nil && existing != nil {
		log.Printf("Admin %s already exists (id=%d), nothing to do", email, existing.ID)
		return
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatalf("Failed to look up admin: %v", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	admin := &model.User{
		Email:        email,
		PasswordHash: string(hashed),
		Role:         model.RoleAdmin,
	}
	if err := users.Create(ctx, admin); err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}
	log.Printf("Created admin %s (id=%d)", email, admin.ID)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
