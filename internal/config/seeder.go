package config

import (
	"errors"
	"log"

	"assettrack/internal/adapters/persistence/models"
	"assettrack/internal/core/domain"
	"assettrack/internal/pkg/password"

	"gorm.io/gorm"
)

// SeedData seeds the super admin account and initial master data.
// All steps are idempotent; existing rows are left untouched.
func SeedData(db *gorm.DB, cfg *Config) error {
	if err := seedSuperAdmin(db, cfg); err != nil {
		return err
	}
	if err := seedBranches(db); err != nil {
		return err
	}
	if err := seedCategories(db); err != nil {
		return err
	}

	log.Println("Seed data applied")
	return nil
}

// seedSuperAdmin creates the SUPER_ADMIN account. It cannot be created
// through the API, so it has to exist before first login.
func seedSuperAdmin(db *gorm.DB, cfg *Config) error {
	var existing models.User
	err := db.Where("role = ?", string(domain.RoleSuperAdmin)).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if cfg.Seed.SuperAdminPassword == "" {
		log.Println("Warning: SEED_SUPER_ADMIN_PASSWORD not set, skipping super admin seed")
		return nil
	}

	hash, err := password.Hash(cfg.Seed.SuperAdminPassword)
	if err != nil {
		return err
	}

	admin := models.User{
		Username:     cfg.Seed.SuperAdminUsername,
		PasswordHash: hash,
		Role:         string(domain.RoleSuperAdmin),
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Printf("   Created super admin: %s", admin.Username)
	return nil
}

func seedBranches(db *gorm.DB) error {
	branches := []models.Branch{
		{Name: "Head Office"},
	}

	for _, b := range branches {
		var existing models.Branch
		if err := db.Where("name = ?", b.Name).First(&existing).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				if err := db.Create(&b).Error; err != nil {
					return err
				}
				log.Printf("   Created branch: %s", b.Name)
			}
		}
	}
	return nil
}

func seedCategories(db *gorm.DB) error {
	categories := []models.Category{
		{Name: "Laptop", Description: "Portable computers"},
		{Name: "Monitor", Description: "Displays and screens"},
		{Name: "Peripheral", Description: "Keyboards, mice and other accessories"},
		{Name: "Furniture", Description: "Desks, chairs and office furniture"},
	}

	for _, c := range categories {
		var existing models.Category
		if err := db.Where("name = ?", c.Name).First(&existing).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				if err := db.Create(&c).Error; err != nil {
					return err
				}
				log.Printf("   Created category: %s", c.Name)
			}
		}
	}
	return nil
}
