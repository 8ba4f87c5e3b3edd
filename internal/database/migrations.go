package database

import (
	"gorm.io/gorm"

	"github.com/saandeep/portfolio-api/internal/models"
)

// AutoMigrate creates or updates the database schema for all collections.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.BlogPost{},
		&models.Comment{},
		&models.Skill{},
		&models.Achievement{},
		&models.Testimonial{},
		&models.ContactMessage{},
		&models.AnalyticsEvent{},
		&models.DailyStat{},
		&models.CacheEntry{},
	)
}

// SeedData inserts baseline content so a fresh install renders something.
// Existing rows are left untouched.
func SeedData(db *gorm.DB) error {
	skills := []models.Skill{
		{BaseModel: models.BaseModel{ID: "seed-skill-go"}, Name: "Go", Category: "backend", Level: 90, Order: 1},
		{BaseModel: models.BaseModel{ID: "seed-skill-ts"}, Name: "TypeScript", Category: "frontend", Level: 85, Order: 2},
		{BaseModel: models.BaseModel{ID: "seed-skill-sql"}, Name: "SQL", Category: "data", Level: 80, Order: 3},
	}

	for _, skill := range skills {
		if err := db.Where(models.Skill{BaseModel: models.BaseModel{ID: skill.ID}}).
			Attrs(skill).FirstOrCreate(&models.Skill{}).Error; err != nil {
			return err
		}
	}

	return nil
}
