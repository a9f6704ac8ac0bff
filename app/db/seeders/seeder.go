package seeders

import (
	"context"
	"log"

	"github.com/rakhshan/go-storefront/app/models"
	"github.com/rakhshan/go-storefront/app/repositories"
	"gorm.io/gorm"
)

const (
	AdminUsername = "admin"
	AdminPassword = "admin123"
)

var defaultCategories = []string{
	"Vehicles",
	"Clothing",
	"Food",
	"Home Appliances",
	"Electronics",
	"Digital",
}

// DBSeed guarantees the default categories and the fixed admin account exist.
// It is idempotent and safe to run on every startup.
func DBSeed(db *gorm.DB) error {
	ctx := context.Background()
	categoryRepo := repositories.NewCategoryRepository(db)
	userRepo := repositories.NewUserRepository(db)

	for _, name := range defaultCategories {
		existing, err := categoryRepo.FindByName(ctx, name)
		if err != nil {
			return err
		}
		if existing == nil {
			if err := categoryRepo.Create(ctx, &models.Category{Name: name}); err != nil {
				return err
			}
		}
	}

	adminUser, err := userRepo.FindByUsername(ctx, AdminUsername)
	if err != nil {
		return err
	}
	if adminUser == nil {
		admin := &models.User{
			Username: AdminUsername,
			Password: AdminPassword,
			Role:     models.RoleAdmin,
		}
		if err := userRepo.Create(ctx, admin); err != nil {
			return err
		}
		log.Printf("Seeder: created fixed admin account %q", AdminUsername)
	}

	return nil
}
