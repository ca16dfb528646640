package db

import (
	"fmt"
	"os"

	"github.com/jobdesk-dev/jobdesk/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDatabase(dsn string) error {
	var err error

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})

	if err != nil {
		return err
	}

	return nil
}

func MigrateDatabase() error {
	models := []interface{}{
		&models.Role{},
		&models.Company{},
		&models.User{},
		&models.Advertisement{},
		&models.Application{},
	}

	migrator := DB.Migrator()

	for _, model := range models {
		if !migrator.HasTable(model) {
			if err := DB.AutoMigrate(model); err != nil {
				return err
			}
		}
	}

	return nil
}

// SeedDatabase inserts the reference rows the application assumes: the
// two roles, the two companies, and one employer account per company.
// Each block is skipped when its table already has rows, so restarting
// the process is safe.
func SeedDatabase() error {
	var count int64

	if err := DB.Model(&models.Role{}).Count(&count).Error; err != nil {
		return err
	}

	if count == 0 {
		roles := []models.Role{
			{Model: gorm.Model{ID: models.RoleIDHire}, Name: models.RoleNameHire},
			{Model: gorm.Model{ID: models.RoleIDApplicant}, Name: models.RoleNameApplicant},
		}

		if err := DB.Create(&roles).Error; err != nil {
			return err
		}
	}

	if err := DB.Model(&models.Company{}).Count(&count).Error; err != nil {
		return err
	}

	if count == 0 {
		companies := []models.Company{
			{Name: "Company1"},
			{Name: "Company2"},
		}

		if err := DB.Create(&companies).Error; err != nil {
			return err
		}
	}

	if err := DB.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}

	if count == 0 {
		password := os.Getenv("SEED_EMPLOYER_PASSWORD")

		if password == "" {
			password = "admin123"
		}

		passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

		if err != nil {
			return err
		}

		var companies []models.Company

		if err := DB.Order("id").Find(&companies).Error; err != nil {
			return err
		}

		roleID := models.RoleIDHire

		for i, company := range companies {
			employer := models.User{
				Name:         company.Name + " Admin",
				Email:        fmt.Sprintf("admin%d@jobdesk.local", i+1),
				PasswordHash: string(passwordHash),
				RoleID:       &roleID,
				CompanyID:    &company.ID,
			}

			if err := DB.Create(&employer).Error; err != nil {
				return err
			}
		}
	}

	return nil
}
