package cmd

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/hrkit/hr-management/internal/department"
	"github.com/hrkit/hr-management/internal/position"
	"github.com/hrkit/hr-management/internal/user"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		gormDB, err := initGorm(db)
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			for _, table := range []string{"attendances", "camps", "users", "positions", "departments"} {
				if err := gormDB.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), cfg.Security.BCryptCost)
		if err != nil {
			log.Fatalf("failed to hash seed password: %v", err)
		}

		adminEmail := "admin@hrkit.dev"
		var count int64
		if err := gormDB.Model(&user.User{}).Where("email = ?", adminEmail).Count(&count).Error; err != nil {
			log.Fatalf("failed to check admin user: %v", err)
		}
		if count == 0 {
			admin := &user.User{
				ID:       uuid.NewString(),
				Name:     "Administrator",
				Email:    adminEmail,
				Password: string(hash),
				Role:     user.RoleAdmin,
				Status:   user.StatusActive,
			}
			if err := gormDB.Create(admin).Error; err != nil {
				log.Fatalf("failed to insert admin user: %v", err)
			}
			fmt.Println("Seeded admin user:", adminEmail)
		} else {
			fmt.Println("Admin user already exists:", adminEmail)
		}

		deptID := seedDepartment(gormDB, "Operations", "Field operations and site management")
		posID := seedPosition(gormDB, "Site Worker", deptID)

		employeeEmail := "worker@hrkit.dev"
		if err := gormDB.Model(&user.User{}).Where("email = ?", employeeEmail).Count(&count).Error; err != nil {
			log.Fatalf("failed to check employee user: %v", err)
		}
		if count == 0 {
			employee := &user.User{
				ID:         uuid.NewString(),
				Name:       "Sample Worker",
				Email:      employeeEmail,
				Password:   string(hash),
				Role:       user.RoleEmployee,
				PositionID: &posID,
				Status:     user.StatusActive,
			}
			if err := gormDB.Create(employee).Error; err != nil {
				log.Fatalf("failed to insert employee user: %v", err)
			}
			fmt.Println("Seeded employee user:", employeeEmail)
		}

		fmt.Println("Seeding completed")
	},
}

func seedDepartment(db *gorm.DB, name, description string) string {
	var existing department.Department
	err := db.Where("name = ?", name).First(&existing).Error
	if err == nil {
		return existing.ID
	}

	dept := &department.Department{
		ID:          uuid.NewString(),
		Name:        name,
		Description: &description,
		Status:      department.StatusActive,
	}
	if err := db.Create(dept).Error; err != nil {
		log.Fatalf("failed to insert department %s: %v", name, err)
	}
	fmt.Println("Seeded department:", name)
	return dept.ID
}

func seedPosition(db *gorm.DB, name, departmentID string) string {
	var existing position.Position
	err := db.Where("name = ? AND id_department = ?", name, departmentID).First(&existing).Error
	if err == nil {
		return existing.ID
	}

	pos := &position.Position{
		ID:           uuid.NewString(),
		Name:         name,
		DepartmentID: departmentID,
		Status:       position.StatusActive,
	}
	if err := db.Create(pos).Error; err != nil {
		log.Fatalf("failed to insert position %s: %v", name, err)
	}
	fmt.Println("Seeded position:", name)
	return pos.ID
}
