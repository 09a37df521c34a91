package config

import (
	"log"

	"syndiceasy/internal/adapters/persistence/models"
	"syndiceasy/internal/core/domain"
	"syndiceasy/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedAdminUser(); err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}
	if err := s.seedDemoResidence(); err != nil {
		log.Printf("⚠️ Demo residence seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedAdminUser seeds default admin user
// This is for development/testing only
// In production, create admin through secure process
func (s *Seeder) seedAdminUser() error {
	var count int64
	s.db.Model(&models.User{}).Where("role = ?", string(domain.RoleAdmin)).Count(&count)
	if count > 0 {
		return nil // Admin already exists
	}

	hashedPassword, err := password.Hash("admin123456")
	if err != nil {
		return err
	}

	admin := &models.User{
		Username: "admin",
		Email:    "admin@syndiceasy.ma",
		Password: hashedPassword,
		Role:     string(domain.RoleAdmin),
		IsActive: true,
	}
	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Admin user created: %s", admin.Username)
	return nil
}

// seedDemoResidence seeds one building with a syndic, a resident and a
// caisse so a fresh dev database is immediately usable.
func (s *Seeder) seedDemoResidence() error {
	var count int64
	s.db.Model(&models.Building{}).Count(&count)
	if count > 0 {
		return nil // Residence data already present
	}

	hashedPassword, err := password.Hash("demo123456")
	if err != nil {
		return err
	}

	syndic := &models.User{
		Username: "syndic.demo",
		Email:    "syndic@syndiceasy.ma",
		Password: hashedPassword,
		Role:     string(domain.RoleSyndic),
		Gender:   "M",
		IsActive: true,
	}
	if err := s.db.Create(syndic).Error; err != nil {
		return err
	}

	resident := &models.User{
		Username: "resident.demo",
		Email:    "resident@syndiceasy.ma",
		Password: hashedPassword,
		Role:     string(domain.RoleResident),
		Gender:   "F",
		IsActive: true,
	}
	if err := s.db.Create(resident).Error; err != nil {
		return err
	}

	building := &models.Building{
		Name:     "Résidence Al Amal",
		Address:  "12 Avenue Hassan II, Casablanca",
		SyndicID: &syndic.ID,
	}
	if err := s.db.Create(building).Error; err != nil {
		return err
	}

	apartment := &models.Apartment{
		Number:     "A-101",
		Floor:      1,
		BuildingID: building.ID,
		ResidentID: &resident.ID,
	}
	if err := s.db.Create(apartment).Error; err != nil {
		return err
	}

	caisse := &models.Caisse{
		Name:       "Caisse principale",
		BuildingID: building.ID,
		Balance:    0,
	}
	if err := s.db.Create(caisse).Error; err != nil {
		return err
	}

	log.Printf("✅ Demo residence seeded: %s", building.Name)
	return nil
}
