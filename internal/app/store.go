package app

import (
	"fmt"

	"carrental/internal/config"
	"carrental/internal/database"
	"carrental/internal/models"
	"carrental/internal/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Store groups the repositories used by the services.
type Store struct {
	Cars    repositories.CarRepository
	Rentals repositories.RentalRepository
	Users   repositories.UserRepository

	db *gorm.DB
}

// NewGORMStore returns a Store backed by db.
func NewGORMStore(db *gorm.DB) *Store {
	return &Store{
		Cars:    repositories.NewGORMCarRepository(db),
		Rentals: repositories.NewGORMRentalRepository(db),
		Users:   repositories.NewGORMUserRepository(db),
		db:      db,
	}
}

// NewMemoryStore returns a Store backed by in-memory repositories.
func NewMemoryStore() *Store {
	return &Store{
		Cars:    repositories.NewMockCarRepository(),
		Rentals: repositories.NewMockRentalRepository(),
		Users:   repositories.NewMockUserRepository(),
	}
}

// OpenStore builds the Store selected by cfg.DBDriver.
func OpenStore(cfg *config.Config) (*Store, error) {
	if cfg.DBDriver == config.DriverMemory {
		return NewMemoryStore(), nil
	}
	db, err := database.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}
	return NewGORMStore(db), nil
}

// Close releases the database connection, if any.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	return sqlDB.Close()
}

// SeedCars inserts a small demo fleet when the store has no cars yet.
func SeedCars(repo repositories.CarRepository, log *zap.Logger) error {
	existing, err := repo.GetAll()
	if err != nil {
		return fmt.Errorf("failed to check existing cars: %w", err)
	}
	if len(existing) > 0 {
		log.Info("cars already present, skipping seed", zap.Int("count", len(existing)))
		return nil
	}

	cars := []models.Car{
		{Name: "Suzuki Ertiga", Price: 300000, Size: models.CarSizeMedium, Image: "https://example.com/cars/ertiga.jpg"},
		{Name: "Toyota Agya", Price: 250000, Size: models.CarSizeSmall, Image: "https://example.com/cars/agya.jpg"},
		{Name: "Toyota Innova", Price: 450000, Size: models.CarSizeLarge, Image: "https://example.com/cars/innova.jpg"},
		{Name: "Honda Brio", Price: 275000, Size: models.CarSizeSmall, Image: "https://example.com/cars/brio.jpg"},
		{Name: "Mitsubishi Xpander", Price: 400000, Size: models.CarSizeLarge, Image: "https://example.com/cars/xpander.jpg"},
	}
	for i := range cars {
		if err := repo.Create(&cars[i]); err != nil {
			return fmt.Errorf("failed to seed car %s: %w", cars[i].Name, err)
		}
		log.Info("seeded car", zap.String("name", cars[i].Name), zap.Int64("id", cars[i].ID))
	}
	return nil
}
