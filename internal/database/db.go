package database

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB is the global database instance
var DB *gorm.DB

// Connect establishes a connection to the PostgreSQL database
func Connect(dsn string, logLevel logger.LogLevel) error {
	var err error

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("Database connection established")
	return nil
}

// AutoMigrate runs database migrations
func AutoMigrate() error {
	log.Println("Running database migrations...")

	err := DB.AutoMigrate(
		&Agent{},
		&ShiftPattern{},
		&RosterOriginal{},
		&RosterEntry{},
		&SessionRecord{},
		&ProductivityRecord{},
		&AttendanceRecord{},
		&SwapRequest{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// dictionarySeed is the on-disk format of the shift dictionary seed file.
type dictionarySeed struct {
	Patterns []struct {
		Raw        string `yaml:"raw"`
		Normalized string `yaml:"normalized"`
		ShiftType  string `yaml:"shift_type"`
	} `yaml:"patterns"`
}

// InitializeDefaults creates default records if they don't exist.
// When seedPath names a YAML file, its shift-dictionary patterns are loaded;
// patterns already present are left untouched.
func InitializeDefaults(seedPath string) error {
	if seedPath == "" {
		return nil
	}

	data, err := os.ReadFile(seedPath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("No dictionary seed file at %s, skipping", seedPath)
			return nil
		}
		return fmt.Errorf("failed to read dictionary seed: %w", err)
	}

	var seed dictionarySeed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return fmt.Errorf("failed to parse dictionary seed: %w", err)
	}

	created := 0
	for _, p := range seed.Patterns {
		if p.Raw == "" || p.Normalized == "" {
			continue
		}
		var count int64
		DB.Model(&ShiftPattern{}).Where("raw_pattern = ?", p.Raw).Count(&count)
		if count > 0 {
			continue
		}
		shiftType := p.ShiftType
		if shiftType == "" {
			shiftType = "Regular"
		}
		row := &ShiftPattern{
			RawPattern:      p.Raw,
			NormalizedShift: p.Normalized,
			ShiftType:       shiftType,
			IsActive:        true,
			CreatedBy:       "seed",
		}
		if err := DB.Create(row).Error; err != nil {
			return fmt.Errorf("failed to seed dictionary pattern %q: %w", p.Raw, err)
		}
		created++
	}
	if created > 0 {
		log.Printf("Seeded %d shift dictionary patterns from %s", created, seedPath)
	}

	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}

// Close closes the database connection
func Close() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
