package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"driftwood/internal/availability"
	"driftwood/internal/guests"
	"driftwood/internal/pricing"
	"driftwood/internal/shared/config"
	"driftwood/internal/shared/database"
	"driftwood/internal/shared/dates"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting Driftwood Database Seeder...")

	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in dependency order
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"day_statuses",
		"reservations",
		"seasonal_rates",
		"guests",
	}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit().Error
}

// SeedAll seeds guests, seasonal rates and maintenance blocks
func (s *Seeder) SeedAll() error {
	ctx := context.Background()

	if err := s.SeedGuests(); err != nil {
		return fmt.Errorf("failed to seed guests: %w", err)
	}

	if err := s.SeedSeasonalRates(); err != nil {
		return fmt.Errorf("failed to seed seasonal rates: %w", err)
	}

	if err := s.SeedMaintenanceBlocks(ctx); err != nil {
		return fmt.Errorf("failed to seed maintenance blocks: %w", err)
	}

	return nil
}

// SeedGuests creates a demo guest and a staff account
func (s *Seeder) SeedGuests() error {
	password, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	seedGuests := []guests.Guest{
		{
			FirstName: "Demo",
			LastName:  "Guest",
			Email:     "guest@driftwood.test",
			Phone:     "+1-555-0100",
			Password:  string(password),
			Role:      guests.RoleGuest,
		},
		{
			FirstName: "Morgan",
			LastName:  "Keeper",
			Email:     "staff@driftwood.test",
			Password:  string(password),
			Role:      guests.RoleStaff,
		},
	}

	for i := range seedGuests {
		if err := s.db.PostgreSQL.Create(&seedGuests[i]).Error; err != nil {
			return err
		}
		fmt.Printf("  Created %s account: %s\n", seedGuests[i].Role, seedGuests[i].Email)
	}

	return nil
}

// SeedSeasonalRates creates the low/high season pricing for the next year.
// Amounts are minor currency units (cents).
func (s *Seeder) SeedSeasonalRates() error {
	year := time.Now().Year()

	rates := []pricing.SeasonalRate{
		{
			Name:          "Low Season",
			StartDate:     dates.New(year, time.January, 1).Time(),
			EndDate:       dates.New(year, time.May, 31).Time(),
			NightlyRate:   15000, // $150.00/night
			CleaningFee:   8000,  // $80.00
			MinimumNights: 2,
			IsActive:      true,
		},
		{
			Name:          "High Season",
			StartDate:     dates.New(year, time.June, 1).Time(),
			EndDate:       dates.New(year, time.September, 30).Time(),
			NightlyRate:   25000, // $250.00/night
			CleaningFee:   12500, // $125.00
			MinimumNights: 3,
			IsActive:      true,
		},
		{
			Name:          "Shoulder Season",
			StartDate:     dates.New(year, time.October, 1).Time(),
			EndDate:       dates.New(year, time.December, 31).Time(),
			NightlyRate:   18000, // $180.00/night
			CleaningFee:   9000,  // $90.00
			MinimumNights: 2,
			IsActive:      true,
		},
	}

	for i := range rates {
		if err := s.db.PostgreSQL.Create(&rates[i]).Error; err != nil {
			return err
		}
		fmt.Printf("  Created seasonal rate: %s (%d/night)\n", rates[i].Name, rates[i].NightlyRate)
	}

	return nil
}

// SeedMaintenanceBlocks blocks a short window for annual deep cleaning
func (s *Seeder) SeedMaintenanceBlocks(ctx context.Context) error {
	repo := availability.NewRepository(s.db.PostgreSQL)

	start := dates.New(time.Now().Year(), time.November, 3)
	end := start.AddDays(4)

	if err := repo.BlockRange(ctx, start, end); err != nil {
		return err
	}
	fmt.Printf("  Blocked maintenance window: %s to %s\n", start, end)

	return nil
}
