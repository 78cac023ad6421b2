package main

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"spendtrack/internal/config"
	"spendtrack/internal/db"
	"spendtrack/internal/model"
	"spendtrack/internal/repository"
)

const (
	demoEmail    = "demo@example.com"
	demoName     = "Demo User"
	demoPassword = "demo-password"
)

func main() {
	log.Println("Starting seed script...")

	_ = godotenv.Load()
	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Expense{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	userRepo := repository.NewUserRepository(gormDB)
	expenseRepo := repository.NewExpenseRepository(gormDB)
	ctx := context.Background()

	user, created, err := seedUser(ctx, userRepo)
	if err != nil {
		log.Fatalf("Failed to seed user: %v", err)
	}
	if created {
		log.Printf("Created demo user %s (password %q)", demoEmail, demoPassword)
	} else {
		log.Printf("Demo user %s already present", demoEmail)
	}

	seeded, err := seedExpenses(ctx, expenseRepo, user)
	if err != nil {
		log.Fatalf("Failed to seed expenses: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - New expenses created: %d", seeded)
}

// seedUser creates the demo user if absent.
func seedUser(ctx context.Context, repo repository.UserRepository) (*model.User, bool, error) {
	existing, err := repo.FindByEmail(ctx, demoEmail)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), 10)
	if err != nil {
		return nil, false, err
	}

	user := &model.User{
		Name:         demoName,
		Email:        demoEmail,
		PasswordHash: string(hash),
	}
	if err := repo.Create(ctx, user); err != nil {
		return nil, false, err
	}
	return user, true, nil
}

// seedExpenses inserts a few sample entries spanning categories and months.
// Existing entries are left alone; the seeder only tops up an empty ledger.
func seedExpenses(ctx context.Context, repo repository.ExpenseRepository, user *model.User) (int, error) {
	existing, err := repo.FindByOwner(ctx, user.ID)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}

	samples := []model.Expense{
		{Title: "Groceries", Amount: 54.30, Category: "food", Date: model.NewDate(2024, time.January, 15), Description: "weekly shop"},
		{Title: "Train ticket", Amount: 23.50, Category: "travel", Date: model.NewDate(2024, time.February, 10)},
		{Title: "Lunch", Amount: 12.00, Category: "food", Date: model.NewDate(2024, time.March, 3)},
		{Title: "Coffee beans", Amount: 9.80, Category: "food", Date: model.NewDate(2024, time.March, 21)},
		{Title: "Hotel", Amount: 140.00, Category: "travel", Date: model.NewDate(2024, time.April, 2), Description: "conference trip"},
	}

	seeded := 0
	for i := range samples {
		samples[i].UserID = user.ID
		if err := repo.Create(ctx, &samples[i]); err != nil {
			return seeded, err
		}
		seeded++
	}
	return seeded, nil
}
