package main

import (
	"context"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"taskhub/internal/config"
	"taskhub/internal/db"
	"taskhub/internal/model"
	"taskhub/internal/repository"
)

const (
	demoEmail    = "demo@taskhub.local"
	demoPassword = "demo-password"
)

// seedTask describes one sample task relative to now.
type seedTask struct {
	Title       string
	Description string
	Category    string
	Completed   bool
	DueInDays   int
}

var sampleTasks = []seedTask{
	{Title: "Grocery run", Description: "Milk, eggs, coffee beans", Category: "errands", DueInDays: 1},
	{Title: "Quarterly report", Description: "Draft the Q3 summary for review", Category: "work", DueInDays: 5},
	{Title: "Renew gym membership", Description: "Annual plan expires this month", Category: "health", DueInDays: 10},
	{Title: "Book dentist appointment", Description: "Checkup overdue since spring", Category: "health", Completed: true, DueInDays: -3},
	{Title: "Plan weekend trip", Description: "Compare train and car options", Category: "leisure", DueInDays: 14},
}

func main() {
	log.Println("Starting seed script...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Task{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)

	user, created, err := ensureDemoUser(ctx, userRepo)
	if err != nil {
		log.Fatalf("Failed to seed demo user: %v", err)
	}
	if created {
		log.Printf("Created demo user %s (password: %s)", demoEmail, demoPassword)
	} else {
		log.Printf("Demo user %s already present", demoEmail)
	}

	seeded, skipped, err := seedTasks(ctx, taskRepo, user)
	if err != nil {
		log.Fatalf("Failed to seed tasks: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - New tasks created: %d", seeded)
	log.Printf("  - Tasks already present: %d", skipped)
}

// ensureDemoUser creates the demo account unless it already exists.
func ensureDemoUser(ctx context.Context, repo repository.UserRepository) (*model.User, bool, error) {
	existing, err := repo.FindByEmail(ctx, demoEmail)
	if err == nil {
		return existing, false, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, false, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, false, err
	}

	user := &model.User{
		Name:         "Demo User",
		Email:        demoEmail,
		PasswordHash: string(hash),
	}
	if err := repo.Create(ctx, user); err != nil {
		return nil, false, err
	}
	return user, true, nil
}

// seedTasks inserts the sample tasks, skipping titles the demo user already has.
func seedTasks(ctx context.Context, repo repository.TaskRepository, user *model.User) (seeded, skipped int, err error) {
	existing, err := repo.ListByOwner(ctx, user.ID)
	if err != nil {
		return 0, 0, err
	}
	present := make(map[string]bool, len(existing))
	for _, t := range existing {
		present[t.Title] = true
	}

	now := time.Now()
	for _, s := range sampleTasks {
		if present[s.Title] {
			skipped++
			continue
		}
		task := &model.Task{
			OwnerID:     user.ID,
			Title:       s.Title,
			Description: s.Description,
			Category:    s.Category,
			Completed:   s.Completed,
			DueDate:     now.AddDate(0, 0, s.DueInDays),
		}
		if err := repo.Create(ctx, task); err != nil {
			return seeded, skipped, err
		}
		seeded++
	}

	return seeded, skipped, nil
}
