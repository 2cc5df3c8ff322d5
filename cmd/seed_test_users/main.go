package main

import (
	"context"
	"errors"

	"github.com/pageza/designhub/backend/config"
	"github.com/pageza/designhub/backend/internal/database"
	"github.com/pageza/designhub/backend/internal/logger"
	"github.com/pageza/designhub/backend/internal/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// testPassword is shared by every seeded account
const testPassword = "designhub-demo"

type designer struct {
	name     string
	email    string
	role     string
	location string
	website  string
	bio      string
}

var designers = []designer{
	{"Sarah Johnson", "sarah.johnson@example.com", "Graphic Designer", "Portland, OR", "https://sarahjohnson.design", "Brand identities for independent coffee shops and bakeries."},
	{"Michael Chen", "michael.chen@example.com", "UI/UX Designer", "San Francisco, CA", "https://michaelchen.io", "Mobile-first product design for fintech."},
	{"Emma Rodriguez", "emma.rodriguez@example.com", "Graphic Designer", "Austin, TX", "", "Icon sets and illustration systems."},
	{"David Park", "david.park@example.com", "UI/UX Designer", "Remote", "https://davidpark.studio", ""},
	{"Lisa Anderson", "lisa.anderson@example.com", "Graphic Designer", "", "", "Dashboards and data visualisation."},
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func main() {
	log := logger.NewZapLogger(config.GetEnvironment().String())

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load configuration", err)
	}

	db, err := database.New(cfg, log)
	if err != nil {
		log.Fatal("Failed to connect to database", err)
	}
	if err := database.RunMigrations(db, cfg.MigrationsDir, log); err != nil {
		log.Fatal("Failed to run migrations", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash password", err)
	}

	ctx := context.Background()
	store := database.NewUserStore(db)
	created := 0

	for _, d := range designers {
		if _, err := store.FindByEmail(ctx, d.email); err == nil {
			log.Info("User already exists, skipping", zap.String("email", d.email))
			continue
		} else if !errors.Is(err, models.ErrUserNotFound) {
			log.Fatal("Failed to look up user", err, zap.String("email", d.email))
		}

		user := &models.User{
			Name:         d.name,
			Email:        d.email,
			PasswordHash: string(hashedPassword),
			Role:         optional(d.role),
			Location:     optional(d.location),
			Website:      optional(d.website),
			Bio:          optional(d.bio),
		}
		if err := store.Create(ctx, user); err != nil {
			log.Error("Failed to create user", err, zap.String("email", d.email))
			continue
		}

		log.Info("Created designer", zap.String("name", d.name), zap.String("email", d.email), zap.String("id", user.ID.String()))
		created++
	}

	log.Info("Test users ready",
		zap.Int("created", created),
		zap.Int("total", len(designers)),
		zap.String("password", testPassword),
	)
}
