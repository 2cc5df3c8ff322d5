package main

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/designhub/backend/config"
	"github.com/pageza/designhub/backend/internal/database"
	"github.com/pageza/designhub/backend/internal/logger"
	"github.com/pageza/designhub/backend/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type postSeed struct {
	authorEmail string
	age         time.Duration
	content     string
	image       string
	likes       int
	comments    int
}

var posts = []postSeed{
	{"sarah.johnson@example.com", 2 * time.Hour,
		"Just finished this branding project for a local coffee shop. Excited to share the final results! What do you think about the color palette?",
		"https://images.unsplash.com/photo-1634942537034-2531766767d1?w=800&h=600&fit=crop", 24, 7},
	{"michael.chen@example.com", 5 * time.Hour,
		"Looking for a UI designer to collaborate on a fintech app. Must have experience with mobile-first design. DM if interested!",
		"", 18, 12},
	{"emma.rodriguez@example.com", 24 * time.Hour,
		"New icon set available in the resources section! 150+ minimal line icons perfect for your next project. Free for community members.",
		"https://images.unsplash.com/photo-1558655146-d09347e92766?w=800&h=600&fit=crop", 42, 15},
}

var portfolio = []models.PortfolioItem{
	{Title: "E-commerce Dashboard", Category: "UI Design",
		Image: "https://images.unsplash.com/photo-1551288049-bebda4e38f71?w=600&h=400&fit=crop"},
	{Title: "Mobile Banking App", Category: "Mobile Design",
		Image: "https://images.unsplash.com/photo-1512941937669-90a1b58e7e9c?w=600&h=400&fit=crop"},
	{Title: "Brand Identity Design", Category: "Branding",
		Image: "https://images.unsplash.com/photo-1634942537034-2531766767d1?w=600&h=400&fit=crop"},
	{Title: "Restaurant Website", Category: "Web Design",
		Image: "https://images.unsplash.com/photo-1517248135467-4c7edcad34c4?w=600&h=400&fit=crop"},
	{Title: "Fitness App Redesign", Category: "UI/UX Design",
		Image: "https://images.unsplash.com/photo-1571019613454-1cb2f99b2d8b?w=600&h=400&fit=crop"},
}

var resources = []models.Resource{
	{Title: "Minimal Line Icons Pack", Category: "Icons", Author: "Emma Rodriguez", Downloads: 234,
		Image: "https://images.unsplash.com/photo-1558655146-d09347e92766?w=400&h=300&fit=crop",
		Description: "150+ minimal line icons perfect for modern designs", FileKey: "resources/minimal-line-icons.zip"},
	{Title: "UI Kit for Mobile Apps", Category: "UI Kits", Author: "Michael Chen", Downloads: 189,
		Image: "https://images.unsplash.com/photo-1512486130939-2c4f79935e4f?w=400&h=300&fit=crop",
		Description: "Complete mobile UI components and screens", FileKey: "resources/mobile-ui-kit.fig"},
	{Title: "Mockup Templates Bundle", Category: "Mockups", Author: "Sarah Johnson", Downloads: 456,
		Image: "https://images.unsplash.com/photo-1545235617-7a424c1a60cc?w=400&h=300&fit=crop",
		Description: "20+ device mockups for presentations", FileKey: "resources/mockup-bundle.zip"},
	{Title: "Typography System", Category: "Fonts", Author: "David Park", Downloads: 312,
		Image: "https://images.unsplash.com/photo-1618172193622-ae2d025f4032?w=400&h=300&fit=crop",
		Description: "Professional font pairings and guidelines"},
	{Title: "Dashboard Components", Category: "UI Kits", Author: "Lisa Anderson", Downloads: 278,
		Image: "https://images.unsplash.com/photo-1551288049-bebda4e38f71?w=400&h=300&fit=crop",
		Description: "Charts, tables, and dashboard elements"},
	{Title: "Social Media Templates", Category: "Templates", Author: "Emma Rodriguez", Downloads: 523,
		Image: "https://images.unsplash.com/photo-1611162617474-5b21e879e113?w=400&h=300&fit=crop",
		Description: "Instagram, Facebook, and Twitter templates"},
}

var vacancies = []models.Vacancy{
	{Title: "Senior UI/UX Designer", Company: "TechStartup Inc", Location: "Remote", Type: "Full-time",
		Budget: "$80k - $100k/year", Duration: "Permanent", PostedBy: "Sarah Johnson",
		Description: "Looking for an experienced UI/UX designer to lead design initiatives for our mobile and web applications. Must have 5+ years of experience.",
		Skills:      []string{"Figma", "UI Design", "UX Research", "Prototyping"}},
	{Title: "Graphic Designer for Branding Project", Company: "Creative Agency", Location: "New York, NY", Type: "Contract",
		Budget: "$5,000 - $8,000", Duration: "3 months", PostedBy: "Michael Chen",
		Description: "We need a talented graphic designer to create a complete brand identity for a new coffee shop chain. Includes logo, packaging, and marketing materials.",
		Skills:      []string{"Illustrator", "Photoshop", "Branding", "Print Design"}},
	{Title: "Mobile App Designer", Company: "FinTech Solutions", Location: "San Francisco, CA", Type: "Freelance",
		Budget: "$60/hour", Duration: "6 months", PostedBy: "Emma Rodriguez",
		Description: "Seeking a mobile app designer to design a banking app from scratch. Must have experience with financial applications and understand security best practices.",
		Skills:      []string{"Mobile Design", "Figma", "iOS", "Android"}},
	{Title: "Web Designer for E-commerce", Company: "Fashion Retail", Location: "Remote", Type: "Part-time",
		Budget: "$40/hour", Duration: "Ongoing", PostedBy: "David Park",
		Description: "Looking for a web designer to help redesign our e-commerce platform. Focus on improving user experience and conversion rates.",
		Skills:      []string{"Web Design", "E-commerce", "Shopify", "UX"}},
}

var conversation = []struct {
	fromSarah bool
	content   string
}{
	{true, "Hey! I saw your latest project, it looks amazing!"},
	{false, "Thank you so much! I really appreciate it."},
	{true, "Would you be interested in collaborating on a branding project?"},
	{false, "Absolutely! I'd love to hear more about it."},
	{true, "Thanks for the feedback!"},
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

	ctx := context.Background()
	store := database.NewUserStore(db)

	var existing int64
	if err := db.Model(&models.Post{}).Count(&existing).Error; err != nil {
		log.Fatal("Failed to count posts", err)
	}
	if existing > 0 {
		log.Info("Community data already seeded, skipping", zap.Int64("posts", existing))
		return
	}

	users := make(map[string]*models.User)
	lookup := func(email string) *models.User {
		if u, ok := users[email]; ok {
			return u
		}
		u, err := store.FindByEmail(ctx, email)
		if errors.Is(err, models.ErrUserNotFound) {
			log.Fatal("Seed user missing, run seed_test_users first", err, zap.String("email", email))
		} else if err != nil {
			log.Fatal("Failed to look up user", err, zap.String("email", email))
		}
		users[email] = u
		return u
	}

	// Resolve every author up front; the transaction below holds its own connection
	for _, p := range posts {
		lookup(p.authorEmail)
	}
	sarah := lookup("sarah.johnson@example.com")
	michael := lookup("michael.chen@example.com")

	now := time.Now().UTC()

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, p := range posts {
			author := lookup(p.authorEmail)
			post := &models.Post{
				AuthorID:  author.ID,
				Author:    author.Name,
				Content:   p.content,
				Likes:     p.likes,
				Comments:  p.comments,
				CreatedAt: now.Add(-p.age),
			}
			if author.Role != nil {
				post.Role = *author.Role
			}
			if p.image != "" {
				image := p.image
				post.Image = &image
			}
			if err := tx.Create(post).Error; err != nil {
				return err
			}
		}

		for i := range portfolio {
			portfolio[i].UserID = sarah.ID
			portfolio[i].Position = i
		}
		if err := tx.Create(&portfolio).Error; err != nil {
			return err
		}

		if err := tx.Create(&resources).Error; err != nil {
			return err
		}

		for i := range vacancies {
			var poster models.User
			err := tx.Where("name = ?", vacancies[i].PostedBy).Take(&poster).Error
			switch {
			case err == nil:
				vacancies[i].PostedByID = &poster.ID
			case !errors.Is(err, gorm.ErrRecordNotFound):
				return err
			}
		}
		if err := tx.Create(&vacancies).Error; err != nil {
			return err
		}

		start := now.Add(-time.Duration(len(conversation)) * time.Minute)
		for i, m := range conversation {
			msg := &models.Message{
				ID:          uuid.New(),
				SenderID:    michael.ID,
				RecipientID: sarah.ID,
				Content:     m.content,
				CreatedAt:   start.Add(time.Duration(i) * time.Minute),
			}
			if m.fromSarah {
				msg.SenderID, msg.RecipientID = sarah.ID, michael.ID
			}
			if err := tx.Create(msg).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Fatal("Failed to seed community data", err)
	}

	log.Info("Seeded community data",
		zap.Int("posts", len(posts)),
		zap.Int("portfolio_items", len(portfolio)),
		zap.Int("resources", len(resources)),
		zap.Int("vacancies", len(vacancies)),
		zap.Int("messages", len(conversation)),
	)
}
