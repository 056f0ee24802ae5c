package main

import (
	"log"
	"os"
	"time"

	"github.com/trendovo/trendovo-golang/internal/auth"
	"github.com/trendovo/trendovo-golang/internal/cache"
	"github.com/trendovo/trendovo-golang/internal/config"
	"github.com/trendovo/trendovo-golang/internal/database"
	"github.com/trendovo/trendovo-golang/internal/handlers"
	"github.com/trendovo/trendovo-golang/internal/mail"
	"github.com/trendovo/trendovo-golang/internal/routes"
)

func main() {
	// 1. Load configuration (.env included)
	cfg := config.Load()

	// 2. Initialize the JWT signing key
	auth.Init(cfg.JWTSecret)

	// 3. Connect to MySQL
	db, err := database.Open(cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Database connection established")

	// 4. Category tree cache (optional, nil when redis is down)
	treeCache := cache.New(cfg.RedisURL, time.Duration(cfg.CategoryCacheTTL)*time.Second)

	// 5. Pick the mailer: real SMTP when configured, console otherwise
	var mailer mail.Mailer
	if cfg.SMTPHost != "" {
		mailer = mail.NewSMTPMailer(mail.SMTPConfig{
			Host: cfg.SMTPHost,
			Port: cfg.SMTPPort,
			User: cfg.SMTPUser,
			Pass: cfg.SMTPPass,
			From: cfg.SMTPFrom,
		})
	} else {
		log.Println("SMTP_HOST not set, emails go to the console")
		mailer = mail.NewLogMailer()
	}

	// 6. Make sure the upload directory exists
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Fatalf("Failed to create upload directory: %v", err)
	}

	// 7. Wire the dependencies into the handlers
	h := &handlers.Handlers{
		DB:     db,
		Cfg:    cfg,
		Mailer: mailer,
		Cache:  treeCache,
	}

	// 8. Build the router and start serving
	router := routes.SetupRouter(h)
	log.Printf("Starting server on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
