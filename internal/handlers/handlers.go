package handlers

import (
	"database/sql"

	"github.com/trendovo/trendovo-golang/internal/cache"
	"github.com/trendovo/trendovo-golang/internal/config"
	"github.com/trendovo/trendovo-golang/internal/mail"
)

// Handlers struct holds all dependencies for our handlers.
type Handlers struct {
	DB     *sql.DB
	Cfg    *config.Config
	Mailer mail.Mailer
	Cache  *cache.Cache // nil when redis is unavailable
}
