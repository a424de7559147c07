// Command reset-password sets a new password for an existing account and ends
// its current session. Usage: reset-password [email] [new-password]; both
// default to the configured owner account.
package main

import (
	"context"
	"os"

	"go-inventory-orders/internal/config"
	"go-inventory-orders/internal/repository"
	"go-inventory-orders/pkg/database"
	"go-inventory-orders/pkg/logger"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

func main() {
	envErr := godotenv.Load()
	cfg := config.Load()
	log := logger.New(false)
	if envErr != nil {
		log.Warn(".env file not found, relying on system env")
	}

	email, newPassword := cfg.Admin.Email, cfg.Admin.Password
	if len(os.Args) > 1 {
		email = os.Args[1]
	}
	if len(os.Args) > 2 {
		newPassword = os.Args[2]
	}

	db, err := database.ConnectDB(cfg.DatabaseURL, log, true)
	if err != nil {
		log.WithError(err).Fatal("database unavailable")
	}

	ctx := context.Background()
	users := repository.NewUserRepo(db)
	user, err := users.FindByEmail(ctx, email)
	if err != nil {
		log.WithError(err).WithField("email", email).Fatal("user not found")
	}

	if err := user.SetPassword(newPassword); err != nil {
		log.WithError(err).Fatal("failed to hash password")
	}
	if err := users.UpdatePassword(ctx, user.ID, user.Password); err != nil {
		log.WithError(err).Fatal("failed to update password")
	}
	if err := users.UpdateTokenVersion(ctx, user.ID, uuid.NewString()); err != nil {
		log.WithError(err).Fatal("failed to end current session")
	}

	log.WithField("email", email).Info("password reset")
}
