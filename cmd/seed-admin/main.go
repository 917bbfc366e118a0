// Command seed-admin creates an administrator account directly in the
// database. Registration through the API always issues the default
// role, so the first admin has to be bootstrapped out of band.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/phrazzld/taskboard-api/internal/config"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/platform/postgres"
	"github.com/phrazzld/taskboard-api/internal/service/auth"
)

func main() {
	name := flag.String("name", "", "display name for the admin account")
	email := flag.String("email", "", "email address for the admin account")
	password := flag.String("password", "", "password for the admin account")
	flag.Parse()

	if *name == "" || *email == "" || *password == "" {
		log.Fatal("all of -name, -email and -password are required")
	}

	if err := run(*name, *email, *password); err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}

	fmt.Printf("admin account created: %s\n", *email)
}

func run(name, email, password string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := openDatabase(ctx, cfg.Database.URL)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			appLogger.Error("Error closing database connection", "error", err)
		}
	}()

	user, err := domain.NewUser(name, email, password)
	if err != nil {
		return fmt.Errorf("invalid admin account data: %w", err)
	}
	user.Role = domain.RoleAdmin

	hasher := auth.NewBcryptHasher(auth.DefaultBcryptCost)
	hashed, err := hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.HashedPassword = hashed
	user.Password = ""

	userStore := postgres.NewPostgresUserStore(db, appLogger)
	if err := userStore.Create(ctx, user); err != nil {
		return fmt.Errorf("failed to create admin account: %w", err)
	}

	return nil
}
