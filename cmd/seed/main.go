package main

import (
	"context"
	"flag"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/almazgeobur/etp-api/internal/domain/entity"
	"github.com/almazgeobur/etp-api/internal/infrastructure/postgres"
	"github.com/almazgeobur/etp-api/pkg/config"
	"github.com/almazgeobur/etp-api/pkg/logger"
	"github.com/almazgeobur/etp-api/pkg/password"
)

// Bootstraps the first admin account. Idempotent: if the email already
// exists nothing is written. When -password is omitted a random one is
// generated and printed once.
func main() {
	email := flag.String("email", "admin@example.com", "admin email")
	pass := flag.String("password", "", "admin password (generated when empty)")
	name := flag.String("name", "Administrator", "admin full name")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("load config: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)

	existing, err := userRepo.GetByEmail(ctx, *email)
	if err != nil {
		log.Fatal().Err(err).Msg("lookup admin")
	}
	if existing != nil {
		log.Info().Str("email", *email).Msg("admin already exists, nothing to do")
		return
	}

	plain := *pass
	generated := plain == ""
	if generated {
		plain, err = password.Generate(password.DefaultLength)
		if err != nil {
			log.Fatal().Err(err).Msg("generate password")
		}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("hash password")
	}

	now := time.Now()
	admin := &entity.User{
		Email:        *email,
		PasswordHash: string(hash),
		FullName:     *name,
		Role:         entity.RoleAdmin,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		log.Fatal().Err(err).Msg("create admin")
	}

	ev := log.Info().Int64("id", admin.ID).Str("email", admin.Email)
	if generated {
		ev = ev.Str("password", plain)
	}
	ev.Msg("admin account created")
}
