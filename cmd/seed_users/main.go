// seed_users crea los usuarios iniciales (uno por rol) en PostgreSQL.
//
// Uso: go run ./cmd/seed_users
// Contraseñas: SEED_<USUARIO>_PASSWORD (ej. SEED_ADMIN_PASSWORD). Si no está definida se genera
// una aleatoria y se imprime una sola vez. Los usuarios que ya existen se omiten.
package main

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/deeptec/tenders-api/internal/application/dto"
	"github.com/deeptec/tenders-api/internal/application/usecase"
	"github.com/deeptec/tenders-api/internal/domain"
	"github.com/deeptec/tenders-api/internal/domain/entity"
	"github.com/deeptec/tenders-api/internal/infrastructure/postgres"
	"github.com/deeptec/tenders-api/pkg/config"
	"github.com/deeptec/tenders-api/pkg/logger"
)

type seedUser struct {
	username string
	role     entity.Role
}

var seeds = []seedUser{
	{username: "project", role: entity.RoleProjectTeam},
	{username: "finance", role: entity.RoleFinanceTeam},
	{username: "deeptec", role: entity.RoleAllUsers},
	{username: "admin", role: entity.RoleAdmin},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, Service: "seed_users"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("aplicar esquema")
	}

	userUC := usecase.NewUserUseCase(postgres.NewUserRepository(pool), log)
	created := 0
	for _, s := range seeds {
		password, generated, err := passwordFor(s.username)
		if err != nil {
			log.Fatal().Err(err).Str("username", s.username).Msg("generar contraseña")
		}
		_, err = userUC.CreateUser(ctx, dto.CreateUserRequest{
			Username: s.username,
			Password: password,
			Role:     string(s.role),
		})
		if errors.Is(err, domain.ErrUsernameTaken) {
			log.Info().Str("username", s.username).Msg("usuario ya existe, se omite")
			continue
		}
		if err != nil {
			log.Fatal().Err(err).Str("username", s.username).Msg("crear usuario")
		}
		created++
		if generated {
			fmt.Printf("%-8s %-13s %s\n", s.username, s.role, password)
		}
	}
	log.Info().Int("creados", created).Msg("seed de usuarios terminado")
}

// passwordFor lee SEED_<USUARIO>_PASSWORD o genera una contraseña aleatoria.
func passwordFor(username string) (string, bool, error) {
	if p := os.Getenv("SEED_" + strings.ToUpper(username) + "_PASSWORD"); p != "" {
		return p, false, nil
	}
	buf := make([]byte, 12)
	if _, err := rand.Read(buf); err != nil {
		return "", false, err
	}
	return base64.RawURLEncoding.EncodeToString(buf), true, nil
}
