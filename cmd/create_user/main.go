// Comando create_user: crea o actualiza un usuario (por email) en PostgreSQL.
// Pensado para inicializar el primer administrador.
//
//	go run ./cmd/create_user -email admin@loja.com -password admin123 -role ADMIN
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/Backoffice-api/internal/application/dto"
	"github.com/jhoicas/Backoffice-api/internal/application/usecase"
	"github.com/jhoicas/Backoffice-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Backoffice-api/pkg/config"
	"github.com/jhoicas/Backoffice-api/pkg/logger"
)

func main() {
	name := flag.String("name", "Administrador", "nombre del usuario")
	email := flag.String("email", "admin@loja.com", "email del usuario")
	password := flag.String("password", "", "contraseña (mín. 6 caracteres)")
	role := flag.String("role", "ADMIN", "ADMIN | USER")
	flag.Parse()

	if *password == "" {
		fmt.Fprintln(os.Stderr, "-password es obligatorio")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("create_user")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	uc := usecase.NewUserUseCase(postgres.NewUserRepository(pool))
	user, created, err := uc.UpsertUser(ctx, dto.CreateUserRequest{
		Name:     *name,
		Email:    *email,
		Password: *password,
		Role:     *role,
	})
	if err != nil {
		log.Error().Err(err).Str("email", *email).Msg("crear usuario")
		os.Exit(1)
	}
	action := "actualizado"
	if created {
		action = "creado"
	}
	log.Info().Str("id", user.ID).Str("email", user.Email).Str("role", user.Role).Msg("usuario " + action)
}
