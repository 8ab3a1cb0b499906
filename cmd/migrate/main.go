// Herramienta de migraciones de esquema (golang-migrate sobre los .sql de migrations/).
package main

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jhoicas/comercio-core/pkg/config"
	"github.com/jhoicas/comercio-core/pkg/logger"
)

func main() {
	var (
		action = flag.String("action", "up", "Acción: up, down, version")
		steps  = flag.Int("steps", 1, "Pasos para down")
		dir    = flag.String("dir", "migrations", "Directorio de migraciones")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	// El driver pgx/v5 de golang-migrate se registra con el esquema pgx5://
	dsn := cfg.DB.ConnectionString()
	dsn = strings.Replace(dsn, "postgresql://", "pgx5://", 1)
	dsn = strings.Replace(dsn, "postgres://", "pgx5://", 1)

	m, err := migrate.New("file://"+*dir, dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir migrador")
	}
	defer m.Close()

	switch *action {
	case "up":
		err = m.Up()
	case "down":
		err = m.Steps(-*steps)
	case "version":
		v, dirty, verr := m.Version()
		if verr != nil {
			log.Fatal().Err(verr).Msg("leer versión")
		}
		fmt.Printf("version=%d dirty=%v\n", v, dirty)
		return
	default:
		log.Fatal().Str("action", *action).Msg("acción desconocida")
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatal().Err(err).Str("action", *action).Msg("migración fallida")
	}
	log.Info().Str("action", *action).Msg("migración completada")
}
