// Package migrations embeds the goose SQL migrations and applies them.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
)

//go:embed *.sql
var FS embed.FS

// Up applies every pending migration to db.
func Up(ctx context.Context, db *sql.DB, logger zerolog.Logger) error {
	goose.SetBaseFS(FS)
	goose.SetLogger(gooseLogger{log: logger.With().Str("component", "goose").Logger()})
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// gooseLogger satisfies goose.Logger on top of zerolog.
type gooseLogger struct{ log zerolog.Logger }

func (g gooseLogger) Printf(format string, v ...interface{}) { g.log.Info().Msgf(format, v...) }

func (g gooseLogger) Fatalf(format string, v ...interface{}) { g.log.Fatal().Msgf(format, v...) }
