package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/gokatarajesh/trivia-api/db/migrations"
	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	"github.com/gokatarajesh/trivia-api/internal/question"
	"github.com/gokatarajesh/trivia-api/internal/question/external"
)

func main() {
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

	if err := newRootCmd().Execute(); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}
}

func newRootCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:           "migrator",
		Short:         "Manage the trivia schema and seed data",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if os.Getenv("APP_ENV") == "production" {
				return
			}
			if err := godotenv.Load(envFile); err != nil {
				log.Warn().Err(err).Str("file", envFile).Msg("could not load .env file")
			}
		},
	}
	cmd.PersistentFlags().StringVar(&envFile, "env-file", "configs/.env", "dotenv file loaded outside production")

	cmd.AddCommand(
		migrateCmd("up", "Apply all pending migrations", goose.UpContext),
		migrateCmd("down", "Roll back the latest migration", goose.DownContext),
		migrateCmd("status", "Print migration status", goose.StatusContext),
		importCmd(),
	)
	return cmd
}

type gooseFunc func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error

func migrateCmd(use, short string, run gooseFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			db, err := openDB(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			goose.SetBaseFS(migrations.FS)
			goose.SetTableName("goose_db_version")
			if err := goose.SetDialect("postgres"); err != nil {
				return fmt.Errorf("set dialect: %w", err)
			}

			if err := run(ctx, db, "."); err != nil {
				return fmt.Errorf("goose %s: %w", use, err)
			}
			log.Info().Str("command", use).Msg("migration command completed")
			return nil
		},
	}
}

// openDB connects through database/sql with the pgx stdlib driver, which is
// what goose expects.
func openDB(ctx context.Context) (*sql.DB, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}
	pg := cfg.Postgres

	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		pg.Host, pg.Port, pg.User, pg.Password, pg.Database, pg.SSLMode)
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	log.Info().
		Str("host", pg.Host).
		Int("port", pg.Port).
		Str("database", pg.Database).
		Msg("connected to database")
	return db, nil
}

func importCmd() *cobra.Command {
	var (
		source string
		amount int
		apiKey string
	)
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Seed questions from a public trivia API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var src external.Source
			switch source {
			case "opentdb":
				src = external.NewOpenTDBClient("", nil)
			case "triviaapi":
				src = external.NewTriviaAPIClient("", apiKey, nil)
			default:
				return fmt.Errorf("unknown source %q (want opentdb or triviaapi)", source)
			}

			cfg, err := config.Load(ctx)
			if err != nil {
				return err
			}
			pool, err := pgxpool.New(ctx, cfg.Postgres.ConnString())
			if err != nil {
				return fmt.Errorf("connect postgres: %w", err)
			}
			defer pool.Close()

			svc := question.NewService(repository.NewQuestionRepository(pool), nil, question.ServiceOptions{}, log.Logger)
			res, err := external.NewImporter(src, svc, log.Logger).Run(ctx, amount)
			if err != nil {
				return err
			}
			log.Info().
				Int("fetched", res.Fetched).
				Int("imported", res.Imported).
				Int("skipped", res.Skipped).
				Msg("import completed")
			return nil
		},
	}
	cmd.Flags().StringVar(&source, "source", "opentdb", "question source: opentdb or triviaapi")
	cmd.Flags().IntVar(&amount, "amount", 20, "number of questions to request")
	cmd.Flags().StringVar(&apiKey, "api-key", os.Getenv("TRIVIA_API_KEY"), "API key for triviaapi")
	return cmd
}
