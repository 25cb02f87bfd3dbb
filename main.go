package main

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/expansepro/backend/internal/models"
	"github.com/expansepro/backend/internal/recurrence"
	"github.com/expansepro/backend/internal/router"
	"github.com/expansepro/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// A .env file is optional, in containers the environment is set
	// directly
	_ = godotenv.Load()

	// gin uses debug as the default mode, we use release for
	// security reasons
	ginMode, ok := os.LookupEnv("GIN_MODE")
	if !ok {
		gin.SetMode("release")
	} else {
		gin.SetMode(ginMode)
	}

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	logFormat, ok := os.LookupEnv("LOG_FORMAT")
	output := io.Writer(os.Stdout)
	if (!ok && gin.IsDebugging()) || (ok && logFormat == "human") {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	dbPath, ok := os.LookupEnv("DB_PATH")
	if !ok {
		dbPath = filepath.Join("data", "expansepro.db")
	}

	err := os.MkdirAll(filepath.Dir(dbPath), os.ModePerm)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	err = models.Connect(dbPath)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// Catch up on recurring transactions that became due while the
	// backend was not running
	created, err := recurrence.Run(models.DB, types.DayOf(time.Now()))
	if err != nil {
		log.Fatal().Msg(err.Error())
	}
	log.Info().Int("created", created).Msg("materialized recurring transactions")

	r, err := router.Router()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	if err := r.Run(); err != nil {
		log.Fatal().Msg(err.Error())
	}
}
