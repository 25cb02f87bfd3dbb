package models

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"regexp"
	"strings"
	"time"

	go_sqlite "github.com/glebarez/go-sqlite"
	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// DB is the database used by the backend.
var DB *gorm.DB

// Connect opens the SQLite database, migrates the schema, seeds the
// default categories and configures the connection pool.
//
// If the existing file cannot be opened or migrated, it is moved aside
// and a fresh database is created, so a corrupted file degrades to
// empty collections instead of an unusable backend.
func Connect(dsn string) error {
	config := &gorm.Config{
		Logger: &logger{
			Logger: log.Logger,
		},
	}

	db, err := gorm.Open(sqlite.Open(dsn), config)
	if err == nil {
		err = migrate(db)
	}

	if err != nil {
		log.Error().Err(err).Msg("database unusable, starting over with empty collections")

		if db != nil {
			if sqlDB, dbErr := db.DB(); dbErr == nil {
				sqlDB.Close()
			}
		}

		if renameErr := os.Rename(dsn, dsn+".corrupt"); renameErr != nil && !os.IsNotExist(renameErr) {
			return fmt.Errorf("failed to move corrupt database aside: %w", renameErr)
		}

		db, err = gorm.Open(sqlite.Open(dsn), config)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}

		err = migrate(db)
		if err != nil {
			return err
		}
	}

	// Reconnect with foreign keys enabled. Migration runs without them
	// because sqlite recreates tables for ALTER COLUMN.
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database object: %w", err)
	}
	sqlDB.Close()

	db, err = gorm.Open(sqlite.Open(fmt.Sprintf("%s?_pragma=foreign_keys(1)", dsn)), config)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err = db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database object: %w", err)
	}

	// Get new connections after one hour
	sqlDB.SetConnMaxLifetime(time.Hour)

	// This is done to prevent SQLITE_BUSY errors
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)

	err = db.Callback().Query().After("*").Register("expansepro:after_query", queryCallback)
	if err != nil {
		return err
	}

	err = db.Callback().Query().After("*").Register("expansepro:after_query_general", generalCallback)
	if err != nil {
		return err
	}

	err = db.Callback().Create().After("*").Register("expansepro:after_create", createUpdateCallback)
	if err != nil {
		return err
	}

	err = db.Callback().Create().After("*").Register("expansepro:after_create_general", generalCallback)
	if err != nil {
		return err
	}

	err = db.Callback().Update().After("*").Register("expansepro:after_update", createUpdateCallback)
	if err != nil {
		return err
	}

	err = db.Callback().Update().After("*").Register("expansepro:after_update_general", generalCallback)
	if err != nil {
		return err
	}

	err = db.Callback().Delete().After("*").Register("expansepro:after_delete_general", generalCallback)
	if err != nil {
		return err
	}

	err = seedDefaultCategories(db)
	if err != nil {
		return fmt.Errorf("error seeding default categories: %w", err)
	}

	DB = db
	return nil
}

// queryCallback replaces the generic "no record" error with a more
// user friendly one
func queryCallback(db *gorm.DB) {
	if errors.Is(db.Error, gorm.ErrRecordNotFound) {
		// Use the table name as information about the type of resource
		// and replace "_" with "[space]"
		name := strings.ReplaceAll(db.Statement.Table, "_", " ")

		// Replace pluralized "ies" with "y", then remove plural "s"
		name = regexp.MustCompile("ies$").ReplaceAllString(name, "y")
		name = strings.TrimRight(name, "s")

		db.Error = fmt.Errorf("%w %s matching your query", ErrResourceNotFound, name)
	}
}

// createUpdateCallback inspects errors returned by the database for
// create and update calls and replaces them with user friendly ones
func createUpdateCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	// One budget per category and month
	if strings.Contains(db.Error.Error(), "UNIQUE constraint failed: budgets.category, budgets.month") {
		db.Error = ErrBudgetNotUnique
	}

	// Category names are unique
	if strings.Contains(db.Error.Error(), "UNIQUE constraint failed: categories.name") {
		db.Error = ErrCategoryNameNotUnique
	}
}

// generalCallback handles unspecified errors.
//
// For these errors, we cannot provide the user with a helpful message.
// Instead, the error is logged and we return a general message.
func generalCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	// "sql: database is closed" is hard-coded in the sql module
	if db.Error.Error() == "sql: database is closed" || reflect.TypeOf(db.Error) == reflect.TypeOf(&go_sqlite.Error{}) {
		log.Error().Msgf("%T: %v", db.Error, db.Error.Error())
		db.Error = ErrGeneral

		return
	}
}

// migrate migrates all models to the schema defined in the code.
func migrate(db *gorm.DB) (err error) {
	err = db.AutoMigrate(Transaction{}, RecurringTemplate{}, Budget{}, Category{})
	if err != nil {
		return fmt.Errorf("error during DB migration: %w", err)
	}

	return nil
}
