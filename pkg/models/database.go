package models

import (
	"errors"
	"fmt"
	"net"
	"reflect"
	"regexp"
	"strings"
	"time"

	go_sqlite "github.com/glebarez/go-sqlite"
	"github.com/glebarez/sqlite"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

type FTContext string

const (
	DBContextURL FTContext = "ft-backend-url"
)

var pluralIes = regexp.MustCompile("ies$")

// PostgreSQL error codes, see https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// Connect opens the SQLite database at dsn and configures the connection pool.
func Connect(dsn string) error {
	if !strings.Contains(dsn, "?") {
		dsn = fmt.Sprintf("%s?_pragma=foreign_keys(1)", dsn)
	}

	db, err := gorm.Open(sqlite.Open(dsn), config())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database object: %w", err)
	}

	// Get new connections after one hour
	sqlDB.SetConnMaxLifetime(time.Hour)

	// This is done to prevent SQLITE_BUSY errors.
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)

	return setup(db)
}

// ConnectPostgres opens a PostgreSQL database with the given DSN.
func ConnectPostgres(dsn string) error {
	db, err := gorm.Open(postgres.Open(dsn), config())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	return setup(db)
}

func config() *gorm.Config {
	return &gorm.Config{
		// Set generated timestamps in UTC
		NowFunc: func() time.Time {
			return time.Now().In(time.UTC)
		},
		Logger: &logger{
			Logger: log.Logger,
		},
	}
}

// setup registers the callbacks, migrates the schema and sets DB.
func setup(db *gorm.DB) error {
	callbacks := []struct {
		register func(name string, fn func(*gorm.DB)) error
		name     string
		fn       func(*gorm.DB)
	}{
		{db.Callback().Query().After("*").Register, "fintrack:after_query", queryCallback},
		{db.Callback().Query().After("*").Register, "fintrack:after_query_general", generalCallback},
		{db.Callback().Create().After("*").Register, "fintrack:after_create", createUpdateCallback},
		{db.Callback().Create().After("*").Register, "fintrack:after_create_general", generalCallback},
		{db.Callback().Update().After("*").Register, "fintrack:after_update", createUpdateCallback},
		{db.Callback().Update().After("*").Register, "fintrack:after_update_general", generalCallback},
		{db.Callback().Delete().After("*").Register, "fintrack:after_delete_general", generalCallback},
	}

	for _, cb := range callbacks {
		if err := cb.register(cb.name, cb.fn); err != nil {
			return err
		}
	}

	err := migrate(db)
	if err != nil {
		return err
	}

	// Set the exported variable
	DB = db

	return nil
}

// queryCallback replaces the generic "no record" error with a more user
// friendly one
func queryCallback(db *gorm.DB) {
	if errors.Is(db.Error, gorm.ErrRecordNotFound) {
		// Use the table name as information about the type of resource
		// and replace "_" with "[space]"
		name := strings.ReplaceAll(db.Statement.Table, "_", " ")

		// Replace pluralized "ies" with "y"
		name = pluralIes.ReplaceAllString(name, "y")

		// Remove plural "s"
		name = strings.TrimRight(name, "s")

		db.Error = fmt.Errorf("%w %s matching your query", ErrResourceNotFound, name)
	}
}

// createUpdateCallback inspects errors returned by the database for create
// and update calls and replaces them with user friendly ones
func createUpdateCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	var pgErr *pgconn.PgError
	if errors.As(db.Error, &pgErr) {
		switch {
		case pgErr.Code == pgUniqueViolation && pgErr.ConstraintName == "idx_users_email":
			db.Error = ErrUserEmailNotUnique
		case pgErr.Code == pgUniqueViolation && pgErr.ConstraintName == "category_user_name":
			db.Error = ErrCategoryNameNotUnique
		case pgErr.Code == pgForeignKeyViolation:
			db.Error = ErrReferenceInvalid
		}
		return
	}

	msg := db.Error.Error()

	// E-Mail addresses identify users
	if strings.Contains(msg, "UNIQUE constraint failed: users.email") || strings.Contains(msg, "idx_users_email") {
		db.Error = ErrUserEmailNotUnique
		return
	}

	// Category names need to be unique per user
	if strings.Contains(msg, "UNIQUE constraint failed: categories.user_id, categories.name") || strings.Contains(msg, "category_user_name") {
		db.Error = ErrCategoryNameNotUnique
		return
	}

	if strings.Contains(msg, "FOREIGN KEY constraint failed") || strings.Contains(msg, "violates foreign key constraint") {
		db.Error = ErrReferenceInvalid
	}
}

// generalCallback handles unspecified errors.
//
// For these errors, we cannot provide the user with a helpful message.
// Instead, the error is logged and we return a general message to users.
func generalCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	if driverError(db.Error) {
		log.Error().Msgf("%T: %v", db.Error, db.Error.Error())
		db.Error = ErrGeneral
	}
}

// driverError reports if the error comes from the database driver or the
// connection to the database.
func driverError(err error) bool {
	// "sql: database is closed" is hard-coded in the sql module
	if err.Error() == "sql: database is closed" || reflect.TypeOf(err) == reflect.TypeOf(&go_sqlite.Error{}) {
		return true
	}

	var pgErr *pgconn.PgError
	var connectErr *pgconn.ConnectError
	var netErr net.Error

	return errors.As(err, &pgErr) || errors.As(err, &connectErr) || errors.As(err, &netErr)
}

// migrate migrates all models to the schema defined in the code.
func migrate(db *gorm.DB) (err error) {
	err = db.AutoMigrate(User{}, BankAccount{}, Category{}, Transaction{}, Budget{}, BudgetItem{})
	if err != nil {
		return fmt.Errorf("error during DB migration: %w", err)
	}

	return nil
}
