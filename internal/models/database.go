package models

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
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

// sqlite result codes that signal a transient condition
const (
	sqliteBusy   = 5
	sqliteLocked = 6
)

// partialIndexes enforce the uniqueness rules that only apply to active moneyboxes.
//
// gorm cannot express partial indexes that work on both sqlite and postgres,
// so they are created after the automatic migration.
var partialIndexes = []string{
	"CREATE UNIQUE INDEX IF NOT EXISTS moneybox_active_name ON moneyboxes (name_key) WHERE is_active",
	"CREATE UNIQUE INDEX IF NOT EXISTS moneybox_single_overflow ON moneyboxes (is_overflow) WHERE is_active AND is_overflow",
	"CREATE UNIQUE INDEX IF NOT EXISTS moneybox_active_priority ON moneyboxes (priority) WHERE is_active AND NOT is_overflow",
}

// constraintErrors maps constraint names, or the columns sqlite reports
// for them, to the errors returned to callers.
var constraintErrors = []struct {
	match string
	err   error
}{
	{"moneyboxes.name_key", ErrMoneyboxNameNotUnique},
	{"moneybox_active_name", ErrMoneyboxNameNotUnique},
	{"moneyboxes.is_overflow", ErrOverflowNotUnique},
	{"moneybox_single_overflow", ErrOverflowNotUnique},
	{"moneyboxes.priority", ErrPriorityNotUnique},
	{"moneybox_active_priority", ErrPriorityNotUnique},
	{"settings.id", ErrSettingsExist},
	{"settings_pkey", ErrSettingsExist},
	{"balance_non_negative", ErrInsufficientFunds},
	{"goal_non_negative", ErrInvalidAmount},
	{"increment_non_negative", ErrInvalidAmount},
	{"savings_amount_non_negative", ErrInvalidAmount},
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

// Connect opens the SQLite database and configures the connection pool.
func Connect(dsn string) error {
	// Migration with foreign keys disabled since sqlite recreates tables
	// when columns change
	db, err := gorm.Open(sqlite.Open(dsn), config())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	err = migrate(db)
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database object: %w", err)
	}
	sqlDB.Close()

	// Now, reconnect with foreign keys enabled
	dsn = fmt.Sprintf("%s?_pragma=foreign_keys(1)", dsn)
	db, err = gorm.Open(sqlite.Open(dsn), config())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err = db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database object: %w", err)
	}

	// Get new connections after one hour
	sqlDB.SetConnMaxLifetime(time.Hour)

	// A single connection serializes all writers and prevents SQLITE_BUSY errors.
	// Row locks are not supported by sqlite, this is what keeps concurrent
	// balance changes from interleaving.
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)

	return setup(db)
}

// ConnectPostgres opens a PostgreSQL database and migrates it.
func ConnectPostgres(dsn string) error {
	db, err := gorm.Open(postgres.Open(dsn), config())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	err = migrate(db)
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database object: %w", err)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	return setup(db)
}

// setup registers the error translation callbacks and sets the exported DB.
func setup(db *gorm.DB) error {
	callbacks := []struct {
		processor interface {
			Register(string, func(*gorm.DB)) error
		}
		name string
		fn   func(*gorm.DB)
	}{
		{db.Callback().Query().After("*"), "moneybox:after_query", queryCallback},
		{db.Callback().Query().After("*"), "moneybox:after_query_general", generalCallback},
		{db.Callback().Create().After("*"), "moneybox:after_create", createUpdateCallback},
		{db.Callback().Create().After("*"), "moneybox:after_create_general", generalCallback},
		{db.Callback().Update().After("*"), "moneybox:after_update", createUpdateCallback},
		{db.Callback().Update().After("*"), "moneybox:after_update_general", generalCallback},
		{db.Callback().Delete().After("*"), "moneybox:after_delete_general", generalCallback},
		{db.Callback().Row().After("*"), "moneybox:after_row_general", generalCallback},
		{db.Callback().Raw().After("*"), "moneybox:after_raw_general", generalCallback},
	}

	for _, c := range callbacks {
		err := c.processor.Register(c.name, c.fn)
		if err != nil {
			return err
		}
	}

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

		// Replace pluralized "es" after an x with nothing, then drop a plural "s"
		name = regexp.MustCompile("xes$").ReplaceAllString(name, "x")
		name = strings.TrimSuffix(name, "s")

		db.Error = fmt.Errorf("%w %s matching your query", ErrResourceNotFound, name)
	}
}

// createUpdateCallback replaces constraint violations reported by the
// database with the errors of this package
func createUpdateCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	name := db.Error.Error()
	var pgErr *pgconn.PgError
	if errors.As(db.Error, &pgErr) && pgErr.ConstraintName != "" {
		name = pgErr.ConstraintName
	}

	for _, c := range constraintErrors {
		if strings.Contains(name, c.match) {
			db.Error = c.err
			return
		}
	}
}

// generalCallback handles unspecified errors.
//
// For these errors, we cannot provide the user with a helpful message.
// Instead, the error is logged and replaced with a storage error.
func generalCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	if Unavailable(db.Error) {
		log.Error().Msgf("%T: %v", db.Error, db.Error.Error())
		db.Error = fmt.Errorf("%w: %s", ErrStorageUnavailable, db.Error)
		return
	}

	var pgErr *pgconn.PgError
	if reflect.TypeOf(db.Error) == reflect.TypeOf(&go_sqlite.Error{}) || errors.As(db.Error, &pgErr) {
		log.Error().Msgf("%T: %v", db.Error, db.Error.Error())
		db.Error = fmt.Errorf("%w: %s", ErrAborted, db.Error)
	}
}

// Unavailable reports whether err means that the database could not be
// reached or is temporarily busy.
func Unavailable(err error) bool {
	if errors.Is(err, ErrStorageUnavailable) {
		return true
	}

	// "sql: database is closed" is hard-coded in the sql module
	if err.Error() == "sql: database is closed" || errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return true
	}

	var sqliteErr *go_sqlite.Error
	if errors.As(err, &sqliteErr) {
		code := sqliteErr.Code() & 0xff
		return code == sqliteBusy || code == sqliteLocked
	}

	var connectErr *pgconn.ConnectError
	return errors.As(err, &connectErr) || pgconn.SafeToRetry(err)
}

// migrate migrates all models to the schema defined in the code.
func migrate(db *gorm.DB) error {
	err := db.AutoMigrate(Moneybox{}, Transaction{}, Settings{})
	if err != nil {
		return fmt.Errorf("error during DB migration: %w", err)
	}

	for _, index := range partialIndexes {
		err = db.Exec(index).Error
		if err != nil {
			return fmt.Errorf("error creating index: %w", err)
		}
	}

	return nil
}
