package postgres

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"foodloop/internal/adapters/out/postgres/donationrepo"
	"foodloop/internal/adapters/out/postgres/subscriptionrepo"
	"foodloop/internal/adapters/out/postgres/userrepo"

	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// sqliteBusyTimeout is how long a sqlite writer waits for the database
// write lock before giving up with SQLITE_BUSY.
const sqliteBusyTimeout = 5 * time.Second

// Open connects to a postgres DSN or a sqlite file path. Duplicate keys are
// translated to gorm.ErrDuplicatedKey where the dialector supports it.
//
// Sqlite transactions take the write lock on Begin and wait for it, so two
// writers never interleave a read and a conditional update.
func Open(driver, dsn string, log *slog.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case DriverPostgres:
		dialector = postgresdriver.Open(dsn)
	case DriverSQLite:
		dialector = sqlite.Open(SQLiteDSN(dsn))
	default:
		return nil, fmt.Errorf("unsupported store driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
		Logger: logger.New(
			slog.NewLogLogger(log.With("component", "gorm").Handler(), slog.LevelWarn),
			logger.Config{
				SlowThreshold:             200 * time.Millisecond,
				LogLevel:                  logger.Warn,
				IgnoreRecordNotFoundError: true,
			},
		),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", driver, err)
	}

	return db, nil
}

// SQLiteDSN adds the transaction lock mode and busy timeout to a sqlite
// file path or URI unless the caller already set them.
func SQLiteDSN(dsn string) string {
	var params []string
	if !strings.Contains(dsn, "_txlock=") {
		params = append(params, "_txlock=immediate")
	}
	if !strings.Contains(dsn, "_timeout=") {
		params = append(params, fmt.Sprintf("_busy_timeout=%d", sqliteBusyTimeout.Milliseconds()))
	}
	if len(params) == 0 {
		return dsn
	}

	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + strings.Join(params, "&")
}

// Migrate creates or updates every table the store owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&donationrepo.DonationDTO{},
		&donationrepo.TrackingSequenceDTO{},
		&userrepo.UserDTO{},
		&subscriptionrepo.SubscriptionDTO{},
	)
}

// PostgresDSN builds a key/value connection string.
func PostgresDSN(host, port, user, password, dbName, sslMode string) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbName, sslMode)
}
