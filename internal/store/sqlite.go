package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/plantarium-app/plantarium/internal/config"
	"github.com/plantarium-app/plantarium/internal/live"
	"github.com/plantarium-app/plantarium/internal/logger"
	"github.com/plantarium-app/plantarium/migrations"
)

// DB wraps the embedded SQLite connection together with the change hub that
// drives the store's live queries. Repositories embed *DB and call
// notify after each committed write.
type DB struct {
	*sql.DB
	hub    *live.Hub
	logger *logger.Logger
}

// NewConnectSQLite opens the SQLite database file named by cfg.DSN, creating
// the file when it does not yet exist, and verifies the connection with a
// ping. Foreign-key enforcement is passed through the DSN so that every
// connection database/sql opens for the pool enforces it; plantings
// referencing an unknown plant are then rejected by the engine on any
// connection.
func NewConnectSQLite(ctx context.Context, cfg config.ClientDB, log *logger.Logger) (*DB, error) {
	if err := createLocalDBFileIfNotExists(cfg.DSN); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error creating database file")
		return nil, fmt.Errorf("error creating database file")
	}

	conn, err := sql.Open("sqlite3", dsnWithForeignKeys(cfg.DSN))
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database")
		return nil, fmt.Errorf("error opening connection to DB")
	}

	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database (ping)")
		return nil, err
	}
	log.Debug().Str("func", "NewConnectSQLite").Msg("connected to database successfully")

	return &DB{
		DB:     conn,
		hub:    live.NewHub(),
		logger: log,
	}, nil
}

// Migrate applies the embedded schema migrations.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}

// Hub exposes the change hub so the observing layer can subscribe to table
// invalidations.
func (db *DB) Hub() *live.Hub {
	return db.hub
}

// notify signals every live query watching any of the given tables. Must be
// called only after the corresponding write has been committed, so readers
// never observe a partially-applied write.
func (db *DB) notify(tables ...string) {
	db.hub.Notify(tables...)
}

// dsnWithForeignKeys appends the driver's _foreign_keys parameter to the
// file DSN. A per-connection pragma would arm enforcement only on the pool
// connection that ran it.
func dsnWithForeignKeys(dsn string) string {
	if strings.Contains(dsn, "?") {
		return dsn + "&_foreign_keys=on"
	}
	return dsn + "?_foreign_keys=on"
}

func createLocalDBFileIfNotExists(dbFile string) error {
	if _, err := os.Stat(dbFile); os.IsNotExist(err) {
		f, err := os.Create(dbFile)
		if err != nil {
			return fmt.Errorf("error creating DB file: %w", err)
		}
		f.Close()
	}

	return nil
}
