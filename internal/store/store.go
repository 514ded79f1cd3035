// Package store is an optional ingestion cache: it persists the raw
// documentation-tool JSON blob for each ingested crate (written by
// `apidex ingest --cache`) so a later process does not need the original
// files to still be on disk. It is deliberately outside internal/index and
// internal/core — spec §6.5 places "how blobs are acquired or cached on
// disk" outside the core, and internal/index.Ingest never imports this
// package.
package store

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	libsql "github.com/tursodatabase/libsql-client-go/libsql"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Store wraps a *gorm.DB holding the CrateBlob cache table.
type Store struct {
	db *gorm.DB
}

// Connect opens (and migrates) a cache database. dsn is either a local
// file path, resolved with gorm's stock sqlite driver, or a
// "libsql://"/"https://" URL for a remote/replicated Turso-style database,
// resolved through the same gorm.Dialector as the local case — mirroring
// the teacher's db.Connect/isURL split exactly (down to the same
// gorm.io/driver/sqlite package).
func Connect(dsn string, authToken string, debug bool) (*Store, error) {
	if !isURL(dsn) {
		if dir := filepath.Dir(dsn); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("creating store directory: %w", err)
			}
		}
	}

	gcfg := &gorm.Config{}
	if debug {
		gcfg.Logger = logger.Default.LogMode(logger.Info)
	}

	var dialector gorm.Dialector
	var conn *sql.DB
	if isURL(dsn) {
		var connector driver.Connector
		var err error
		if authToken != "" {
			connector, err = libsql.NewConnector(dsn, libsql.WithAuthToken(authToken))
		} else {
			connector, err = libsql.NewConnector(dsn)
		}
		if err != nil {
			return nil, fmt.Errorf("creating libsql connector: %w", err)
		}
		conn = sql.OpenDB(connector)
		dialector = sqlite.New(sqlite.Config{DriverName: "libsql", Conn: conn, DSN: dsn})
	} else {
		dialector = sqlite.Open(dsn)
	}

	db, err := gorm.Open(dialector, gcfg)
	if err != nil {
		if conn != nil {
			conn.Close()
		}
		return nil, fmt.Errorf("opening store: %w", err)
	}

	if err := db.AutoMigrate(&CrateBlob{}); err != nil {
		return nil, fmt.Errorf("migrating store: %w", err)
	}

	return &Store{db: db}, nil
}

func isURL(dsn string) bool {
	return strings.HasPrefix(dsn, "http://") || strings.HasPrefix(dsn, "https://") || strings.HasPrefix(dsn, "libsql://")
}

// Put records (or replaces) the raw documentation JSON for a crate.
func (s *Store) Put(name, version string, blob []byte, itemCount int) error {
	row := CrateBlob{
		Name:       name,
		Version:    version,
		Blob:       datatypes.JSON(blob),
		ItemCount:  itemCount,
		IngestedAt: time.Now(),
	}
	return s.db.Save(&row).Error
}

// Get returns the most recently cached blob for (name, version), if any.
func (s *Store) Get(name, version string) (CrateBlob, bool, error) {
	var row CrateBlob
	err := s.db.Where("name = ? AND version = ?", name, version).First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return CrateBlob{}, false, nil
		}
		return CrateBlob{}, false, err
	}
	return row, true, nil
}

// List returns every cached crate's provenance (not the blobs themselves).
func (s *Store) List() ([]CrateBlob, error) {
	var rows []CrateBlob
	err := s.db.Select("name, version, item_count, ingested_at").Find(&rows).Error
	return rows, err
}

// Close releases the underlying database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
