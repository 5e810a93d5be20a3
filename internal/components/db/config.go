package db

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

const (
	EnvUrl       = "CATALOG_DB_URL"
	EnvAuthToken = "CATALOG_DB_AUTH_TOKEN"
	EnvFile      = "CATALOG_DB_FILE"
)

// ErrMissingCredential is returned when the store cannot be written to
// because no write credential was configured.
var ErrMissingCredential = errors.New("missing database write credential")

// Config selects the course store. When Url is set, a remote libsql
// database is used and AuthToken is required to write to it. Otherwise File
// is opened as a local sqlite database.
type Config struct {
	File      string `json:"file"`
	Url       string `json:"url"`
	AuthToken string `json:"auth_token"`
}

// ApplyEnv overrides fields with any non-empty environment variables.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv(EnvUrl); v != "" {
		c.Url = v
	}
	if v := getenv(EnvAuthToken); v != "" {
		c.AuthToken = v
	}
	if v := getenv(EnvFile); v != "" {
		c.File = v
	}
}

// CheckWriteCredential makes sure that OpenDB would produce a writable
// database without touching the network.
func (c Config) CheckWriteCredential() error {
	if c.Url != "" {
		if c.AuthToken == "" {
			return fmt.Errorf("%w: %s is required when a database url is set", ErrMissingCredential, EnvAuthToken)
		}
		return nil
	}
	if c.File == "" {
		return fmt.Errorf("%w: neither a database url nor a database file was specified", ErrMissingCredential)
	}
	return nil
}

func wrapOpenDB(err error) error {
	return fmt.Errorf("open db: %w", err)
}

// OpenDB opens the configured database and applies the schema.
func (c Config) OpenDB() (*sql.DB, error) {
	var database *sql.DB
	var err error
	if c.Url != "" {
		database, err = c.openRemote()
	} else {
		database, err = c.openFile()
	}
	if err != nil {
		return nil, wrapOpenDB(err)
	}

	_, err = database.Exec(Schema)
	if err != nil {
		database.Close()
		return nil, wrapOpenDB(fmt.Errorf("apply schema: %w", err))
	}
	return database, nil
}

func (c Config) openRemote() (*sql.DB, error) {
	link, err := url.Parse(c.Url)
	if err != nil {
		return nil, err
	}
	if c.AuthToken != "" {
		query := link.Query()
		query.Set("authToken", c.AuthToken)
		link.RawQuery = query.Encode()
	}
	return sql.Open("libsql", link.String())
}

func (c Config) openFile() (*sql.DB, error) {
	if c.File == "" {
		return nil, fmt.Errorf("a path was not specified")
	}
	if c.File != ":memory:" {
		err := os.MkdirAll(filepath.Dir(c.File), 0777)
		if err != nil {
			return nil, err
		}
	}

	database, err := sql.Open("sqlite", c.File)
	if err != nil {
		return nil, err
	}
	// see this stackoverflow post for information on why the following
	// lines exist: https://stackoverflow.com/questions/35804884/sqlite-concurrent-writing-performance
	// it also keeps ":memory:" databases on a single connection.
	database.SetMaxOpenConns(1)
	_, err = database.Exec("PRAGMA journal_mode=WAL")
	if err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}
