package kv

import (
	"context"
	"fmt"

	"github.com/erazemk/inventorypro/internal/db"
)

// Storage drivers.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
	DriverMongo  = "mongo"
)

// Drivers lists every storage driver.
var Drivers = []string{DriverMemory, DriverSQLite, DriverRedis, DriverMongo}

// Options selects and configures a storage backend.
type Options struct {
	Driver string
	// Path is the SQLite database file.
	Path string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string

	MongoURI      string
	MongoDatabase string
}

// Open connects to the backend named by opts.Driver.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Driver {
	case DriverMemory:
		return NewMemory(), nil
	case DriverSQLite:
		database, err := db.Open(opts.Path)
		if err != nil {
			return nil, err
		}
		if err := db.EnsureSchema(database); err != nil {
			database.Close()
			return nil, err
		}
		return NewSQLite(database), nil
	case DriverRedis:
		return DialRedis(ctx, opts.RedisAddr, opts.RedisPassword, opts.RedisDB, opts.RedisPrefix)
	case DriverMongo:
		return DialMongo(ctx, opts.MongoURI, opts.MongoDatabase)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", opts.Driver)
	}
}
