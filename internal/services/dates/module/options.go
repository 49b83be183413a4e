package module

import (
	"time"

	"datefmt/internal/platform/config"
	"datefmt/internal/platform/store"
	"datefmt/internal/services/dates/domain"
)

// cache drivers
const (
	DriverSQLite     = "sqlite"
	DriverPG         = "pg"
	DriverClickhouse = "clickhouse"
	DriverMemory     = "memory"
)

// Options controls the cache backend and formatting defaults
type Options struct {
	Driver     string
	SQLitePath string
	LogSQL     bool

	PGURL              string
	PGMaxConns         int
	PGSlowMs           int
	PGStatementTimeout time.Duration

	CHURL string

	Numeric  domain.NumericPolicy
	Defaults domain.FormatRequest
	FanOut   int

	// MaxInFlight caps concurrent /dates requests, 0 disables
	MaxInFlight int
}

// FromConfig reads DATEFMT_* values from process config/env
func FromConfig(cfg config.Conf) Options {
	dc := cfg.Prefix("DATEFMT_")
	cc := dc.Prefix("CACHE_")
	return Options{
		Driver:             cc.MayEnum("DRIVER", DriverSQLite, DriverSQLite, DriverPG, DriverClickhouse, DriverMemory),
		SQLitePath:         cc.MayString("SQLITE_PATH", ".cache/format-date-cache.db"),
		LogSQL:             cc.MayBool("LOG_SQL", false),
		PGURL:              cc.MayString("PG_DBURL", ""),
		PGMaxConns:         cc.MayInt("PG_MAX_CONNS", 4),
		PGSlowMs:           cc.MayInt("PG_SLOW_MS", 200),
		PGStatementTimeout: cc.MayDuration("PG_STATEMENT_TIMEOUT", 2*time.Second),
		CHURL:              cc.MayString("CH_DBURL", ""),
		Numeric: domain.NumericPolicy(dc.MayEnum("NUMERIC_POLICY", string(domain.NumericText),
			domain.NumericPolicies()...)),
		Defaults: domain.FormatRequest{
			FormatString: dc.MayString("DEFAULT_FORMAT", ""),
			FromNow:      dc.MayBool("DEFAULT_FROM_NOW", false),
			Difference:   dc.MayString("DEFAULT_DIFFERENCE", ""),
			Locale:       dc.MayString("DEFAULT_LOCALE", domain.DefaultLocale),
		},
		FanOut:      dc.MayInt("FAN_OUT", 8),
		MaxInFlight: dc.MayInt("MAX_IN_FLIGHT", 0),
	}
}

// StoreConfig enables only the backend the driver needs
func (o Options) StoreConfig() store.Config {
	c := store.Config{AppName: "datefmt"}
	switch o.Driver {
	case DriverPG:
		c.PG = store.PGConfig{
			Enabled:     true,
			URL:         o.PGURL,
			MaxConns:    int32(o.PGMaxConns),
			SlowQueryMs: o.PGSlowMs,
			LogSQL:      o.LogSQL,
		}
	case DriverClickhouse:
		c.CH = store.CHConfig{Enabled: true, URL: o.CHURL, Role: "cache"}
	case DriverSQLite:
		c.Lite = store.LiteConfig{Enabled: true, Path: o.SQLitePath, LogSQL: o.LogSQL}
	}
	return c
}
