// Package modkit provides module wiring and core deps
package modkit

import (
	"datefmt/internal/modkit/repokit"
	"datefmt/internal/platform/config"
	"datefmt/internal/platform/logger"
	"datefmt/internal/platform/store"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log  logger.Logger
	Cfg  config.Conf
	PG   repokit.TxRunner
	Lite repokit.TxRunner
	CH   store.Clickhouse
}

// FromStore copies the opened backends of st into deps
func FromStore(log logger.Logger, cfg config.Conf, st *store.Store) Deps {
	d := Deps{Log: log, Cfg: cfg}
	if st != nil {
		d.PG, d.Lite, d.CH = st.PG, st.Lite, st.CH
	}
	return d
}
