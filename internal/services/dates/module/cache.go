package module

import (
	"context"

	modkit "datefmt/internal/modkit"
	"datefmt/internal/modkit/repokit"
	perr "datefmt/internal/platform/errors"
	"datefmt/internal/platform/logger"
	"datefmt/internal/platform/store"
	"datefmt/internal/services/dates/cache"
	"datefmt/internal/services/dates/repo"
)

// seams are swapped in tests
var openStore = store.Open

// backend couples a migrated repo with whatever must be released with it
type backend struct {
	repo.Repo
	release func() error
}

func (b backend) Close() error {
	if b.release == nil {
		return nil
	}
	return b.release()
}

// OpenRepo returns the migrated repo for o.Driver
// seams already present on deps are borrowed; otherwise a store is opened
// and the returned close func releases it
func OpenRepo(ctx context.Context, deps modkit.Deps, o Options) (repo.Repo, func() error, error) {
	if o.Driver == DriverMemory {
		return repo.NewMemory(), noClose, nil
	}

	seams := store.Store{PG: deps.PG, Lite: deps.Lite, CH: deps.CH}
	release := noClose
	if !hasSeam(seams, o.Driver) {
		st, err := openStore(ctx, o.StoreConfig(), store.WithLogger(deps.Log))
		if err != nil {
			return nil, nil, err
		}
		seams = *st
		release = func() error { return st.Close(context.Background()) }
	}

	r, err := bindRepo(seams, o)
	if err != nil {
		_ = release()
		return nil, nil, err
	}
	if err := r.Migrate(ctx); err != nil {
		_ = release()
		return nil, nil, perr.Wrap(err, perr.ErrorCodeDB, "migrate format cache")
	}
	return r, release, nil
}

// Opener adapts OpenRepo for a lazily opened cache.Handle
func Opener(deps modkit.Deps, o Options) cache.Opener {
	return func(ctx context.Context) (cache.Backend, error) {
		r, release, err := OpenRepo(ctx, deps, o)
		if err != nil {
			return nil, err
		}
		logger.C(ctx).Debug().Str("driver", o.Driver).Msg("format cache backend ready")
		return backend{Repo: r, release: release}, nil
	}
}

func bindRepo(s store.Store, o Options) (repo.Repo, error) {
	switch o.Driver {
	case DriverPG:
		db := repokit.WithBeginHooks(s.PG, repo.StatementTimeout(o.PGStatementTimeout))
		return repo.Transactional(db, repo.NewPG()), nil
	case DriverSQLite:
		return repokit.MustBind(repo.NewSQLite(), s.Lite), nil
	case DriverClickhouse:
		return repo.NewCH(s.CH), nil
	}
	return nil, perr.InvalidArgf("unknown cache driver %q", o.Driver)
}

func hasSeam(s store.Store, driver string) bool {
	switch driver {
	case DriverPG:
		return s.PG != nil
	case DriverSQLite:
		return s.Lite != nil
	case DriverClickhouse:
		return s.CH != nil
	}
	return false
}

func noClose() error { return nil }
