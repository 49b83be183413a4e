package repokit

// Binder turns a Queryer into a cache repo; the same binder serves the pool
// and each transaction, which is how Transactional rebinds inside Tx
type Binder[T any] interface {
	Bind(Queryer) T
}

// BindFunc adapts a constructor to Binder
type BindFunc[T any] func(Queryer) T

func (f BindFunc[T]) Bind(q Queryer) T { return f(q) }

// MustBind binds q, panicking on a nil Queryer so a missing store surfaces at
// wiring time rather than on the first cache call
func MustBind[T any](b Binder[T], q Queryer) T {
	if q == nil {
		panic("repokit: MustBind got a nil Queryer")
	}
	return b.Bind(q)
}
