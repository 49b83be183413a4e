package testkit

import "testing"

// seams is held by one Serial test at a time, from the call until cleanup
var seams = make(chan struct{}, 1)

// Serial blocks until no other Serial test in the binary is running; use it
// before Swap so parallel tests never see each other's stubs
func Serial(t testing.TB) {
	t.Helper()
	seams <- struct{}{}
	t.Cleanup(func() { <-seams })
}

// Swap points *target at replacement until t and its subtests finish
func Swap[T any](t testing.TB, target *T, replacement T) {
	t.Helper()
	prev := *target
	*target = replacement
	t.Cleanup(func() { *target = prev })
}
