package unittest

import (
	"os"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// Logger returns a logger writing to the test output. Set SOLO_TEST_LOG=1 to see
// the output of passing tests too.
func Logger() zerolog.Logger {
	if os.Getenv("SOLO_TEST_LOG") == "" {
		return zerolog.Nop()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(zerolog.DebugLevel).
		With().
		Timestamp().
		Logger()
}

// RequireReturnsBefore fails the test if f is still running after duration.
// f runs on its own goroutine, so it must not call t.FailNow.
func RequireReturnsBefore(t testing.TB, f func(), duration time.Duration, message string) {
	done := make(chan struct{})
	go func() {
		f()
		close(done)
	}()

	select {
	case <-time.After(duration):
		require.Fail(t, "function did not return in time", message)
	case <-done:
	}
}

// TempDir creates a directory that is NOT removed when the test ends.
func TempDir(t testing.TB) string {
	dir, err := os.MkdirTemp("", "solo-machine-test-")
	require.NoError(t, err)
	return dir
}

func RunWithTempDir(t testing.TB, f func(string)) {
	dir := TempDir(t)
	defer os.RemoveAll(dir)
	f(dir)
}

// BadgerDB opens a database in dir with badger's own logging silenced.
func BadgerDB(t testing.TB, dir string) *badger.DB {
	db, err := badger.Open(badger.DefaultOptions(dir).WithLogger(nil))
	require.NoError(t, err)
	return db
}

func RunWithBadgerDB(t testing.TB, f func(*badger.DB)) {
	RunWithTempDir(t, func(dir string) {
		db := BadgerDB(t, dir)
		defer db.Close()
		f(db)
	})
}
