package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kbsecret/kbsecret/internal/generator"
	"github.com/kbsecret/kbsecret/internal/session"
)

func TestMain(m *testing.M) {
	os.Setenv("NO_COLOR", "1")
	os.Exit(m.Run())
}

// exitSignal unwinds a command the way os.Exit would end the process.
type exitSignal struct{ code int }

type result struct {
	ctx    *Context
	stdout bytes.Buffer
	stderr bytes.Buffer
	exited bool
	code   int
}

func (r *result) lines() []string {
	return strings.Split(strings.TrimRight(r.stdout.String(), "\n"), "\n")
}

// run builds a context over argv and runs setup under its guard, capturing
// streams and the exit code.
func run(t *testing.T, argv []string, setup func(c *Context) error, opts ...Option) *result {
	t.Helper()
	res := &result{code: -1}
	base := []Option{
		WithStreams(strings.NewReader(""), &res.stdout, &res.stderr),
		WithExit(func(code int) { panic(exitSignal{code}) }),
	}
	res.ctx = New(argv, append(base, opts...)...)
	res.capture(func() { res.ctx.Guard(func() error { return setup(res.ctx) }) })
	return res
}

// then runs more work on an existing context, e.g. Info or Bye calls.
func (r *result) then(fn func(c *Context)) *result {
	r.capture(func() { fn(r.ctx) })
	return r
}

func (r *result) capture(fn func()) {
	defer func() {
		if v := recover(); v != nil {
			sig, ok := v.(exitSignal)
			if !ok {
				panic(v)
			}
			r.exited = true
			r.code = sig.code
		}
	}()
	fn()
}

func openSessions(t *testing.T, labels ...string) *session.Store {
	t.Helper()
	var ds []session.Descriptor
	for _, l := range labels {
		ds = append(ds, session.Descriptor{Label: l})
	}
	s, err := session.Open(filepath.Join(t.TempDir(), "store.db"), ds, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

type fakeGenerators map[string]*generator.Profile

func (f fakeGenerators) Generator(name string) (*generator.Profile, error) {
	if p, ok := f[name]; ok {
		return p, nil
	}
	return nil, generator.NotFound(name)
}

func unsetenv(key string) error {
	return os.Unsetenv(key)
}
