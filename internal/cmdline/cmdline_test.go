package cmdline_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folidity-lang/folidity/internal/cmdline"
)

func TestNewThenCheckRoundTrips(t *testing.T) {
	dir := t.TempDir()
	project := filepath.Join(dir, "proj")

	code := cmdline.Main([]string{"new", project})
	require.Equal(t, 0, code)

	_, err := os.Stat(filepath.Join(project, "contract.fol"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(project, "folidity.yaml"))
	require.NoError(t, err)

	code = cmdline.Main([]string{"check", filepath.Join(project, "contract.fol")})
	assert.Equal(t, 0, code, "scaffolded contract should resolve cleanly")
}

func TestCheckReportsParseErrorsWithNonZeroExit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.fol")
	require.NoError(t, os.WriteFile(path, []byte(`model {{{ not valid`), 0o644))

	code := cmdline.Main([]string{"check", path})
	assert.Equal(t, 1, code)
}

func TestVerifyFlagsUnsatisfiableBounds(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.fol")
	require.NoError(t, os.WriteFile(path, []byte(`
model Account {
  balance: int
} st [balance > 10, balance < 5]
`), 0o644))

	code := cmdline.Main([]string{"verify", path})
	assert.Equal(t, 1, code)
}

func TestCompileOnUnimplementedEmitterReportsFailureNotCrash(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ok.fol")
	require.NoError(t, os.WriteFile(path, []byte(`
model Account {
  balance: int
} st [balance >= 0]
`), 0o644))

	code := cmdline.Main([]string{"compile", path})
	assert.Equal(t, 1, code, "emitter is a stub, compile should fail cleanly rather than write partial output")
}
