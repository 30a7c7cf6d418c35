package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/katalvlaran/detlog/config"
	"github.com/katalvlaran/detlog/csvmatrix"
	"github.com/stretchr/testify/require"
)

// execute runs the CLI with a fresh default config and captures stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(config.Default())
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()

	return out.String(), err
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "matrix.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestRun_Report(t *testing.T) {
	path := writeFile(t, "2,0\n0,3\n")
	out, err := execute(t, path)
	require.NoError(t, err)

	require.Contains(t, out, "Reading matrix from "+path+" ...")
	require.Contains(t, out, "Matrix size: 2 x 2")
	require.Contains(t, out, "Sign(det)   = 1\n")
	require.Contains(t, out, "log|det|    = 1.79175946922805")
	require.Contains(t, out, "approx determinant = ")
	require.Contains(t, out, "approx determinant = 6.000000000000000e+00\n")
	require.Contains(t, out, "overall (s) = ")
}

func TestRun_SingularAndSwap(t *testing.T) {
	out, err := execute(t, writeFile(t, "1,2\n1,2\n"))
	require.NoError(t, err)
	require.Contains(t, out, "Sign(det)   = 0\n")
	require.Contains(t, out, "log|det|    = -Inf\n")
	require.Contains(t, out, "approx determinant = 0.000000000000000e+00\n")

	out, err = execute(t, writeFile(t, "0,1\n1,0\n"), "--precision", "3")
	require.NoError(t, err)
	require.Contains(t, out, "Sign(det)   = -1\n")
	require.Contains(t, out, "approx determinant = -1.000e+00\n")
}

func TestRun_Verify(t *testing.T) {
	m, err := csvmatrix.Random(30, 5)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, csvmatrix.Write(&buf, m))

	out, err := execute(t, writeFile(t, buf.String()), "--verify")
	require.NoError(t, err)
	require.Contains(t, out, "verify      = ok")
	require.Contains(t, out, "residual    = ")

	out, err = execute(t, writeFile(t, "1,1\n1,1\n"), "--verify")
	require.NoError(t, err)
	require.Contains(t, out, "verify      = ok")
}

func TestRun_Delimiter(t *testing.T) {
	out, err := execute(t, writeFile(t, "4;0\n0;0.25\n"), "-d", ";", "-p", "2")
	require.NoError(t, err)
	require.Contains(t, out, "approx determinant = 1.00e+00\n")
}

func TestRun_Errors(t *testing.T) {
	_, err := execute(t, filepath.Join(t.TempDir(), "missing.csv"))
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = execute(t, writeFile(t, "1,2,3\n4,5,6\n"))
	require.ErrorIs(t, err, csvmatrix.ErrNotSquare)

	_, err = execute(t, writeFile(t, "1,2\n3,4\n"), "--max-dim", "1")
	require.ErrorIs(t, err, csvmatrix.ErrTooLarge)

	_, err = execute(t, writeFile(t, "1\n"), "--precision", "99")
	require.ErrorIs(t, err, config.ErrInvalid)

	_, err = execute(t)
	require.Error(t, err)
}

func TestGenerate(t *testing.T) {
	out, err := execute(t, "generate", "4", "--seed", "3")
	require.NoError(t, err)

	m, err := csvmatrix.Load(strings.NewReader(out))
	require.NoError(t, err)
	require.Equal(t, 4, m.Rows())

	again, err := execute(t, "generate", "4", "--seed", "3")
	require.NoError(t, err)
	require.Equal(t, out, again)

	path := filepath.Join(t.TempDir(), "gen.csv")
	_, err = execute(t, "generate", "3", "--out", path)
	require.NoError(t, err)
	m, err = csvmatrix.LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, 3, m.Rows())

	_, err = execute(t, "generate", "0")
	require.Error(t, err)

	_, err = execute(t, "generate", "2", "--out", filepath.Join(t.TempDir(), "no", "such", "dir.csv"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

// TestGenerate_Scale multiplies every entry, so log|det| moves by n·log|c|.
func TestGenerate_Scale(t *testing.T) {
	base, err := execute(t, "generate", "3", "--seed", "8")
	require.NoError(t, err)
	scaled, err := execute(t, "generate", "3", "--seed", "8", "--scale", "-2")
	require.NoError(t, err)

	a, err := csvmatrix.Load(strings.NewReader(base))
	require.NoError(t, err)
	b, err := csvmatrix.Load(strings.NewReader(scaled))
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			va, _ := a.At(i, j)
			vb, _ := b.At(i, j)
			require.Equal(t, -2*va, vb)
		}
	}
}

// TestLoggerConfig keeps the preset level unless one is given explicitly.
func TestLoggerConfig(t *testing.T) {
	cfg := config.Default()
	require.Equal(t, "warn", loggerConfig(cfg).Level)

	cfg.Development = true
	require.Equal(t, "debug", loggerConfig(cfg).Level)
	require.True(t, loggerConfig(cfg).Development)

	cfg.Level = "error"
	require.Equal(t, "error", loggerConfig(cfg).Level)

	t.Setenv("DETLOG_LOG_DEV", "true")
	fromEnv, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, "debug", loggerConfig(fromEnv).Level)
}
