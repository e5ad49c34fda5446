package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/faiface/beep/wav"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/simon/internal/config"
	"github.com/iburimskiy/simon/internal/simon"
)

// run executes the root command with args and returns what it printed.
// Flags are put back to their defaults when the test ends.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		resetFlags(rootCmd)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func TestSequenceCommand(t *testing.T) {
	out, err := run(t, "sequence", "--seed", "7", "--length", "6", "--log-level", "error")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 6)

	e := simon.NewSeededEngine(7)
	for i := 0; i < 6; i++ {
		e.Extend()
	}
	var names []string
	for _, c := range e.Sequence() {
		names = append(names, c.String())
	}
	assert.Equal(t, "  5  "+strings.Join(names, " ")+"  NICE!", lines[5])
	assert.True(t, strings.HasPrefix(lines[0], "  0  "+names[0]))
}

func TestSequenceCommand_RequiresSeed(t *testing.T) {
	_, err := run(t, "sequence", "--seed", "0", "--log-level", "error")
	assert.ErrorContains(t, err, "seed")
}

func TestToneCommand_WritesWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "red.wav")
	out, err := run(t, "tone", "red", "--out", path, "--duration", "350ms", "--format", "narrow", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "440.00 Hz, 100 samples per period")

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	s, format, err := wav.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, format.SampleRate.N(350e6), s.Len())
}

func TestToneCommand_Errors(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, "tone", "purple", "--out", filepath.Join(dir, "p.wav"), "--log-level", "error")
	assert.ErrorContains(t, err, "unknown color")

	_, err = run(t, "tone", "lose", "--out", filepath.Join(dir, "l.wav"), "--format", "float", "--log-level", "error")
	assert.Error(t, err)

	_, err = run(t, "tone", "blue", "--out", filepath.Join(dir, "b.wav"), "--format", "wide", "--duration", "0s", "--log-level", "error")
	assert.ErrorContains(t, err, "duration")
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "simon.yaml")
	out, err := run(t, "config", "init", path, "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, path)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Defaults(), cfg)

	_, err = run(t, "config", "init", path, "--log-level", "error")
	assert.ErrorContains(t, err, "already exists")

	_, err = run(t, "config", "init", path, "--force", "--log-level", "error")
	assert.NoError(t, err)
}

func TestRun_ResetsFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "simon.yaml")
	t.Run("force", func(t *testing.T) {
		_, err := run(t, "config", "init", path, "--force", "--log-level", "error")
		require.NoError(t, err)
		_, err = run(t, "sequence", "--seed", "3", "--length", "2", "--log-level", "error")
		require.NoError(t, err)
	})

	assert.False(t, configForce)
	assert.Equal(t, 10, seqLength)
	assert.Zero(t, seqSeed)
	assert.Empty(t, logLevel)

	_, err := run(t, "config", "init", path, "--log-level", "error")
	assert.ErrorContains(t, err, "already exists")
}

func TestSessionSource(t *testing.T) {
	assert.Nil(t, sessionSource(0))

	next := sessionSource(99)
	a, b := simon.NewEngine(next()), simon.NewEngine(next())
	for i := 0; i < 8; i++ {
		a.Extend()
		b.Extend()
	}
	assert.Equal(t, a.Sequence(), b.Sequence())
}
