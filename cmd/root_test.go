package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const doc = `{"methods":[
  {"name":"com.x.Y.Y","srm":["source"],"parameters":[],"return":"void"},
  "not a method",
  {"name":"com.x.Y.skip","srm":[],"parameters":[]},
  {"name":"com.x.Y.send","srm":["source","sink"],"parameters":["int","java.lang.String"]}
]}`

const want = "<com.x: void <init>()> -> _SOURCE_\n<com.x.Y: void send(int,java.lang.String)> -> _BOTH_\n"

func resetFlags(cmds ...*cobra.Command) {
	for _, c := range cmds {
		c.SilenceUsage = false
		reset := func(f *pflag.Flag) {
			f.Value.Set(f.DefValue)
			f.Changed = false
		}
		c.Flags().VisitAll(reset)
		c.PersistentFlags().VisitAll(reset)
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd, watchCmd, versionCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func writeInput(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	input := filepath.Join(dir, "srm.json")
	require.NoError(t, os.WriteFile(input, []byte(doc), 0o644))
	return dir, input
}

func TestRootConvertsToOutput(t *testing.T) {
	dir, input := writeInput(t)
	output := filepath.Join(dir, "out.txt")

	_, err := run(t, "-i", input, "--output", output)
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, want, string(data))
}

func TestRootDefaultOutput(t *testing.T) {
	_, _ = writeInput(t)

	_, err := run(t, "--input", "srm.json")
	require.NoError(t, err)

	data, err := os.ReadFile("srm.flowdroid.txt")
	require.NoError(t, err)
	assert.Equal(t, want, string(data))
}

func TestRootSuffixFromConfig(t *testing.T) {
	dir, _ := writeInput(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "swan2flowdroid.yaml"), []byte("output:\n  suffix: .sas.txt\n"), 0o644))

	_, err := run(t, "-i", "srm.json")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "srm.sas.txt"))
}

func TestRootMissingInput(t *testing.T) {
	_, _ = writeInput(t)

	out, err := run(t, "-o", "out.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `required flag(s) "input" not set`)
	assert.Contains(t, out, "Usage:")
}

func TestRootUnreadableInput(t *testing.T) {
	dir, _ := writeInput(t)

	out, err := run(t, "-i", filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading SWAN file")
	assert.NotContains(t, out, "Usage:")
}

func TestRootRefusesToOverwriteInput(t *testing.T) {
	_, input := writeInput(t)

	_, err := run(t, "-i", input, "-o", input)
	require.Error(t, err)

	data, err := os.ReadFile(input)
	require.NoError(t, err)
	assert.Equal(t, doc, string(data))
}

func TestHelp(t *testing.T) {
	out, err := run(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "--input")
	assert.Contains(t, out, "--output")
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "swan2flowdroid ")
}
