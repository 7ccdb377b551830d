package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yago-123/ringq"
)

func runRoot(t *testing.T, stdin string, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestTopkArgs(t *testing.T) {
	out := runRoot(t, "", "topk", "-k", "3", "5", "0", "9", "7", "2")
	assert.Equal(t, "5\n7\n9\n", out)
}

func TestTopkStdin(t *testing.T) {
	out := runRoot(t, "15 3 8\n4\n\n 16 23 42\n", "topk", "-k", "4")
	assert.Equal(t, "15\n16\n23\n42\n", out)
}

func TestTopkRejectsGarbage(t *testing.T) {
	rootCmd.SetArgs([]string{"topk", "-k", "2", "1", "x"})
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	assert.Error(t, rootCmd.Execute())
}

func newCapacityCmd() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Flags().IntP("capacity", "k", 0, "")
	return cmd
}

func TestResolveCapacity(t *testing.T) {
	t.Chdir(t.TempDir())

	t.Setenv(capacityEnv, "")
	k, err := resolveCapacity(newCapacityCmd())
	require.NoError(t, err)
	assert.Equal(t, ringq.DefaultCapacity, k)

	t.Setenv(capacityEnv, "25")
	k, err = resolveCapacity(newCapacityCmd())
	require.NoError(t, err)
	assert.Equal(t, 25, k)

	cmd := newCapacityCmd()
	require.NoError(t, cmd.Flags().Set("capacity", "7"))
	k, err = resolveCapacity(cmd)
	require.NoError(t, err)
	assert.Equal(t, 7, k, "flag wins over environment")

	t.Setenv(capacityEnv, "lots")
	_, err = resolveCapacity(newCapacityCmd())
	assert.Error(t, err)
}

func TestBenchValues(t *testing.T) {
	asc, err := benchValues("asc", 4, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3}, asc)

	desc, err := benchValues("desc", 4, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 3, 2, 1}, desc)

	r1, err := benchValues("rand", 8, 7)
	require.NoError(t, err)
	r2, err := benchValues("rand", 8, 7)
	require.NoError(t, err)
	assert.Equal(t, r1, r2, "same seed, same values")

	_, err = benchValues("zigzag", 4, 1)
	assert.Error(t, err)
	_, err = benchValues("asc", -1, 1)
	assert.Error(t, err)
}

func TestBenchRuns(t *testing.T) {
	runRoot(t, "", "bench", "-k", "5", "-n", "1000", "-o", "rand")
}
