package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	method = "all"
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRoot_AllMethods(t *testing.T) {
	out, err := execute(t, "21")
	require.NoError(t, err)
	assert.Contains(t, out, "closed_form(21) = 231")
	assert.Contains(t, out, "recursive(21) = 231")
	assert.Contains(t, out, "iterative(21) = 231")
}

func TestRoot_SingleMethod(t *testing.T) {
	out, err := execute(t, "--method", "iterative", "5", "10")
	require.NoError(t, err)
	assert.Equal(t, "iterative(5) = 15\niterative(10) = 55\n", out)
}

func TestRoot_InvalidArgument(t *testing.T) {
	_, err := execute(t, "abc")
	assert.Error(t, err)
}

func TestRoot_UnknownMethod(t *testing.T) {
	_, err := execute(t, "--method", "magic", "3")
	assert.Error(t, err)
}
