package cli_behavior_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/techgridgo/internal/cli"
)

func TestParse_Defaults(t *testing.T) {
	var out bytes.Buffer
	cfg, shouldExit, err := cli.Parse([]string{"--library", "./library"}, &out)
	require.NoError(t, err)
	require.False(t, shouldExit)
	require.NotNil(t, cfg)

	assert.Equal(t, "./library", cfg.LibraryPath)
	assert.Empty(t, cfg.ScenarioPath)
	assert.Empty(t, cfg.TechName)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 4, cfg.WorkerCount)
}

func TestParse_PositionalLibraryPath(t *testing.T) {
	var out bytes.Buffer
	cfg, shouldExit, err := cli.Parse([]string{"./library"}, &out)
	require.NoError(t, err)
	require.False(t, shouldExit)
	assert.Equal(t, "./library", cfg.LibraryPath)
}

func TestParse_ShorthandFlag(t *testing.T) {
	var out bytes.Buffer
	cfg, _, err := cli.Parse([]string{"-l", "./library"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "./library", cfg.LibraryPath)
}

func TestParse_AllOptions(t *testing.T) {
	var out bytes.Buffer
	cfg, shouldExit, err := cli.Parse([]string{
		"--library", "./library",
		"--scenario", "./scenario",
		"--tech", "ccgt",
		"--log-format", "json",
		"--log-level", "debug",
		"--workers", "8",
	}, &out)
	require.NoError(t, err)
	require.False(t, shouldExit)

	assert.Equal(t, "./scenario", cfg.ScenarioPath)
	assert.Equal(t, "ccgt", cfg.TechName)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 8, cfg.WorkerCount)
}

func TestParse_NoArgsPrintsUsage(t *testing.T) {
	var out bytes.Buffer
	cfg, shouldExit, err := cli.Parse(nil, &out)
	require.NoError(t, err)
	assert.True(t, shouldExit)
	assert.Nil(t, cfg)
	assert.Contains(t, out.String(), "Usage:")
}

func TestParse_HelpFlag(t *testing.T) {
	var out bytes.Buffer
	cfg, shouldExit, err := cli.Parse([]string{"-h"}, &out)
	require.NoError(t, err)
	assert.True(t, shouldExit)
	assert.Nil(t, cfg)
	assert.Contains(t, out.String(), "TechGridGo")
}

func TestParse_InvalidValues(t *testing.T) {
	cases := []struct {
		name string
		args []string
		want string
	}{
		{"unknown flag", []string{"--bogus"}, "flag provided but not defined"},
		{"bad log format", []string{"--library", "x", "--log-format", "xml"}, "invalid log-format"},
		{"bad log level", []string{"--library", "x", "--log-level", "verbose"}, "invalid log-level"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			_, _, err := cli.Parse(tc.args, &out)
			require.Error(t, err)

			var exitErr *cli.ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, 2, exitErr.Code)
			assert.Contains(t, exitErr.Message, tc.want)
		})
	}
}
