package gbaconfig

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetEnvFallsBackWhenUnset(t *testing.T) {
	require.Equal(t, "fallback", getEnv("GBACONFIG_TEST_DOES_NOT_EXIST", "fallback"))
}

func TestGetEnvIntParsesSetValue(t *testing.T) {
	t.Setenv("GBACONFIG_TEST_INT", "7")
	got, err := getEnvInt("GBACONFIG_TEST_INT", 1)
	require.NoError(t, err)
	require.Equal(t, 7, got)
}

func TestGetEnvIntRejectsGarbage(t *testing.T) {
	t.Setenv("GBACONFIG_TEST_INT_BAD", "not-a-number")
	_, err := getEnvInt("GBACONFIG_TEST_INT_BAD", 1)
	require.Error(t, err)
}

func TestGetEnvBoolFallsBackOnBadValue(t *testing.T) {
	t.Setenv("GBACONFIG_TEST_BOOL_BAD", "not-a-bool")
	require.True(t, getEnvBool("GBACONFIG_TEST_BOOL_BAD", true))
}

func TestGetEnvListSplitsAndTrims(t *testing.T) {
	t.Setenv("GBACONFIG_TEST_LIST", "ppu, bus ,, clock")
	got := getEnvList("GBACONFIG_TEST_LIST", nil)
	require.Equal(t, []string{"ppu", "bus", "clock"}, got)
}

func TestGetEnvListFallsBackWhenUnset(t *testing.T) {
	got := getEnvList("GBACONFIG_TEST_LIST_UNSET", []string{"default"})
	require.Equal(t, []string{"default"}, got)
}

func TestLoadReturnsDefaultsWithoutEnv(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 3, cfg.Scale)
	require.Equal(t, 0, cfg.Frameskip)
	require.False(t, cfg.Turbo)
	require.Len(t, cfg.ComponentsEnabled, 4)
}
