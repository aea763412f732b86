package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/transaction-analyzer/pkg/transaction"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "test-config.toml")
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o644))
	return configPath
}

func TestLoadConfig(t *testing.T) {
	configPath := writeConfig(t, `
source = "data/transactions.csv"
page_size = 50
strict = true

[sort]
field = "amount"
direction = "asc"

[log]
level = "debug"
format = "json"

[export]
format = "json"
`)

	config, err := LoadConfig(configPath)
	require.NoError(t, err)

	assert.Equal(t, "data/transactions.csv", config.Source)
	assert.Equal(t, 50, config.PageSize)
	assert.True(t, config.Strict)
	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, "json", config.Export.Format)

	sort, err := config.DefaultSort()
	require.NoError(t, err)
	assert.Equal(t, transaction.SortSpec{Field: transaction.SortByAmount, Direction: transaction.Asc}, sort)
}

func TestLoadConfig_Defaults(t *testing.T) {
	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "", config.Source)
	assert.Equal(t, transaction.DefaultPageSize, config.PageSize)
	assert.False(t, config.Strict)
	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "console", config.Log.Format)
	assert.Equal(t, "csv", config.Export.Format)

	sort, err := config.DefaultSort()
	require.NoError(t, err)
	assert.Equal(t, transaction.DefaultSort(), sort)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("TXA_PAGE_SIZE", "5")
	t.Setenv("TXA_SORT_FIELD", "category")

	config, err := LoadConfig(writeConfig(t, `page_size = 30`))
	require.NoError(t, err)

	assert.Equal(t, 5, config.PageSize)
	assert.Equal(t, "category", config.Sort.Field)
}

func TestLoadConfig_InvalidFile(t *testing.T) {
	config, err := LoadConfig("nonexistent.toml")
	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	config, err := LoadConfig(writeConfig(t, `page_size = 0`))
	assert.Nil(t, config)
	assert.True(t, errors.Is(err, transaction.ErrInvalidArgument))

	_, err = LoadConfig(writeConfig(t, "[sort]\nfield = \"merchant\""))
	assert.ErrorContains(t, err, "sort.field")

	_, err = LoadConfig(writeConfig(t, "[log]\nformat = \"xml\""))
	assert.ErrorContains(t, err, "log.format")
}
