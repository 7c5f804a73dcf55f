package database

import (
	"testing"

	"trivia-api/internal/config"

	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDriverName(t *testing.T) {
	name, err := DriverName(config.DriverPostgres)
	require.NoError(t, err)
	assert.Equal(t, "pgx", name)

	name, err = DriverName(config.DriverOracle)
	require.NoError(t, err)
	assert.Equal(t, "oracle", name)

	_, err = DriverName("mysql")
	assert.Error(t, err)
}

func TestDialectOf(t *testing.T) {
	assert.Equal(t, DialectPostgres, DialectOf(config.DriverPostgres))
	assert.Equal(t, DialectOracle, DialectOf(config.DriverOracle))
}

func TestEmbeddedMigrations(t *testing.T) {
	source, err := iofs.New(migrationsFS, "migrations")
	require.NoError(t, err)
	defer source.Close()

	first, err := source.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), first)

	next, err := source.Next(first)
	require.NoError(t, err)
	assert.Equal(t, uint(2), next)

	_, _, err = source.ReadUp(next)
	assert.NoError(t, err)
	_, _, err = source.ReadDown(next)
	assert.NoError(t, err)
}

func TestMigrate_UnknownDirection(t *testing.T) {
	_, err := Migrate(nil, "sideways", 0)
	assert.Error(t, err)
}
