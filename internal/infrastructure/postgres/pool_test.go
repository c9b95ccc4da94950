package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anbar/anbar-api/pkg/config"
)

func TestPoolConfig_LimitesDeConexiones(t *testing.T) {
	pc, err := poolConfig(context.Background(), config.DBConfig{DatabaseURL: "postgres://u:p@127.0.0.1:5432/anbar"})
	require.NoError(t, err)
	assert.EqualValues(t, defaultMaxConns, pc.MaxConns)
	assert.EqualValues(t, 2, pc.MinConns)
	assert.NotNil(t, pc.AfterConnect)

	pc, err = poolConfig(context.Background(), config.DBConfig{DatabaseURL: "postgres://u:p@127.0.0.1:5432/anbar", MaxConns: 1})
	require.NoError(t, err)
	assert.EqualValues(t, 1, pc.MaxConns)
	assert.EqualValues(t, 1, pc.MinConns, "MinConns no supera MaxConns")
}

func TestPoolConfig_DSNInvalido(t *testing.T) {
	_, err := poolConfig(context.Background(), config.DBConfig{DatabaseURL: "postgres://%zz"})
	assert.Error(t, err)
}

func TestWithIPv4Host_LiteralesIP(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "postgres://u@10.0.0.5:5432/db", withIPv4Host(ctx, "postgres://u@10.0.0.5/db"))
	assert.Equal(t, "postgres://u@[::1]:5432/db", withIPv4Host(ctx, "postgres://u@[::1]:5432/db"), "IPv6 sin IPv4 queda intacto")
	assert.Equal(t, "host=x", withIPv4Host(ctx, "host=x"))
}
