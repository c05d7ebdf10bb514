package health

import (
	"testing"

	"github.com/aaravmahajanofficial/online-shop/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHealthHandler(t *testing.T) {
	// Arrange
	cfg := &config.Config{
		Database:     config.Database{Host: "localhost", Port: "5432", User: "shop", Password: "secret", Name: "shop", SSLMode: "disable"},
		RedisConnect: config.RedisConnect{Host: "localhost", Port: "6379"},
		Otel:         config.Otel{ServiceName: "online-shop"},
	}

	// Act
	h, err := NewHealthHandler(cfg)

	// Assert
	require.NoError(t, err)
	assert.NotNil(t, h.Handler())
}
