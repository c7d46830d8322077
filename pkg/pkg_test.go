package pkg

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SAP-F-2025/career-service/internal/config"
)

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)

	t.Run("connects", func(t *testing.T) {
		client, err := NewRedisClient(&config.Config{RedisURL: "redis://" + mr.Addr() + "/0"})
		require.NoError(t, err)
		defer client.Close()
		assert.Equal(t, mr.Addr(), client.Options().Addr)
	})

	t.Run("invalid url", func(t *testing.T) {
		_, err := NewRedisClient(&config.Config{RedisURL: "not-a-url"})
		assert.Error(t, err)
	})
}

func TestDialectorFor(t *testing.T) {
	tests := []struct {
		name    string
		driver  string
		want    string
		wantErr bool
	}{
		{name: "postgres", driver: "postgres", want: "postgres"},
		{name: "mysql", driver: "mysql", want: "mysql"},
		{name: "unknown", driver: "sqlite", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := dialectorFor(config.DatabaseConfig{Driver: tt.driver, Host: "localhost", Port: 1})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Name())
		})
	}
}
