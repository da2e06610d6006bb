package application

import (
	"io"
	"log/slog"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-solver/internal/config"
	"github.com/rocketscienceinc/tictactoe-solver/testing/suite"
)

func redisConfig(t *testing.T, st *suite.Suite) config.Redis {
	t.Helper()

	host, port, err := net.SplitHostPort(st.Storage.Connection.Options().Addr)
	require.NoError(t, err)

	return config.Redis{Host: host, Port: port}
}

func TestRunApp(t *testing.T) {
	t.Run("Builds the book and verifies a drawn self-play match", func(t *testing.T) {
		ctx, st := suite.New(t)

		// Given: a config pointing at the test Redis
		conf := &config.Config{
			Algorithm: "alphabeta",
			Redis:     redisConfig(t, st),
			Book:      config.Book{Workers: 4},
		}

		// When: running the application
		err := RunApp(st.Logger, conf)

		// Then: it succeeds and leaves the book and the match in Redis
		require.NoError(t, err)

		moves, err := st.Storage.Connection.Keys(ctx, "move:alphabeta:*").Result()
		require.NoError(t, err)
		assert.Len(t, moves, 4520)

		games, err := st.Storage.Connection.Keys(ctx, "game:*").Result()
		require.NoError(t, err)
		assert.Len(t, games, 1)
	})

	t.Run("Skips the book when configured", func(t *testing.T) {
		ctx, st := suite.New(t)

		// Given: a config that skips the book build
		conf := &config.Config{
			Algorithm: "minimax",
			Redis:     redisConfig(t, st),
			Book:      config.Book{Skip: true, Workers: 1},
		}

		// When: running the application
		err := RunApp(st.Logger, conf)

		// Then: only the positions of the self-play match are cached
		require.NoError(t, err)

		moves, err := st.Storage.Connection.Keys(ctx, "move:minimax:*").Result()
		require.NoError(t, err)
		assert.Len(t, moves, 9)
	})

	t.Run("Fails without a redis host", func(t *testing.T) {
		conf := &config.Config{Algorithm: "alphabeta", Book: config.Book{Workers: 1}}

		assert.ErrorIs(t, RunApp(discardLogger(), conf), ErrAddrNotFound)
	})
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
