package logger_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/Astemirdum/books-service/pkg/logger"
)

func TestNewLogger(t *testing.T) {
	t.Parallel()

	t.Run("stdout", func(t *testing.T) {
		t.Parallel()
		log, err := logger.NewLogger(logger.Log{LogLevel: zapcore.InfoLevel}, "books")
		require.NoError(t, err)
		require.NotNil(t, log)
	})

	t.Run("sink file", func(t *testing.T) {
		t.Parallel()
		sink := filepath.Join(t.TempDir(), "books.log")
		log, err := logger.NewLogger(logger.Log{LogLevel: zapcore.InfoLevel, Sink: sink}, "books")
		require.NoError(t, err)

		log.Info("book created")
		require.NoError(t, log.Sync())

		data, err := os.ReadFile(sink)
		require.NoError(t, err)
		require.Contains(t, string(data), `"msg":"book created"`)
		require.Contains(t, string(data), `"logger":"books"`)
	})

	t.Run("unwritable sink", func(t *testing.T) {
		t.Parallel()
		sink := filepath.Join(t.TempDir(), "missing", "books.log")
		log, err := logger.NewLogger(logger.Log{Sink: sink}, "books")
		require.Error(t, err)
		require.Nil(t, log)
	})
}
