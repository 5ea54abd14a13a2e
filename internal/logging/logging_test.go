package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_EmptyLevelIsNop(t *testing.T) {
	logger, err := New("", "")
	require.NoError(t, err)
	require.NotNil(t, logger)
	logger.Info("dropped")
}

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "broadcast.log")
	logger, err := New("debug", path)
	require.NoError(t, err)

	logger.Debug("burst", zap.String("strength", "high"))
	_ = logger.Sync()

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(b)
	require.True(t, strings.Contains(out, `"msg":"burst"`), out)
	require.True(t, strings.Contains(out, `"strength":"high"`), out)
	require.True(t, strings.Contains(out, `"session":"`), out)
}

func TestNew_RejectsBadLevel(t *testing.T) {
	_, err := New("loud", filepath.Join(t.TempDir(), "x.log"))
	require.Error(t, err)
}

func TestNew_RequiresPath(t *testing.T) {
	_, err := New("info", "")
	require.Error(t, err)
}
