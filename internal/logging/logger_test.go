package logging_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/quintans/go-trigger/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(&buf, "warn", logging.FormatJSON)
	require.NoError(t, err)

	logger.Info("hidden %d", 1)
	logger.Warn("trigger '%s' exhausted", "nightly")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "warn", line["level"])
	assert.Equal(t, "trigger 'nightly' exhausted", line["message"])
}

func TestConsoleLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(&buf, "", logging.FormatConsole)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Error("boom: %v", "bad cron")
	assert.Contains(t, buf.String(), "boom: bad cron")
	assert.NotContains(t, buf.String(), "hidden")
}

func TestInvalidLogger(t *testing.T) {
	_, err := logging.New(&bytes.Buffer{}, "loud", logging.FormatJSON)
	require.Error(t, err)

	_, err = logging.New(&bytes.Buffer{}, "info", "xml")
	require.Error(t, err)
}

func TestNop(t *testing.T) {
	logging.Nop().Error("nothing %s", "happens")
}
