package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNewLoggerLevels(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, NewLogger("debug").GetLevel())
	assert.Equal(t, logrus.WarnLevel, NewLogger("warn").GetLevel())
	assert.Equal(t, logrus.InfoLevel, NewLogger("nonsense").GetLevel(), "Unparseable level falls back to info")
}

func TestLogErrorEmitsContextFields(t *testing.T) {
	logger := NewLogger("info")
	var buf bytes.Buffer
	logger.SetOutput(&buf)

	LogError(logger, "stock_service.go", "MoveStock", "transfer", fmt.Errorf("boom"))

	var entry map[string]interface{}
	assert.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "stock_service.go", entry["module"])
	assert.Equal(t, "MoveStock", entry["funcName"])
	assert.Equal(t, "transfer", entry["context"])
	assert.Equal(t, "boom", entry["msg"])
	assert.Equal(t, "error", entry["level"])
}
