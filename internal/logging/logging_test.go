package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithOutputWritesJSONWithComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithOutput("debug", &buf)

	Component(logger, "order").WithField("order_id", 7).Info("order created")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "order", entry["component"])
	assert.Equal(t, "order created", entry["msg"])
	assert.EqualValues(t, 7, entry["order_id"])
}

func TestUnknownLevelFallsBackToInfo(t *testing.T) {
	logger := NewWithOutput("loud", &bytes.Buffer{})
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
}
