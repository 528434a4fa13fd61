package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lotes-api/pkg/logger"
)

func TestNew_JSONConCampos(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "info", AppName: "lotes", Output: &buf})

	comp := log.Component("scanner")
	comp.Info().Int("days", 7).Msg("lotes por vencer")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "lotes", line["app"])
	assert.Equal(t, "scanner", line["component"])
	assert.Equal(t, float64(7), line["days"])
	assert.Equal(t, "info", line["level"])
}

func TestNew_RespetaNivel(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "warn", Output: &buf})

	log.Info().Msg("no se escribe")
	assert.Zero(t, buf.Len())

	log.Warn().Msg("sí se escribe")
	assert.NotZero(t, buf.Len())
}

func TestNew_DebugYNivelDesconocido(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "debug", Output: &buf})
	log.Debug().Msg("visible")
	assert.Contains(t, buf.String(), `"level":"debug"`)

	buf.Reset()
	log = logger.New(logger.Config{Env: "production", Level: "verbose", Output: &buf})
	log.Debug().Msg("oculto")
	assert.Zero(t, buf.Len(), "un nivel desconocido cae en info")
}
