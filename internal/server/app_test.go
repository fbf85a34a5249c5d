package server

import (
	"bytes"
	"context"
	"testing"

	"github.com/dmitrijs2005/daylog/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewApp_BadDSN(t *testing.T) {
	_, err := NewApp(context.Background(), &config.Config{DatabaseDSN: "::not a dsn::"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db init error")
}

func TestNewLogger_Level(t *testing.T) {
	var buf bytes.Buffer

	newLogger(&buf, false).Debug(context.Background(), "hidden")
	assert.Empty(t, buf.String())

	newLogger(&buf, true).Debug(context.Background(), "shown", "k", "v")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
	assert.Contains(t, buf.String(), `"k":"v"`)
}
