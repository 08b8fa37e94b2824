package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/delphi-research/survey-backend/internal/config"
)

func TestNewBaseConnector(t *testing.T) {
	cfg := config.HTTPClientConfig{
		RequestTimeout:        10 * time.Second,
		ConnTimeout:           2 * time.Second,
		KeepAlive:             30 * time.Second,
		IdleConnTimeout:       90 * time.Second,
		ResponseHeaderTimeout: 5 * time.Second,
		Token:                 "secret",
		Url:                   "http://llm.local",
	}

	connector := NewBaseConnector(cfg, zap.NewNop())

	assert.NotNil(t, connector)
}
