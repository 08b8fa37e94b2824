package keyboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCallbackRoundTrip(t *testing.T) {
	data, err := ParseCallback(EncodeCallback(ActionSurvey, "123e4567-e89b-12d3-a456-426614174000"))
	require.NoError(t, err)

	assert.Equal(t, ActionSurvey, data.Action)
	assert.Equal(t, "123e4567-e89b-12d3-a456-426614174000", data.Value)
}

func TestParseCallbackKeepsColonsInValue(t *testing.T) {
	data, err := ParseCallback("act:a:b")
	require.NoError(t, err)

	assert.Equal(t, "act", data.Action)
	assert.Equal(t, "a:b", data.Value)
}

func TestParseCallbackRejectsMalformed(t *testing.T) {
	_, err := ParseCallback("no-separator")
	assert.Error(t, err)
}

func TestScaleValue(t *testing.T) {
	v, err := ScaleValue("4")
	require.NoError(t, err)
	assert.Equal(t, 4, v)

	_, err = ScaleValue("four")
	assert.Error(t, err)
}

func TestOptionIndexBounds(t *testing.T) {
	i, err := OptionIndex("1", 3)
	require.NoError(t, err)
	assert.Equal(t, 1, i)

	_, err = OptionIndex("3", 3)
	assert.Error(t, err)

	_, err = OptionIndex("-1", 3)
	assert.Error(t, err)
}
