package secret

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef-settings"

func TestNewBoxRejectsShortSecret(t *testing.T) {
	_, err := NewBox("short")
	assert.Error(t, err)
}

func TestBoxSealOpenRoundTrip(t *testing.T) {
	box, err := NewBox(testSecret)
	require.NoError(t, err)
	require.True(t, box.Enabled())

	sealed, err := box.Seal(`{"theme":"dark"}`)
	require.NoError(t, err)
	assert.NotContains(t, sealed, "dark")

	again, err := box.Seal(`{"theme":"dark"}`)
	require.NoError(t, err)
	assert.NotEqual(t, sealed, again, "nonce must differ per seal")

	opened, err := box.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, `{"theme":"dark"}`, opened)
}

func TestBoxSameSecretDerivesSameKey(t *testing.T) {
	a, err := NewBox(testSecret)
	require.NoError(t, err)
	b, err := NewBox(testSecret)
	require.NoError(t, err)

	sealed, err := a.Seal(`{"x":1}`)
	require.NoError(t, err)
	opened, err := b.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, `{"x":1}`, opened)
}

func TestBoxPassThrough(t *testing.T) {
	box, err := NewBox("")
	require.NoError(t, err)
	assert.False(t, box.Enabled())

	sealed, err := box.Seal(`{"a":"b"}`)
	require.NoError(t, err)
	assert.Equal(t, `{"a":"b"}`, sealed)

	opened, err := box.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, `{"a":"b"}`, opened)
}

func TestBoxOpenLegacyPlaintextAndGarbage(t *testing.T) {
	box, err := NewBox(testSecret)
	require.NoError(t, err)

	opened, err := box.Open(`{"legacy":true}`)
	require.NoError(t, err)
	assert.Equal(t, `{"legacy":true}`, opened)

	_, err = box.Open("not base64!!")
	assert.Error(t, err)
}
