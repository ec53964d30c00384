package dispatcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMode(t *testing.T) {

	tests := []struct {
		name string
		want Mode
	}{
		{"sequential", ModeSequential},
		{"SEQUENTIAL", ModeSequential},
		{"classic", ModeSequential},
		{"awaited", ModeAwaited},
		{"concurrent_awaited", ModeAwaited},
		{"CONCURRENT-AWAITED", ModeAwaited},
		{"iterator", ModeAwaited},
		{" unawaited ", ModeUnawaited},
		{"CONCURRENT_UNAWAITED", ModeUnawaited},
		{"no-await", ModeUnawaited},
		{"no_await", ModeUnawaited},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mode, err := ParseMode(tc.name)
			assert.NoError(t, err)
			assert.Equal(t, tc.want, mode)
		})
	}
}

func TestParseModeUnknown(t *testing.T) {

	_, err := ParseMode("parallel")
	assert.ErrorIs(t, err, ErrUnknownMode)

	_, err = ParseMode("")
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "sequential", ModeSequential.String())
	assert.Equal(t, "awaited", ModeAwaited.String())
	assert.Equal(t, "unawaited", ModeUnawaited.String())
	assert.Equal(t, "Mode(9)", Mode(9).String())
}
