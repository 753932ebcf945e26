package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCapabilities(t *testing.T) {
	t.Run("valid names", func(t *testing.T) {
		caps, err := ParseCapabilities([]string{"SMS", "MMS"})
		require.NoError(t, err)
		assert.Equal(t, Capabilities{CapabilityMMS, CapabilitySMS}, caps)
	})

	t.Run("normalizes case and whitespace", func(t *testing.T) {
		caps, err := ParseCapabilities([]string{" sms ", "Call"})
		require.NoError(t, err)
		assert.True(t, caps.Contains(CapabilitySMS))
		assert.True(t, caps.Contains(CapabilityCall))
	})

	t.Run("deduplicates", func(t *testing.T) {
		caps, err := ParseCapabilities([]string{"SMS", "SMS", "TTS"})
		require.NoError(t, err)
		assert.Len(t, caps, 2)
	})

	t.Run("empty input rejected", func(t *testing.T) {
		_, err := ParseCapabilities(nil)
		assert.Error(t, err)
	})

	t.Run("unknown name rejected", func(t *testing.T) {
		_, err := ParseCapabilities([]string{"SMS", "FAX"})
		assert.ErrorContains(t, err, "FAX")
	})
}
