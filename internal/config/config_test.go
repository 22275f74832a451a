package config_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-age/internal/config"
)

// TestConstants_Integrity ensures critical constants are not empty or malformed.
func TestConstants_Integrity(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"AppName", config.AppName},
		{"AppID", config.AppID},
		{"CLIName", config.CLIName},
		{"Version", config.Version},
		{"UserAgent", config.UserAgent},
		{"ICalVersion", config.ICalVersion},
		{"ICalProdid", config.ICalProdid},
		{"DefaultPort", config.DefaultPort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEmpty(t, tt.value, "Critical constant %s should not be empty", tt.name)
		})
	}
}

// TestAgePolicy pins the documented policy values.
func TestAgePolicy(t *testing.T) {
	assert.Equal(t, 1900, config.MinimumValidYear)
	assert.Equal(t, 500*time.Millisecond, config.DebounceInterval)
	assert.Equal(t, time.Second, config.TickInterval)
}

// TestZodiacNames_Distinct guards against copy-paste mistakes in the sign table.
func TestZodiacNames_Distinct(t *testing.T) {
	names := []string{
		config.ZodiacCapricorn, config.ZodiacAquarius, config.ZodiacPisces,
		config.ZodiacAries, config.ZodiacTaurus, config.ZodiacGemini,
		config.ZodiacCancer, config.ZodiacLeo, config.ZodiacVirgo,
		config.ZodiacLibra, config.ZodiacScorpio, config.ZodiacSagittarius,
	}

	seen := make(map[string]bool)
	for _, n := range names {
		assert.False(t, seen[n], "Duplicate sign %s", n)
		assert.NotEqual(t, config.ZodiacUnknown, n)
		seen[n] = true
	}
}

// TestUserAgent_Format ensures the UA string follows the standard format.
func TestUserAgent_Format(t *testing.T) {
	assert.True(t, strings.HasPrefix(config.UserAgent, "Go-Age/"), "UserAgent must start with AppName/")
}

// TestTimeoutsAndLimits ensures that operational constraints are reasonable.
func TestTimeoutsAndLimits(t *testing.T) {
	t.Parallel()

	assert.Greater(t, config.HTTPTimeout, 0*time.Second, "HTTPTimeout must be positive")
	assert.LessOrEqual(t, config.HTTPTimeout, 2*time.Minute, "HTTPTimeout should not be excessively long")
	assert.Greater(t, config.ShutdownTimeout, 0*time.Second, "ShutdownTimeout must be positive")

	assert.Greater(t, config.MaxHTTPResponseSize, 0, "MaxHTTPResponseSize must be positive")
	assert.GreaterOrEqual(t, int64(config.MaxHTTPResponseSize), int64(50*1024*1024), "MaxHTTPResponseSize should be at least 50MB for real-world usage")
	assert.Less(t, int64(config.MaxHTTPResponseSize), int64(1*1024*1024*1024), "MaxHTTPResponseSize should stay under 1GB to protect RAM")
}

func TestSupportedLanguages(t *testing.T) {
	assert.Contains(t, config.SupportedLanguages, config.DefaultLanguage)
}
