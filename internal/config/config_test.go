package config

import (
    "os"
    "path/filepath"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestDefaultContent(t *testing.T) {
    c := DefaultContent()
    assert.Equal(t, "JAKARTA FEST", c.Hero.Title)
    assert.Equal(t, "15-17 Desember 2024", c.Hero.Date)
    require.Len(t, c.GuestStars.Artists, 6)
    assert.Equal(t, "Pamungkas", c.GuestStars.Artists[5].Name)
    assert.Equal(t, "17:00 - 18:15", c.GuestStars.Artists[5].Time)
    assert.Equal(t, " pengunjung per hari", c.Venue.CapacityDesc)
    assert.Equal(t, "Regular - Rp 350.000", c.Form.FallbackTickets[0].Label)
    assert.Equal(t, "08xxxxxxxxxx", c.Form.Field("phone").Placeholder)
    assert.Equal(t, "25", c.Form.Field("age").Placeholder)
}

func TestLoadContent_RejectsUnknownKeys(t *testing.T) {
    path := filepath.Join(t.TempDir(), "content.yaml")
    require.NoError(t, os.WriteFile(path, []byte("hero:\n  titel: X\n"), 0o644))
    _, err := LoadContent(path)
    assert.Error(t, err)
}

func TestLoadRateLimitConfig_Normalises(t *testing.T) {
    t.Setenv("RATE_LIMIT_CAPACITY", "0")
    t.Setenv("RATE_LIMIT_REFILL_EVERY", "2s")
    t.Setenv("RATE_LIMIT_TTL", "1s")
    rl := LoadRateLimitConfig()
    assert.Equal(t, 1, rl.Capacity)
    assert.Equal(t, 1, rl.RefillTokens)
    assert.Equal(t, 2*time.Second, rl.RefillInterval)
    assert.Equal(t, 10*time.Second, rl.TTL)
}

func TestLoadCacheConfig(t *testing.T) {
    t.Setenv("CACHE_METHODS", "get, head")
    cc := LoadCacheConfig()
    assert.True(t, cc.Methods["GET"])
    assert.True(t, cc.Methods["HEAD"])
    assert.Equal(t, "fest:sections", cc.Prefix)
}

func TestLoad(t *testing.T) {
    t.Setenv("APP_ENV", "test")
    t.Setenv("APP_PORT", "8080")
    t.Setenv("SESSION_SECRET", "s")
    t.Setenv("EVENT_API_BASE_URL", "http://api.local/")
    t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test")
    cfg := Load(filepath.Join(t.TempDir(), "missing.env"))
    assert.Equal(t, "http://api.local", cfg.EventAPIBaseURL)
    assert.Equal(t, "3", cfg.DefaultEventID)
    assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
    assert.False(t, cfg.JournalEnabled())
}
