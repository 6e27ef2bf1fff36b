package state

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/law-makers/jobscout/pkg/models"
)

func stores(t *testing.T) map[string]Store {
	fs, err := NewFileStore(filepath.Join(t.TempDir(), "state", "state.json"))
	require.NoError(t, err)
	return map[string]Store{
		"memory": NewMemoryStore(),
		"file":   fs,
	}
}

func TestStoreGetSetDelete(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			var v string
			assert.ErrorIs(t, s.Get("missing", &v), ErrNotFound)

			require.NoError(t, s.Set("k", "v"))
			require.NoError(t, s.Get("k", &v))
			assert.Equal(t, "v", v)

			require.NoError(t, s.Delete("k"))
			assert.ErrorIs(t, s.Get("k", &v), ErrNotFound)
			assert.NoError(t, s.Delete("k"))
		})
	}
}

func TestFlags(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			assert.False(t, IsActive(s, models.PlatformSEEK))

			require.NoError(t, SetActive(s, models.PlatformSEEK, "a"))
			require.NoError(t, SetActive(s, models.PlatformIndeed, "b"))
			assert.True(t, IsActive(s, models.PlatformSEEK))
			assert.Equal(t, []models.Platform{models.PlatformSEEK, models.PlatformIndeed}, ActivePlatforms(s))

			require.NoError(t, ClearActive(s, models.PlatformSEEK, "a"))
			assert.False(t, IsActive(s, models.PlatformSEEK))
			assert.Equal(t, []models.Platform{models.PlatformIndeed}, ActivePlatforms(s))
		})
	}
}

func TestFlagsAreScopedPerSession(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, SetActive(s, models.PlatformIndeed, "a"))
	require.NoError(t, SetActive(s, models.PlatformIndeed, "b"))

	require.NoError(t, ClearActive(s, models.PlatformIndeed, "b"))
	assert.True(t, IsActive(s, models.PlatformIndeed), "session a is still running")

	require.NoError(t, ClearActive(s, models.PlatformIndeed, "a"))
	assert.False(t, IsActive(s, models.PlatformIndeed))
}

func TestClearPlatform(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, SetActive(s, models.PlatformSEEK, "a"))
	require.NoError(t, SetActive(s, models.PlatformSEEK, "b"))
	require.NoError(t, s.Set("scraping_active.seek", true))
	require.NoError(t, SetActive(s, models.PlatformIndeed, "c"))

	n, err := ClearPlatform(s, models.PlatformSEEK)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.False(t, IsActive(s, models.PlatformSEEK))
	assert.True(t, IsActive(s, models.PlatformIndeed))
}

func TestFileStorePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	a, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, SaveLastLocation(a, "  Sydney NSW "))

	b, err := NewFileStore(path)
	require.NoError(t, err)
	assert.Equal(t, "Sydney NSW", LastLocation(b))
}

func TestWebsiteSettings(t *testing.T) {
	s := NewMemoryStore()

	w, err := LoadWebsiteSettings(s)
	require.NoError(t, err)
	assert.True(t, w.Enabled(models.PlatformLinkedIn))
	assert.Empty(t, w.Disabled())

	require.NoError(t, SetPlatformEnabled(s, models.PlatformLinkedIn, false))
	w, err = LoadWebsiteSettings(s)
	require.NoError(t, err)
	assert.False(t, w.Enabled(models.PlatformLinkedIn))
	assert.Equal(t, map[models.Platform]bool{models.PlatformLinkedIn: true}, w.Disabled())
}

func TestSaveLastLocationIgnoresBlank(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, SaveLastLocation(s, "Melbourne"))
	require.NoError(t, SaveLastLocation(s, "   "))
	assert.Equal(t, "Melbourne", LastLocation(s))
}
