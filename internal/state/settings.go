package state

import (
	"errors"
	"strings"

	"github.com/law-makers/jobscout/pkg/models"
)

const (
	flagPrefix         = "scraping_active."
	keyLastLocation    = "last_location"
	keyWebsiteSettings = "website_settings"
)

// FlagKey is the store key of one session's "scraping active" flag. Each
// session owns its key so overlapping sessions on a platform don't clear each
// other's flag.
func FlagKey(p models.Platform, sessionID string) string {
	return flagPrefix + p.ID() + "." + sessionID
}

// SetActive marks session sessionID on p as running
func SetActive(s Store, p models.Platform, sessionID string) error {
	return s.Set(FlagKey(p, sessionID), true)
}

// ClearActive removes the flag of session sessionID on p
func ClearActive(s Store, p models.Platform, sessionID string) error {
	return s.Delete(FlagKey(p, sessionID))
}

// IsActive reports whether any session on p holds a flag
func IsActive(s Store, p models.Platform) bool {
	return len(flagKeys(s, p)) > 0
}

// ClearPlatform removes every session flag of p and returns how many it
// removed. Used to recover from a process killed mid-session.
func ClearPlatform(s Store, p models.Platform) (int, error) {
	keys := flagKeys(s, p)
	for _, k := range keys {
		if err := s.Delete(k); err != nil {
			return 0, err
		}
	}
	return len(keys), nil
}

// ActivePlatforms lists every platform with at least one session flag set,
// in registry order
func ActivePlatforms(s Store) []models.Platform {
	var out []models.Platform
	for _, p := range models.AllPlatforms {
		if IsActive(s, p) {
			out = append(out, p)
		}
	}
	return out
}

// flagKeys returns the set flag keys of p, including the platform-wide key
// written by older versions
func flagKeys(s Store, p models.Platform) []string {
	keys, err := s.Keys()
	if err != nil {
		return nil
	}
	platformKey := flagPrefix + p.ID()
	var out []string
	for _, k := range keys {
		if k != platformKey && !strings.HasPrefix(k, platformKey+".") {
			continue
		}
		var on bool
		if err := s.Get(k, &on); err == nil && on {
			out = append(out, k)
		}
	}
	return out
}

// LastLocation returns the saved search location, or "" if none
func LastLocation(s Store) string {
	var loc string
	if err := s.Get(keyLastLocation, &loc); err != nil {
		return ""
	}
	return loc
}

// SaveLastLocation remembers loc for the next search
func SaveLastLocation(s Store, loc string) error {
	loc = strings.TrimSpace(loc)
	if loc == "" {
		return nil
	}
	return s.Set(keyLastLocation, loc)
}

// WebsiteSettings maps platform ids to their enabled state. Platforms that
// are missing are enabled.
type WebsiteSettings map[string]bool

// Enabled reports whether p is enabled
func (w WebsiteSettings) Enabled(p models.Platform) bool {
	on, ok := w[p.ID()]
	return !ok || on
}

// Disabled returns the disabled platforms in registry form
func (w WebsiteSettings) Disabled() map[models.Platform]bool {
	out := make(map[models.Platform]bool)
	for _, p := range models.AllPlatforms {
		if !w.Enabled(p) {
			out[p] = true
		}
	}
	return out
}

// LoadWebsiteSettings reads the site toggles, defaulting to all enabled
func LoadWebsiteSettings(s Store) (WebsiteSettings, error) {
	w := WebsiteSettings{}
	err := s.Get(keyWebsiteSettings, &w)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	return w, nil
}

// SetPlatformEnabled toggles one site and persists the settings
func SetPlatformEnabled(s Store, p models.Platform, enabled bool) error {
	w, err := LoadWebsiteSettings(s)
	if err != nil {
		return err
	}
	w[p.ID()] = enabled
	return s.Set(keyWebsiteSettings, w)
}
