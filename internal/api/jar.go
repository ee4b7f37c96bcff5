package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/net/publicsuffix"
)

const cookieFile = "cookies.json"

// storedCookie is the serialized form of a session cookie. Only the fields
// needed to resend the cookie to the one API host are kept.
type storedCookie struct {
	Name    string    `json:"name"`
	Value   string    `json:"value"`
	Path    string    `json:"path,omitempty"`
	Expires time.Time `json:"expires,omitempty"`
}

// sessionJar is a cookie jar scoped to the API base URL that persists its
// cookies to disk, standing in for the browser's cookie store. A zero state
// directory keeps the jar memory-only.
//
// Jar.Cookies strips everything but name and value, so the attributes
// needed for persistence (path, expiry) are recorded here as the server
// sets them.
type sessionJar struct {
	mu     sync.Mutex
	jar    *cookiejar.Jar
	base   *url.URL
	path   string
	stored map[string]storedCookie
}

func newSessionJar(stateDir string, base *url.URL) (*sessionJar, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	s := &sessionJar{jar: jar, base: base, stored: make(map[string]storedCookie)}
	if stateDir == "" {
		return s, nil
	}

	if err := os.MkdirAll(stateDir, 0700); err != nil {
		return nil, fmt.Errorf("create state directory: %w", err)
	}
	s.path = filepath.Join(stateDir, cookieFile)
	s.load()
	return s, nil
}

// SetCookies forwards to the inner jar and records the attributes of
// cookies for the API host. A deletion (negative MaxAge or past expiry)
// drops the record.
func (s *sessionJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jar.SetCookies(u, cookies)

	if u.Hostname() != s.base.Hostname() {
		return
	}
	for _, c := range cookies {
		if c.MaxAge < 0 || (!c.Expires.IsZero() && c.Expires.Before(time.Now())) {
			delete(s.stored, c.Name)
			continue
		}
		expires := c.Expires
		if c.MaxAge > 0 {
			expires = time.Now().Add(time.Duration(c.MaxAge) * time.Second)
		}
		s.stored[c.Name] = storedCookie{
			Name:    c.Name,
			Value:   c.Value,
			Path:    c.Path,
			Expires: expires,
		}
	}
}

func (s *sessionJar) Cookies(u *url.URL) []*http.Cookie {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jar.Cookies(u)
}

// load restores previously saved cookies, skipping any that expired since
// the last run. A missing or unreadable file is treated as no session.
func (s *sessionJar) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return
	}

	var stored []storedCookie
	if err := json.Unmarshal(data, &stored); err != nil {
		log.Debug().Err(err).Str("path", s.path).Msg("discarding unreadable cookie file")
		return
	}

	cookies := make([]*http.Cookie, 0, len(stored))
	for _, c := range stored {
		if !c.Expires.IsZero() && c.Expires.Before(time.Now()) {
			continue
		}
		s.stored[c.Name] = c
		cookies = append(cookies, &http.Cookie{
			Name:    c.Name,
			Value:   c.Value,
			Path:    c.Path,
			Expires: c.Expires,
		})
	}
	s.jar.SetCookies(s.base, cookies)
}

// save writes the recorded cookies for the API host atomically.
func (s *sessionJar) save() {
	if s.path == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]storedCookie, 0, len(s.stored))
	for _, c := range s.stored {
		stored = append(stored, c)
	}
	sort.Slice(stored, func(i, j int) bool { return stored[i].Name < stored[j].Name })

	data, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		log.Debug().Err(err).Msg("failed to encode cookies")
		return
	}

	tempPath := s.path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0600); err != nil {
		log.Debug().Err(err).Str("path", s.path).Msg("failed to write cookie file")
		return
	}
	if err := os.Rename(tempPath, s.path); err != nil {
		os.Remove(tempPath)
		log.Debug().Err(err).Str("path", s.path).Msg("failed to save cookie file")
	}
}

// purge drops all cookies and removes the on-disk copy.
func (s *sessionJar) purge() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return fmt.Errorf("reset cookie jar: %w", err)
	}
	s.jar = jar
	s.stored = make(map[string]storedCookie)

	if s.path == "" {
		return nil
	}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove cookie file: %w", err)
	}
	return nil
}
