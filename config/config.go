package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"
)

// Settings is the on-disk configuration for the server.
type Settings struct {
	Server   ServerSettings   `json:"server"`
	TMDB     TMDBSettings     `json:"tmdb"`
	Database DatabaseSettings `json:"database"`
	Logging  LoggingSettings  `json:"logging"`
}

// ServerSettings configures the HTTP listener.
type ServerSettings struct {
	ListenAddr string `json:"listenAddr"`
}

// TMDBSettings configures the upstream catalog API client.
type TMDBSettings struct {
	BaseURL string `json:"baseUrl"`
	// AccessToken is the TMDB v4 read access token sent as a bearer token.
	AccessToken string `json:"accessToken"`
	// Language filters aggregated and trending results by original language.
	// Accepts full BCP 47 tags ("en-US"); only the base language is compared.
	Language string `json:"language"`
	// DefaultPages is how many upstream pages an aggregation fetches when
	// the request does not say otherwise.
	DefaultPages int `json:"defaultPages"`
}

// DatabaseSettings configures the SQLite store.
type DatabaseSettings struct {
	Path string `json:"path"`
}

// LoggingSettings configures log rotation.
type LoggingSettings struct {
	File       string `json:"file,omitempty"`
	MaxSizeMB  int    `json:"maxSizeMb"`
	MaxBackups int    `json:"maxBackups"`
}

// Defaults returns the settings used when no config file exists yet.
func Defaults(dataDir string) Settings {
	return Settings{
		Server: ServerSettings{
			ListenAddr: ":8080",
		},
		TMDB: TMDBSettings{
			BaseURL:      "https://api.themoviedb.org/3",
			AccessToken:  os.Getenv("TMDB_ACCESS_TOKEN"),
			Language:     "en",
			DefaultPages: 3,
		},
		Database: DatabaseSettings{
			Path: filepath.Join(dataDir, "reelnest.db"),
		},
		Logging: LoggingSettings{
			MaxSizeMB:  25,
			MaxBackups: 3,
		},
	}
}

// Manager loads and persists settings from a JSON file in the data
// directory. The filesystem is injectable so tests can run in memory.
type Manager struct {
	fs      afero.Fs
	dataDir string

	mu     sync.RWMutex
	cached *Settings
}

// NewManager creates a manager rooted at dataDir on the OS filesystem.
func NewManager(dataDir string) *Manager {
	return NewManagerWithFs(afero.NewOsFs(), dataDir)
}

// NewManagerWithFs creates a manager over an arbitrary filesystem.
func NewManagerWithFs(fs afero.Fs, dataDir string) *Manager {
	return &Manager{fs: fs, dataDir: dataDir}
}

func (m *Manager) settingsPath() string {
	return filepath.Join(m.dataDir, "settings.json")
}

// Load returns the current settings, reading the settings file on first
// use and writing defaults when it does not exist yet.
func (m *Manager) Load() (Settings, error) {
	m.mu.RLock()
	if m.cached != nil {
		s := *m.cached
		m.mu.RUnlock()
		return s, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cached != nil {
		return *m.cached, nil
	}

	settings := Defaults(m.dataDir)

	data, err := afero.ReadFile(m.fs, m.settingsPath())
	switch {
	case os.IsNotExist(err):
		if err := m.writeLocked(settings); err != nil {
			return Settings{}, fmt.Errorf("write default settings: %w", err)
		}
	case err != nil:
		return Settings{}, fmt.Errorf("read settings: %w", err)
	default:
		if err := json.Unmarshal(data, &settings); err != nil {
			return Settings{}, fmt.Errorf("parse settings: %w", err)
		}
		applyFallbacks(&settings, m.dataDir)
	}

	m.cached = &settings
	return settings, nil
}

// Save persists the supplied settings and makes them the cached copy.
func (m *Manager) Save(settings Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	applyFallbacks(&settings, m.dataDir)
	if err := m.writeLocked(settings); err != nil {
		return err
	}
	m.cached = &settings
	return nil
}

func (m *Manager) writeLocked(settings Settings) error {
	if err := m.fs.MkdirAll(m.dataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	if err := afero.WriteFile(m.fs, m.settingsPath(), data, 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

// applyFallbacks fills zero values left behind by hand-edited or older
// settings files so callers never see an unusable configuration.
func applyFallbacks(s *Settings, dataDir string) {
	defaults := Defaults(dataDir)
	if s.Server.ListenAddr == "" {
		s.Server.ListenAddr = defaults.Server.ListenAddr
	}
	if s.TMDB.BaseURL == "" {
		s.TMDB.BaseURL = defaults.TMDB.BaseURL
	}
	if s.TMDB.AccessToken == "" {
		s.TMDB.AccessToken = defaults.TMDB.AccessToken
	}
	if s.TMDB.Language == "" {
		s.TMDB.Language = defaults.TMDB.Language
	}
	if s.TMDB.DefaultPages <= 0 {
		s.TMDB.DefaultPages = defaults.TMDB.DefaultPages
	}
	if s.Database.Path == "" {
		s.Database.Path = defaults.Database.Path
	}
	if s.Logging.MaxSizeMB <= 0 {
		s.Logging.MaxSizeMB = defaults.Logging.MaxSizeMB
	}
	if s.Logging.MaxBackups < 0 {
		s.Logging.MaxBackups = defaults.Logging.MaxBackups
	}
}
