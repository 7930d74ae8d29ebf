package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/rentwheels/rental-admin/internal/domain"
)

// Prefs holds faqedit settings persisted between sessions.
type Prefs struct {
	Server    string `toml:"server"`
	Theme     string `toml:"theme"`
	LastKind  string `toml:"last_kind"`
	LastOwner string `toml:"last_owner"`
}

const (
	defaultPrefsPath = "~/.config/rental-admin/faqedit.toml"
	defaultTheme     = "Midnight"
	defaultServer    = "127.0.0.1:8082"
)

// DefaultPrefsPath returns the default preferences file path.
func DefaultPrefsPath() string {
	return defaultPrefsPath
}

func defaultPrefs() Prefs {
	return Prefs{Server: defaultServer, Theme: defaultTheme, LastKind: string(domain.EntryKindBrand)}
}

// LoadPrefs reads preferences from path. A missing or unreadable file yields
// defaults; only a malformed file is reported.
func LoadPrefs(path string) (Prefs, error) {
	p := defaultPrefs()

	resolved, err := expandPath(orDefault(path, defaultPrefsPath))
	if err != nil {
		return p, nil
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return p, nil
	}

	if err := toml.Unmarshal(data, &p); err != nil {
		return defaultPrefs(), fmt.Errorf("parse prefs %s: %w", resolved, err)
	}

	if strings.TrimSpace(p.Theme) == "" {
		p.Theme = defaultTheme
	}
	if strings.TrimSpace(p.Server) == "" {
		p.Server = defaultServer
	}
	if !domain.EntryKind(p.LastKind).IsValid() {
		p.LastKind = string(domain.EntryKindBrand)
	}
	return p, nil
}

// SavePrefs writes preferences to path, creating directories as needed.
func SavePrefs(path string, p Prefs) error {
	resolved, err := expandPath(orDefault(path, defaultPrefsPath))
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	data, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	if err := os.WriteFile(resolved, data, 0o600); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

func orDefault(path, def string) string {
	if strings.TrimSpace(path) == "" {
		return def
	}
	return path
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
