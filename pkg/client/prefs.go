package client

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// Keys under which preferences are stored in the JSON file.
const (
	PrefKeySelectedSchool   = "campus.selected_school"
	PrefKeySidebarCollapsed = "campus.sidebar_collapsed"
)

// Preferences persists small bits of UI state to a JSON file: read once at
// startup, written on every change.
type Preferences struct {
	mu   sync.Mutex
	path string
	data map[string]any
}

// LoadPreferences reads the file at path. A missing file yields empty
// preferences; a corrupt one is an error.
func LoadPreferences(path string) (*Preferences, error) {
	p := &Preferences{path: path, data: map[string]any{}}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return p, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &p.data); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Preferences) SelectedSchool() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	s, _ := p.data[PrefKeySelectedSchool].(string)
	return s
}

func (p *Preferences) SetSelectedSchool(id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.data[PrefKeySelectedSchool] = id
	return p.flushLocked()
}

func (p *Preferences) SidebarCollapsed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	b, _ := p.data[PrefKeySidebarCollapsed].(bool)
	return b
}

func (p *Preferences) SetSidebarCollapsed(collapsed bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.data[PrefKeySidebarCollapsed] = collapsed
	return p.flushLocked()
}

func (p *Preferences) flushLocked() error {
	raw, err := json.MarshalIndent(p.data, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(p.path, raw, 0o600)
}
