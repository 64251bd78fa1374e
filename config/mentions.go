package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/golang/glog"
)

// Mention maps a name, as it appears in event titles, to a VK handle.
type Mention struct {
	Name   string `json:"name"`
	Handle string `json:"handle"`
}

func (m *Mention) validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("name is required for %s", m.Handle)
	}
	if !strings.HasPrefix(m.Handle, "@") || len(m.Handle) < 2 {
		return fmt.Errorf("invalid handle for %s: %q", m.Name, m.Handle)
	}
	return nil
}

// DefaultMentions returns the built-in mention table.
func DefaultMentions() []Mention {
	return []Mention{
		{Name: "Тари", Handle: "@gtariell"},
		{Name: "Женя", Handle: "@onemorevkpage"},
		{Name: "Бас", Handle: "@bas9312"},
		{Name: "Анте", Handle: "@id138553942"},
		{Name: "Коля", Handle: "@dum2121"},
	}
}

// LoadMentions reads an ordered mention table from a JSON file. An empty path
// yields the built-in table.
func LoadMentions(path string) ([]Mention, error) {
	if path == "" {
		return DefaultMentions(), nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mentions file: %w", err)
	}

	var mentions []Mention
	if err := json.Unmarshal(file, &mentions); err != nil {
		return nil, fmt.Errorf("failed to parse mentions: %w", err)
	}

	seen := make(map[string]bool, len(mentions))
	for _, m := range mentions {
		if err := m.validate(); err != nil {
			return nil, fmt.Errorf("invalid mention data: %w", err)
		}
		if seen[m.Name] {
			return nil, fmt.Errorf("duplicate mention name: %s", m.Name)
		}
		seen[m.Name] = true
	}

	glog.Infof("Loaded %d mentions from %s", len(mentions), path)
	return mentions, nil
}
