package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Presets maps preset names to prompt prefixes that get prepended to the
// user's prompt.
type Presets struct {
	Presets map[string]string `yaml:"presets"`
}

// DefaultPresetsPath returns ~/.nanobanana/presets.yaml, falling back to the
// working directory when no home directory is known.
func DefaultPresetsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "presets.yaml"
	}
	return filepath.Join(home, ".nanobanana", "presets.yaml")
}

// LoadPresets reads a presets file. A missing file yields an empty preset set
// rather than an error.
func LoadPresets(path string) (*Presets, error) {
	p := &Presets{Presets: make(map[string]string)}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return p, nil
		}
		return nil, fmt.Errorf("read presets: %w", err)
	}
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parse presets: %w", err)
	}
	if p.Presets == nil {
		p.Presets = make(map[string]string)
	}
	return p, nil
}

// Apply prepends the named preset to the prompt.
func (p *Presets) Apply(name, prompt string) (string, error) {
	prefix, ok := p.Presets[name]
	if !ok {
		return "", fmt.Errorf("unknown preset %q (available: %s)", name, strings.Join(p.Names(), ", "))
	}
	prefix = strings.TrimSpace(prefix)
	prompt = strings.TrimSpace(prompt)
	switch {
	case prefix == "":
		return prompt, nil
	case prompt == "":
		return prefix, nil
	default:
		return prefix + "\n\n" + prompt, nil
	}
}

// Names lists available preset names, sorted.
func (p *Presets) Names() []string {
	names := make([]string, 0, len(p.Presets))
	for name := range p.Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
