package prompts

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// fileTemplate is the on-disk YAML shape for a template override.
type fileTemplate struct {
	Mode     string   `yaml:"mode"`
	Required []string `yaml:"required"`
	Template string   `yaml:"template"`
}

// LoadDirectory merges YAML template overrides from dir into the
// catalog. Only the built-in mode names may be overridden; the catalog
// stays a closed set. Intended to run during startup, before the
// catalog is shared.
func (c *Catalog) LoadDirectory(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("stat prompt directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("prompt path %s is not a directory", dir)
	}

	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !isYAML(path) {
			return nil
		}
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open prompt file %s: %w", path, err)
		}
		defer f.Close()
		if err := c.loadOne(f); err != nil {
			return fmt.Errorf("load prompt file %s: %w", path, err)
		}
		return nil
	})
}

func (c *Catalog) loadOne(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var ft fileTemplate
	if err := dec.Decode(&ft); err != nil {
		return fmt.Errorf("decode template: %w", err)
	}
	mode, err := ParseMode(ft.Mode)
	if err != nil {
		return err
	}
	if strings.TrimSpace(ft.Template) == "" {
		return fmt.Errorf("template %s: empty body", mode)
	}
	required := ft.Required
	if len(required) == 0 {
		required = c.entries[mode].Required
	}
	return c.register(mode, required, ft.Template)
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}
