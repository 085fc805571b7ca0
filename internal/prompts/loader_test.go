package prompts

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDirectoryOverridesBuiltin(t *testing.T) {
	dir := t.TempDir()
	yaml := `mode: quick
template: |
  Answer briefly: {{.query}}

  {{.content}}
`
	if err := os.WriteFile(filepath.Join(dir, "quick.yaml"), []byte(yaml), 0o600); err != nil {
		t.Fatalf("write template: %v", err)
	}

	c := NewCatalog()
	if err := c.LoadDirectory(dir); err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}

	out, err := c.Render(ModeQuick, map[string]string{VarContent: "BODY", VarQuery: "Q"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.HasPrefix(out, "Answer briefly: Q") {
		t.Fatalf("override not applied:\n%s", out)
	}
}

func TestLoadDirectoryRejectsUnknownMode(t *testing.T) {
	dir := t.TempDir()
	yaml := "mode: haiku\ntemplate: '{{.content}}'\n"
	if err := os.WriteFile(filepath.Join(dir, "haiku.yaml"), []byte(yaml), 0o600); err != nil {
		t.Fatalf("write template: %v", err)
	}
	if err := NewCatalog().LoadDirectory(dir); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}

func TestLoadDirectoryRejectsUnknownFields(t *testing.T) {
	dir := t.TempDir()
	yaml := "mode: quick\ntemplate: '{{.content}}'\nextra: nope\n"
	if err := os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte(yaml), 0o600); err != nil {
		t.Fatalf("write template: %v", err)
	}
	if err := NewCatalog().LoadDirectory(dir); err == nil {
		t.Fatal("expected strict decode error")
	}
}

func TestLoadDirectoryMissing(t *testing.T) {
	if err := NewCatalog().LoadDirectory(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
