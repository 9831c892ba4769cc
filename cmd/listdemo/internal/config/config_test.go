package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/controlkit/pkg/control"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestResolve_Defaults(t *testing.T) {
	cfg, err := Resolve(t.TempDir())
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	want := &Resolved{
		Title:       defaultTitle,
		Items:       defaultItems,
		Height:      defaultHeight,
		RowDefaults: control.Settings{},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Resolve() mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_File(t *testing.T) {
	dir := writeConfig(t, `
list:
  title: Inbox
  items: 50
  height: 5
row:
  defaults:
    accent: "212"
    width: 40
    tags: [new, unread]
`)
	cfg, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if cfg.Title != "Inbox" || cfg.Items != 50 || cfg.Height != 5 {
		t.Errorf("list = %q/%d/%d", cfg.Title, cfg.Items, cfg.Height)
	}
	if got := cfg.RowDefaults.String("accent"); got != "212" {
		t.Errorf("accent = %q, want %q", got, "212")
	}
	if w, ok := cfg.RowDefaults.Int("width"); !ok || w != 40 {
		t.Errorf("width = %d, %v, want 40, true", w, ok)
	}

	clone := cfg.RowDefaults.Clone()
	clone["tags"].([]any)[0] = "changed"
	if cfg.RowDefaults["tags"].([]any)[0] != "new" {
		t.Error("decoded template should deep-clone")
	}
}

func TestResolve_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"bad yaml", "list: [", "failed to parse"},
		{"negative items", "list:\n  items: -1\n", "list.items"},
		{"negative height", "list:\n  height: -3\n", "list.height"},
		{"shared id", "row:\n  defaults:\n    id: same\n", "must not set id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should contain %q", err, tt.want)
			}
		})
	}
}
