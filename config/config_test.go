package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/genfn/genfn/check"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Package != "main" {
		t.Errorf("default package = %q, want main", cfg.Package)
	}
	if cfg.SelfRef != check.Reject {
		t.Errorf("default self-reference policy = %v, want Reject", cfg.SelfRef)
	}
	if cfg.CoroImport == "" {
		t.Error("default coro import is empty")
	}
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
package = "sequences"
coro-import = "example.com/iter/coro"
self-reference = "pin"
verbose = true
`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Package != "sequences" {
		t.Errorf("package = %q", cfg.Package)
	}
	if cfg.CoroImport != "example.com/iter/coro" {
		t.Errorf("coro import = %q", cfg.CoroImport)
	}
	if cfg.SelfRef != check.Pin {
		t.Errorf("self-reference policy = %v, want Pin", cfg.SelfRef)
	}
	if !cfg.Verbose {
		t.Error("verbose not set")
	}
}

func TestParse_PartialFileKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`package = "seq"`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Package != "seq" {
		t.Errorf("package = %q", cfg.Package)
	}
	if cfg.CoroImport != Default().CoroImport {
		t.Errorf("coro import = %q, want default", cfg.CoroImport)
	}
	if cfg.SelfRef != check.Reject {
		t.Errorf("self-reference policy = %v, want Reject", cfg.SelfRef)
	}
}

func TestParse_BadPolicy(t *testing.T) {
	_, err := Parse([]byte(`self-reference = "heap"`))
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "self-reference policy") {
		t.Errorf("error = %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	if err := os.WriteFile(path, []byte(`package = "fromfile"`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Package != "fromfile" {
		t.Errorf("package = %q", cfg.Package)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected error for missing file")
	}
}
