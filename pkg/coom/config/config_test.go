package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cogstats/coom/pkg/coom/internalerr"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeFile(t, "coom.yaml", `
window_size: 3
normalize: false
workers: 4
stemming: english
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.WindowSize != 3 {
		t.Errorf("Expected window_size 3, got %d", cfg.WindowSize)
	}
	if cfg.NormalizeValue() {
		t.Error("normalize: false should be honored")
	}
	if cfg.Workers != 4 {
		t.Errorf("Expected 4 workers, got %d", cfg.Workers)
	}
	if cfg.Stemming != "english" {
		t.Errorf("Expected english stemming, got %q", cfg.Stemming)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeFile(t, "coom.yaml", `{}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.WindowSize != 5 {
		t.Errorf("Absent window_size should default to 5, got %d", cfg.WindowSize)
	}
	if !cfg.NormalizeValue() {
		t.Error("Absent normalize should default to true")
	}
}

func TestLoadConfigRejectsBadWindow(t *testing.T) {
	path := writeFile(t, "coom.yaml", "window_size: 0\n")

	_, err := Load(path)
	if !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}

func TestLoadStoplist(t *testing.T) {
	path := writeFile(t, "stoplist.yaml", `
terms:
  - the
  - and
`)

	sl, err := LoadStoplist(path)
	if err != nil {
		t.Fatalf("LoadStoplist failed: %v", err)
	}

	if len(sl.Terms) != 2 {
		t.Fatalf("Expected 2 stopwords, got %d", len(sl.Terms))
	}
}

func TestLoaderAssemblesComponents(t *testing.T) {
	stoplist := writeFile(t, "stoplist.yaml", "terms: [the]\n")
	cfgPath := writeFile(t, "coom.yaml", "window_size: 2\nstoplist: "+stoplist+"\n")

	loader := Loader{ConfigPath: cfgPath}
	comp, err := loader.Load()
	if err != nil {
		t.Fatalf("Loader.Load failed: %v", err)
	}

	if comp.Options.WindowSize != 2 {
		t.Errorf("Expected window size 2, got %d", comp.Options.WindowSize)
	}

	tokens := comp.Tokenizer.Tokenize("the cat sat")
	for _, tok := range tokens {
		if tok == "the" {
			t.Error("Stoplist from config should reach the tokenizer")
		}
	}
}

func TestLoaderDefaultsWithoutPath(t *testing.T) {
	loader := Loader{}
	comp, err := loader.Load()
	if err != nil {
		t.Fatalf("Loader.Load failed: %v", err)
	}

	if comp.Options.WindowSize != 5 {
		t.Errorf("Default window size should be 5, got %d", comp.Options.WindowSize)
	}
	if !comp.Options.Normalize {
		t.Error("Default normalize should be true")
	}
	if comp.Options.Workers != 1 {
		t.Errorf("Default workers should be 1, got %d", comp.Options.Workers)
	}
}
