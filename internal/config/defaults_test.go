package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults_MissingFileUsesBuiltins(t *testing.T) {
	d, err := LoadDefaults(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadDefaults: %v", err)
	}

	if d != builtinDefaults {
		t.Fatalf("defaults = %+v, want builtins %+v", d, builtinDefaults)
	}
}

func TestLoadDefaults_FileOverridesOnlyListedFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "defaults.yaml")
	content := []byte("gold_price: 6200\ncommission: 18\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write defaults: %v", err)
	}

	d, err := LoadDefaults(path)
	if err != nil {
		t.Fatalf("LoadDefaults: %v", err)
	}

	if d.GoldPrice != 6200 {
		t.Fatalf("GoldPrice = %v, want 6200", d.GoldPrice)
	}
	if d.Commission != 18 {
		t.Fatalf("Commission = %v, want 18", d.Commission)
	}
	if d.Shipping != builtinDefaults.Shipping {
		t.Fatalf("Shipping = %v, want builtin %v", d.Shipping, builtinDefaults.Shipping)
	}
	if d.StandardProfit != builtinDefaults.StandardProfit {
		t.Fatalf("StandardProfit = %v, want builtin %v", d.StandardProfit, builtinDefaults.StandardProfit)
	}
}

func TestLoadDefaults_MalformedYAMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "defaults.yaml")
	if err := os.WriteFile(path, []byte("gold_price: [not a number\n"), 0o600); err != nil {
		t.Fatalf("write defaults: %v", err)
	}

	if _, err := LoadDefaults(path); err == nil {
		t.Fatal("LoadDefaults must fail on malformed YAML")
	}
}
