package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"

	"github.com/rectfree/rectfree/pkg/errors"
	"github.com/rectfree/rectfree/pkg/search"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rectfree.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
colors = 3
max_iterations = 5000
seed = 42
strategy = "snapshot"
`)
	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	want := Config{Colors: 3, MaxIterations: 5000, Seed: 42, Strategy: "snapshot"}
	if *cfg != want {
		t.Errorf("loadConfig = %+v, want %+v", *cfg, want)
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if *cfg != (Config{}) {
		t.Errorf("empty path should yield empty config, got %+v", *cfg)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if errors.GetCode(err) != errors.ErrCodeFileNotFound {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeFileNotFound)
	}
}

func TestLoadConfigInvalidTOML(t *testing.T) {
	path := writeConfig(t, `colors = "many"`)
	_, err := loadConfig(path)
	if errors.GetCode(err) != errors.ErrCodeInvalidConfig {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidConfig)
	}
}

func searchFlagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("search", pflag.ContinueOnError)
	flags.IntP("colors", "k", search.DefaultColors, "")
	flags.Int("max-iters", 0, "")
	flags.Uint64("seed", 0, "")
	flags.String("strategy", "", "")
	return flags
}

func TestApplyConfigFillsUnsetFlags(t *testing.T) {
	cfg := &Config{Colors: 3, MaxIterations: 5000, Seed: 42, Strategy: "snapshot"}
	opts := search.Options{Rows: 8, Cols: 8}

	applyConfig(&opts, cfg, searchFlagSet())

	if opts.Colors != 3 || opts.MaxIterations != 5000 || opts.Seed != 42 || opts.Strategy != "snapshot" {
		t.Errorf("config not applied: %+v", opts)
	}
}

func TestApplyConfigFlagsWin(t *testing.T) {
	cfg := &Config{Colors: 3, Seed: 42}
	opts := search.Options{Rows: 8, Cols: 8, Colors: 5, Seed: 7}

	flags := searchFlagSet()
	if err := flags.Parse([]string{"--colors", "5", "--seed", "7"}); err != nil {
		t.Fatal(err)
	}
	applyConfig(&opts, cfg, flags)

	if opts.Colors != 5 {
		t.Errorf("explicit --colors overridden: %d", opts.Colors)
	}
	if opts.Seed != 7 {
		t.Errorf("explicit --seed overridden: %d", opts.Seed)
	}
}

func TestApplyConfigZeroValuesIgnored(t *testing.T) {
	opts := search.Options{Rows: 8, Cols: 8, Colors: 5, Strategy: "sequential"}
	applyConfig(&opts, &Config{}, searchFlagSet())
	if opts.Colors != 5 || opts.Strategy != "sequential" {
		t.Errorf("empty config mutated options: %+v", opts)
	}
}
