package secret

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestEnvProvider(t *testing.T) {
	t.Setenv("MEALSCOUT_ENV_SECRET", "shh")
	ctx := context.Background()

	got, err := EnvProvider{}.Resolve(ctx, "MEALSCOUT_ENV_SECRET")
	if err != nil || got != "shh" {
		t.Errorf("Resolve() = (%q, %v)", got, err)
	}
	if _, err := (EnvProvider{}).Resolve(ctx, "MEALSCOUT_ENV_UNSET"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Resolve(unset) error = %v, want ErrNotFound", err)
	}
}

func TestFileProvider(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "mealdb_key"), []byte("  9973533\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	p := &FileProvider{Dir: dir}
	ctx := context.Background()

	got, err := p.Resolve(ctx, "mealdb_key")
	if err != nil || got != "9973533" {
		t.Errorf("Resolve() = (%q, %v), want trimmed contents", got, err)
	}
	if _, err := p.Resolve(ctx, "absent"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Resolve(absent) error = %v, want ErrNotFound", err)
	}
	if _, err := p.Resolve(ctx, "../etc/passwd"); !errors.Is(err, ErrInvalidRef) {
		t.Errorf("Resolve(escape) error = %v, want ErrInvalidRef", err)
	}
}
