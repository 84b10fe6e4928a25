package secret

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Provider resolves secrets by reference string.
//
// Contract:
//   - Concurrency: implementations must be safe for concurrent use.
//   - Errors: a missing secret returns an error wrapping ErrNotFound.
//   - Logging: implementations must never log secret values.
type Provider interface {
	Name() string
	Resolve(ctx context.Context, ref string) (string, error)
	Close() error
}

// EnvProvider resolves "secretref:env:<VAR>" from the process environment.
type EnvProvider struct{}

// Ensure EnvProvider implements Provider.
var _ Provider = EnvProvider{}

// Name returns "env".
func (EnvProvider) Name() string { return "env" }

// Resolve returns the value of the environment variable ref.
func (EnvProvider) Resolve(_ context.Context, ref string) (string, error) {
	v, ok := os.LookupEnv(ref)
	if !ok {
		return "", fmt.Errorf("%w: env %s", ErrNotFound, ref)
	}
	return v, nil
}

// Close is a no-op.
func (EnvProvider) Close() error { return nil }

// FileProvider resolves "secretref:file:<name>" by reading a file under
// Dir, as mounted by container secret stores. Surrounding whitespace is
// trimmed from the contents.
type FileProvider struct {
	Dir string
}

// Ensure FileProvider implements Provider.
var _ Provider = (*FileProvider)(nil)

// Name returns "file".
func (p *FileProvider) Name() string { return "file" }

// Resolve reads the secret file named ref. ref must stay inside Dir.
func (p *FileProvider) Resolve(ctx context.Context, ref string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !filepath.IsLocal(ref) {
		return "", fmt.Errorf("%w: file %q escapes secret dir", ErrInvalidRef, ref)
	}

	data, err := os.ReadFile(filepath.Join(p.Dir, ref))
	if os.IsNotExist(err) {
		return "", fmt.Errorf("%w: file %s", ErrNotFound, ref)
	}
	if err != nil {
		return "", fmt.Errorf("secret: read file %s: %w", ref, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Close is a no-op.
func (p *FileProvider) Close() error { return nil }
