package secret

import (
	"context"
	"errors"
	"testing"
)

type stubProvider struct {
	name   string
	values map[string]string
	closed bool
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Resolve(_ context.Context, ref string) (string, error) {
	v, ok := s.values[ref]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (s *stubProvider) Close() error {
	s.closed = true
	return nil
}

func TestParseSecretRef(t *testing.T) {
	tests := []struct {
		in           string
		wantProvider string
		wantRef      string
		wantOK       bool
	}{
		{in: "secretref:env:MEALDB_API_KEY", wantProvider: "env", wantRef: "MEALDB_API_KEY", wantOK: true},
		{in: "secretref:file:keys/mealdb", wantProvider: "file", wantRef: "keys/mealdb", wantOK: true},
		{in: "secretref:vault:path:with:colons", wantProvider: "vault", wantRef: "path:with:colons", wantOK: true},
		{in: "secretref:env:", wantOK: false},
		{in: "secretref::KEY", wantOK: false},
		{in: "key=secretref:env:KEY", wantOK: false},
		{in: "1", wantOK: false},
	}
	for _, tt := range tests {
		provider, ref, ok := ParseSecretRef(tt.in)
		if ok != tt.wantOK || provider != tt.wantProvider || ref != tt.wantRef {
			t.Errorf("ParseSecretRef(%q) = (%q, %q, %v), want (%q, %q, %v)",
				tt.in, provider, ref, ok, tt.wantProvider, tt.wantRef, tt.wantOK)
		}
	}
}

func TestResolverResolveValue(t *testing.T) {
	t.Setenv("MEALSCOUT_TEST_KEY", "from-env")
	stub := &stubProvider{name: "stub", values: map[string]string{"alpha": "one", "beta": "two", "blank": ""}}
	r := NewResolver(true, stub, EnvProvider{})
	ctx := context.Background()

	tests := []struct {
		name    string
		in      string
		want    string
		wantErr error
	}{
		{name: "literal", in: "1", want: "1"},
		{name: "env expansion", in: "${MEALSCOUT_TEST_KEY}", want: "from-env"},
		{name: "full ref", in: "secretref:stub:alpha", want: "one"},
		{name: "env provider", in: "secretref:env:MEALSCOUT_TEST_KEY", want: "from-env"},
		{name: "inline refs", in: "a=secretref:stub:alpha b=secretref:stub:beta", want: "a=one b=two"},
		{name: "unknown provider", in: "secretref:nope:alpha", wantErr: ErrProviderNotRegistered},
		{name: "missing ref", in: "secretref:stub:gamma", wantErr: ErrNotFound},
		{name: "strict empty", in: "secretref:stub:blank", wantErr: ErrEmptySecret},
		{name: "missing env", in: "${MEALSCOUT_TEST_UNSET}", wantErr: ErrMissingEnv},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.ResolveValue(ctx, tt.in)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ResolveValue() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveValue() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ResolveValue() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolverLenientAllowsEmpty(t *testing.T) {
	r := NewResolver(false, &stubProvider{name: "stub", values: map[string]string{"blank": ""}})

	got, err := r.ResolveValue(context.Background(), "secretref:stub:blank")
	if err != nil || got != "" {
		t.Errorf("ResolveValue() = (%q, %v), want empty value", got, err)
	}
}

func TestNilResolverExpandsOnly(t *testing.T) {
	var r *Resolver
	got, err := r.ResolveValue(context.Background(), "secretref:stub:alpha")
	if err != nil || got != "secretref:stub:alpha" {
		t.Errorf("ResolveValue() = (%q, %v), want value unchanged", got, err)
	}
}

func TestIsReference(t *testing.T) {
	if !IsReference("Bearer secretref:env:TOKEN") {
		t.Error("inline reference not detected")
	}
	if IsReference("plain") {
		t.Error("plain value reported as reference")
	}
}

func TestResolverClose(t *testing.T) {
	stub := &stubProvider{name: "stub"}
	r := NewResolver(true, stub, nil)
	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !stub.closed {
		t.Error("provider not closed")
	}
}
