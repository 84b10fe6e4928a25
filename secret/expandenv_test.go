package secret

import (
	"errors"
	"strings"
	"testing"
)

func TestExpandEnvStrict(t *testing.T) {
	t.Setenv("MEALSCOUT_PRESENT", "ok")

	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "plain", want: "plain"},
		{in: "${MEALSCOUT_PRESENT}", want: "ok"},
		{in: "$MEALSCOUT_PRESENT/x", want: "ok/x"},
		{in: "$$${MEALSCOUT_PRESENT}", want: "$ok"},
		{in: "cost: $$5", want: "cost: $5"},
		{in: "$MEALSCOUT_ABSENT", want: ""},
		{in: "a=${MEALSCOUT_PRESENT} b=${MEALSCOUT_ABSENT}", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ExpandEnvStrict(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ExpandEnvStrict(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ExpandEnvStrict(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExpandEnvStrictNamesMissing(t *testing.T) {
	_, err := ExpandEnvStrict("${MEALSCOUT_B_MISSING} ${MEALSCOUT_A_MISSING}")
	if !errors.Is(err, ErrMissingEnv) {
		t.Fatalf("error = %v, want ErrMissingEnv", err)
	}
	if !strings.HasSuffix(err.Error(), "MEALSCOUT_A_MISSING, MEALSCOUT_B_MISSING") {
		t.Errorf("error = %v, want sorted variable names", err)
	}
}
