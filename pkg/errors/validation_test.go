package errors

import (
	"strings"
	"testing"
)

func TestValidateLabel(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"major vertex", "A1", false},
		{"edge vertex", "a1b2", false},
		{"numeric", "12", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 65), true},
		{"space", "A 1", true},
		{"tab", "A\t1", true},
		{"paren open", "A(1", true},
		{"paren close", "A1)", true},
		{"control char", "A\x011", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLabel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateLabel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("ValidateLabel(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidInput)
			}
		})
	}
}

func TestValidateSolidName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "rbc", false},
		{"with dash", "pseudo-rbc", false},
		{"with underscore", "pseudo_rbc", false},
		{"digits", "c60", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 65), true},
		{"uppercase", "RBC", true},
		{"path traversal", "../rbc", true},
		{"slash", "solids/rbc", true},
		{"leading dash", "-rbc", true},
		{"extension", "rbc.toml", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSolidName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSolidName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "out_rbc", false},
		{"nested", "results/out_rbc", false},
		{"absolute", "/tmp/out_rbc", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 501), true},
		{"null byte", "out\x00rbc", true},
		{"newline", "out\nrbc", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
