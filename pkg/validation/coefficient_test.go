package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/AleutianAI/quadsolve/pkg/quadratic"
)

func TestParseCoefficient(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    float64
		wantErr bool
	}{
		// Valid coefficients
		{"integer", "3", 3, false},
		{"negative decimal", "-0.25", -0.25, false},
		{"explicit plus", "+4E3", 4000, false},
		{"tiny", "1e-20", 1e-20, false},
		{"huge but finite", "1e300", 1e300, false},
		{"hex float", "0x1p-2", 0.25, false},
		{"whitespace trimmed", "  2.5\t", 2.5, false},
		{"zero", "0", 0, false},

		// Invalid coefficients
		{"empty", "", 0, true},
		{"only spaces", "   ", 0, true},
		{"text", "abc", 0, true},
		{"comma decimal", "1,5", 0, true},
		{"container", "[1]", 0, true},
		{"inf", "inf", 0, true},
		{"infinity", "-Infinity", 0, true},
		{"nan", "NaN", 0, true},
		{"overflow", "1e400", 0, true},
		{"too long", "1" + strings.Repeat("0", MaxCoefficientLength), 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCoefficient("b", tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseCoefficient(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, quadratic.ErrNonNumericCoefficient) {
					t.Errorf("ParseCoefficient(%q) error = %v, want ErrNonNumericCoefficient", tt.raw, err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseCoefficient(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParseCoefficient_ErrorNamesCoefficient(t *testing.T) {
	_, err := ParseCoefficient("c", "oops")

	var cerr *quadratic.CoefficientError
	if !errors.As(err, &cerr) {
		t.Fatalf("error %v is not a *CoefficientError", err)
	}
	if cerr.Name != "c" {
		t.Errorf("Name = %q, want %q", cerr.Name, "c")
	}
	if cerr.Value != `"oops"` {
		t.Errorf("Value = %q, want %q", cerr.Value, `"oops"`)
	}
}

func TestParseCoefficient_TruncatesLongInput(t *testing.T) {
	raw := strings.Repeat("x", 200)

	_, err := ParseCoefficient("a", raw)
	if err == nil {
		t.Fatal("expected error")
	}
	if strings.Contains(err.Error(), raw) {
		t.Error("error message should not echo oversized input")
	}
}

func TestParseCoefficients(t *testing.T) {
	tests := []struct {
		name     string
		a, b, c  string
		want     quadratic.Coefficients
		wantName string
	}{
		{"all valid", "1", "-3", "2", quadratic.Coefficients{A: 1, B: -3, C: 2}, ""},
		{"first failure wins", "x", "y", "2", quadratic.Coefficients{}, "a"},
		{"bad c", "1", "2", "nan", quadratic.Coefficients{}, "c"},
		{"zero a is not a parse error", "0", "1", "1", quadratic.Coefficients{A: 0, B: 1, C: 1}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCoefficients(tt.a, tt.b, tt.c)
			if tt.wantName == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if got != tt.want {
					t.Errorf("ParseCoefficients() = %+v, want %+v", got, tt.want)
				}
				return
			}
			var cerr *quadratic.CoefficientError
			if !errors.As(err, &cerr) {
				t.Fatalf("error %v is not a *CoefficientError", err)
			}
			if cerr.Name != tt.wantName {
				t.Errorf("failing coefficient = %q, want %q", cerr.Name, tt.wantName)
			}
		})
	}
}
