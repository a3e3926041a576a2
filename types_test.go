package html2pdf

import (
	"errors"
	"testing"
)

// ---------------------------------------------------------------------------
// TestParsePolicy / TestParseEngine - Name parsing
// ---------------------------------------------------------------------------

func TestParsePolicy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Policy
		wantErr error
	}{
		{in: "", want: PolicyFull},
		{in: "full", want: PolicyFull},
		{in: " LIGHT ", want: PolicyLight},
		{in: "aggressive", wantErr: ErrInvalidPolicy},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := ParsePolicy(tt.in)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ParsePolicy(%q) error = %v, want %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParsePolicy(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseEngine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Engine
		wantErr error
	}{
		{in: "", want: EngineChrome},
		{in: "Chrome", want: EngineChrome},
		{in: "text", want: EngineText},
		{in: "webkit", wantErr: ErrInvalidEngine},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := ParseEngine(tt.in)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ParseEngine(%q) error = %v, want %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseEngine(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestPageSettings_Validate - Page validation
// ---------------------------------------------------------------------------

func TestPageSettings_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		page    *PageSettings
		wantErr error
	}{
		{name: "nil", page: nil},
		{name: "default", page: DefaultPageSettings()},
		{name: "letter landscape", page: &PageSettings{Size: "Letter", Orientation: "LANDSCAPE", Margin: 1}},
		{name: "min margin", page: &PageSettings{Size: "a4", Orientation: "portrait", Margin: MinMargin}},
		{name: "max margin", page: &PageSettings{Size: "a4", Orientation: "portrait", Margin: MaxMargin}},
		{name: "bad size", page: &PageSettings{Size: "tabloid", Orientation: "portrait", Margin: 1}, wantErr: ErrInvalidPageSize},
		{name: "bad orientation", page: &PageSettings{Size: "a4", Orientation: "diagonal", Margin: 1}, wantErr: ErrInvalidOrientation},
		{name: "margin too small", page: &PageSettings{Size: "a4", Orientation: "portrait", Margin: 0.1}, wantErr: ErrInvalidMargin},
		{name: "margin too large", page: &PageSettings{Size: "a4", Orientation: "portrait", Margin: 3.5}, wantErr: ErrInvalidMargin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if err := tt.page.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestPageSettings_Dimensions(t *testing.T) {
	t.Parallel()

	w, h := (&PageSettings{Size: "a4", Orientation: "landscape"}).dimensions()
	if w != 11.69 || h != 8.27 {
		t.Errorf("a4 landscape = %vx%v, want 11.69x8.27", w, h)
	}
}
