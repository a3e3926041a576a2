package pipeline

import (
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestCheckAllBoxes - checkbox coercion
// ---------------------------------------------------------------------------

func TestCheckAllBoxes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "unchecked",
			input: `<input type="checkbox">`,
			want:  `<input type="checkbox" checked="checked">`,
		},
		{
			name:  "already checked bare",
			input: `<input checked type="checkbox">`,
			want:  `<input type="checkbox" checked="checked">`,
		},
		{
			name:  "self closing",
			input: `<input type="checkbox" name="a"/>`,
			want:  `<input type="checkbox" name="a" checked="checked" />`,
		},
		{
			name:  "uppercase type",
			input: `<INPUT TYPE="CheckBox" id=x>`,
			want:  `<input type="CheckBox" id="x" checked="checked">`,
		},
		{
			name:  "attribute values re-escaped",
			input: `<input type="checkbox" value="a &amp; &quot;b&quot;">`,
			want:  `<input type="checkbox" value="a &amp; &#34;b&#34;" checked="checked">`,
		},
		{
			name:  "radio untouched",
			input: `<input type="radio" name="r">`,
			want:  `<input type="radio" name="r">`,
		},
		{
			name:  "surrounding markup verbatim",
			input: "<!-- checkbox --><p class='x'>A &amp; B</p>\n<input type=checkbox>",
			want:  "<!-- checkbox --><p class='x'>A &amp; B</p>\n<input type=\"checkbox\" checked=\"checked\">",
		},
		{
			name:  "script text untouched",
			input: `<script>var s = '<input type="checkbox">';</script>`,
			want:  `<script>var s = '<input type="checkbox">';</script>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := CheckAllBoxes(tt.input); got != tt.want {
				t.Errorf("CheckAllBoxes() =\n %q\nwant\n %q", got, tt.want)
			}
		})
	}
}

func TestCheckAllBoxes_ExactlyOneCheckedAndStable(t *testing.T) {
	t.Parallel()

	in := `<form><input type="checkbox" checked="checked" checked><input type="checkbox"></form>`

	once := CheckAllBoxes(in)
	twice := CheckAllBoxes(once)

	if once != twice {
		t.Errorf("not idempotent:\n once=%q\ntwice=%q", once, twice)
	}
	if n := strings.Count(once, `checked="checked"`); n != 2 {
		t.Errorf("checked count = %d, want 2 (one per checkbox): %q", n, once)
	}
}

func TestCheckAllBoxes_NoCheckboxFastPath(t *testing.T) {
	t.Parallel()

	in := `<p>Nothing to see</p>`
	if got := CheckAllBoxes(in); got != in {
		t.Errorf("CheckAllBoxes() = %q, want input unchanged", got)
	}
}
