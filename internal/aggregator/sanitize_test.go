package aggregator

import (
	"strings"
	"testing"
)

func TestStripHTML(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"tags and nbsp", "<p>Hello&nbsp;World</p>", "Hello World"},
		{"entities", "A &amp; B &lt;c&gt; &quot;d&quot; &#39;e&#39;", `A & B <c> "d" 'e'`},
		{"whitespace collapse", "  a \n\n b\t\tc  ", "a b c"},
		{"nested tags", "<div><ul><li>one</li><li>two</li></ul></div>", "one two"},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := stripHTML(tc.in); got != tc.want {
				t.Fatalf("stripHTML(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("expected untouched string, got %q", got)
	}

	long := strings.Repeat("x", 30)
	got := truncate(long, 20)
	if len(got) != 20 {
		t.Fatalf("expected length 20, got %d", len(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("expected ellipsis suffix, got %q", got)
	}
}

func TestSanitizeDescriptionCapsLength(t *testing.T) {
	long := "<p>" + strings.Repeat("a", maxDescriptionLen+100) + "</p>"
	got := sanitizeDescription(long)
	if len(got) != maxDescriptionLen {
		t.Fatalf("expected capped length %d, got %d", maxDescriptionLen, len(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("expected ellipsis suffix")
	}
}
