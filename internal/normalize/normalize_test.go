package normalize

import (
	"strings"
	"testing"
)

func TestCleanText(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "collapse whitespace",
			in:   "void   contracts\n\nhave\tno effect",
			want: "void contracts have no effect",
		},
		{
			name: "strip markup tags",
			in:   "<p>a contract is <b>void</b></p>",
			want: "a contract is void",
		},
		{
			name: "strip urls",
			in:   "see https://canlii.org/en/ca for details",
			want: "see  for details",
		},
		{
			name: "keep legal punctuation",
			in:   `R. v. Oakes; s. 1 (the "Oakes test") - 1986`,
			want: `R. v. Oakes; s. 1 (the "Oakes test") - 1986`,
		},
		{
			name: "drop disallowed characters",
			in:   "damages of $500 @ 5% interest!",
			want: "damages of 500  5 interest",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CleanText(tc.in); got != tc.want {
				t.Fatalf("CleanText(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestCombineDropsShortFragments(t *testing.T) {
	long := strings.Repeat("a voidable contract remains valid until rescinded ", 12)
	n := New(100)

	content, retained := n.Combine([]Fragment{
		{Content: "too short to keep", Source: "a"},
		{Content: long, Source: "b"},
	})

	if retained != 1 {
		t.Fatalf("retained = %d, want 1", retained)
	}
	if strings.Contains(content, "too short") {
		t.Fatalf("short fragment leaked into combined content")
	}
	if strings.Contains(content, Separator) {
		t.Fatalf("single retained fragment must not carry a separator")
	}
}

func TestCombineJoinsWithSeparator(t *testing.T) {
	a := strings.Repeat("first body of legal prose about consideration ", 5)
	b := strings.Repeat("second body of legal prose about capacity ", 5)
	n := New(100)

	content, retained := n.Combine([]Fragment{
		{Content: a, Source: "a"},
		{Content: b, Source: "b"},
	})

	if retained != 2 {
		t.Fatalf("retained = %d, want 2", retained)
	}
	if got := strings.Count(content, Separator); got != 1 {
		t.Fatalf("separator count = %d, want 1", got)
	}
}

func TestCombineAllDropped(t *testing.T) {
	n := New(100)
	content, retained := n.Combine([]Fragment{
		{Content: "<div></div>", Source: "a"},
		{Content: "   ", Source: "b"},
		{Content: "", Source: "c"},
	})
	if content != "" || retained != 0 {
		t.Fatalf("got (%q, %d), want empty content and zero retained", content, retained)
	}
}

func TestCombineThresholdBoundary(t *testing.T) {
	exact := strings.Repeat("x", 100)
	n := New(100)
	_, retained := n.Combine([]Fragment{{Content: exact, Source: "a"}})
	if retained != 1 {
		t.Fatalf("fragment at exactly the threshold must be retained")
	}
}
