package render

import "testing"

func TestEscapeHTML(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"Hello, World!", "Hello, World!"},
		{"Tom & Jerry", "Tom &amp; Jerry"},
		{"a < b > c", "a &lt; b &gt; c"},
		{`say "hi"`, "say &quot;hi&quot;"},
		{"it's", "it&#39;s"},
		{"&amp;", "&amp;amp;"},
		{"Hello 世界", "Hello 世界"},
		{"line\nbreak", "line\nbreak"},
	}

	for _, tt := range tests {
		if got := escapeHTML(tt.input); got != tt.want {
			t.Errorf("escapeHTML(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestEscapeAttr(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"plain", "plain"},
		{`" onmouseover="x`, "&quot; onmouseover=&quot;x"},
		{"a\nb\rc\td", "a&#10;b&#13;c&#9;d"},
		{"<&>", "&lt;&amp;&gt;"},
	}

	for _, tt := range tests {
		if got := escapeAttr(tt.input); got != tt.want {
			t.Errorf("escapeAttr(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
