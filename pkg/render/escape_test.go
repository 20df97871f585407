package render

import "testing"

func TestEscape(t *testing.T) {
	tests := []struct {
		in       string
		wantHTML string
		wantAttr string
	}{
		{"", "", ""},
		{"Welcome to React", "Welcome to React", "Welcome to React"},
		{"HTML & CSS", "HTML &amp; CSS", "HTML &amp; CSS"},
		{"a < b > c", "a &lt; b &gt; c", "a &lt; b &gt; c"},
		{`say "hi"`, "say &quot;hi&quot;", "say &quot;hi&quot;"},
		{"it's", "it&#39;s", "it&#39;s"},
		{"<script>alert('x')</script>", "&lt;script&gt;alert(&#39;x&#39;)&lt;/script&gt;", "&lt;script&gt;alert(&#39;x&#39;)&lt;/script&gt;"},
		{"line\none", "line\none", "line&#10;one"},
		{"a\tb\r", "a\tb\r", "a&#9;b&#13;"},
		{"Asabeneh Yetayeh 🌍", "Asabeneh Yetayeh 🌍", "Asabeneh Yetayeh 🌍"},
	}
	for _, tt := range tests {
		if got := escapeHTML(tt.in); got != tt.wantHTML {
			t.Errorf("escapeHTML(%q) = %q, want %q", tt.in, got, tt.wantHTML)
		}
		if got := escapeAttr(tt.in); got != tt.wantAttr {
			t.Errorf("escapeAttr(%q) = %q, want %q", tt.in, got, tt.wantAttr)
		}
	}
}

func TestEscapeIsNotIdempotent(t *testing.T) {
	once := escapeHTML("&")
	if twice := escapeHTML(once); twice != "&amp;amp;" {
		t.Errorf("escapeHTML(%q) = %q", once, twice)
	}
}
