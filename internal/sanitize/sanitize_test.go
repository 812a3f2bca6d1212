package sanitize

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHTML(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "plain text is untouched",
			in:   `Tom & "Jerry" it's fine`,
			want: `Tom & "Jerry" it's fine`,
		},
		{
			name: "empty",
			in:   "",
			want: "",
		},
		{
			name: "script tag is escaped",
			in:   `Naughty <script>alert("xss")</script>`,
			want: `Naughty &lt;script&gt;alert("xss")&lt;/script&gt;`,
		},
		{
			name: "event handler attribute is dropped",
			in:   `Bad image <img src="https://url.to.file.which/does-not.exist" onerror="alert(document.cookie);">. But not <strong>all</strong> bad.`,
			want: `Bad image <img src="https://url.to.file.which/does-not.exist">. But not <strong>all</strong> bad.`,
		},
		{
			name: "javascript href is dropped",
			in:   `<a href="javascript:alert(1)" title="x">click</a>`,
			want: `<a title="x">click</a>`,
		},
		{
			name: "relative href is kept",
			in:   `<a href="/bookmark/1">one</a>`,
			want: `<a href="/bookmark/1">one</a>`,
		},
		{
			name: "comments are removed",
			in:   `before<!-- hidden -->after`,
			want: `beforeafter`,
		},
		{
			name: "unknown tag is escaped with its attributes",
			in:   `<iframe src="https://evil.example"></iframe>`,
			want: `&lt;iframe src="https://evil.example"&gt;&lt;/iframe&gt;`,
		},
		{
			name: "self closing tag",
			in:   `line<br/>break`,
			want: `line<br />break`,
		},
		{
			name: "lone angle brackets",
			in:   `1 < 2 > 0`,
			want: `1 &lt; 2 &gt; 0`,
		},
		{
			name: "unterminated tag at end",
			in:   `x <b`,
			want: `x &lt;b`,
		},
		{
			name: "unterminated disallowed tag at end",
			in:   `rating <img src=x onerror=alert(1)`,
			want: `rating &lt;img src=x onerror=alert(1)`,
		},
		{
			name: "trailing lone bracket",
			in:   `a <`,
			want: `a &lt;`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, HTML(tc.in))
		})
	}
}

func TestPolicy_Custom(t *testing.T) {
	t.Parallel()

	p := NewPolicy(map[string][]string{"B": nil})

	require.Equal(t, `<b>bold</b> &lt;i&gt;not&lt;/i&gt;`, p.Sanitize(`<b class="x">bold</b> <i>not</i>`))
}

func TestSafeURL(t *testing.T) {
	t.Parallel()

	require.True(t, safeURL("https://example.com"))
	require.True(t, safeURL("images/a.png"))
	require.True(t, safeURL("#top"))
	require.False(t, safeURL(""))
	require.False(t, safeURL("JavaScript:alert(1)"))
	require.False(t, safeURL("vbscript:msgbox"))
}
