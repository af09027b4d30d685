package webpage

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "strips tags and collapses whitespace",
			in:   "<html><body><h1>Exit</h1>\n\n<p>Take   the <b>red</b> pill.</p></body></html>",
			want: "Exit Take the red pill.",
		},
		{
			name: "drops script and style bodies",
			in:   `<head><style>p{color:red}</style><script>var x = "<p>no</p>";</script></head><p>yes</p>`,
			want: "yes",
		},
		{
			name: "decodes entities",
			in:   "<p>Zion &amp; the Machines</p>",
			want: "Zion & the Machines",
		},
		{
			name: "plain text",
			in:   "  just\ttext \n here ",
			want: "just text here",
		},
		{
			name: "empty",
			in:   "",
			want: "",
		},
		{
			name: "adjacent blocks stay separated",
			in:   "<div>one</div><div>two</div>",
			want: "one two",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractText(tt.in))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 8000))
	assert.Equal(t, "ab", Truncate("abc", 2))
	assert.Equal(t, "日本", Truncate("日本語", 2))
	assert.Equal(t, "", Truncate("abc", 0))
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			w.Write([]byte("<p>There is no spoon.</p>"))
		case "/big":
			w.Write([]byte(strings.Repeat("a", 64)))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	f := NewFetcher(srv.Client())

	body, err := f.Fetch(context.Background(), srv.URL+"/ok")
	require.NoError(t, err)
	assert.Equal(t, "<p>There is no spoon.</p>", body)

	_, err = f.Fetch(context.Background(), srv.URL+"/missing")
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)

	f.maxBytes = 10
	body, err = f.Fetch(context.Background(), srv.URL+"/big")
	require.NoError(t, err)
	assert.Len(t, body, 10)
}

func TestFetch_RejectsSchemes(t *testing.T) {
	f := NewFetcher(nil)
	for _, u := range []string{"file:///etc/passwd", "ftp://example.com", "not a url", "javascript:alert(1)"} {
		_, err := f.Fetch(context.Background(), u)
		assert.Error(t, err, u)
	}

	_, err := f.Fetch(context.Background(), "file:///etc/passwd")
	assert.True(t, errors.Is(err, ErrUnsupportedScheme))
}

func TestSummarizable(t *testing.T) {
	page := "<html><body>" + strings.Repeat("<p>word</p>", 3000) + "</body></html>"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(page))
	}))
	defer srv.Close()

	text, err := NewFetcher(srv.Client()).Summarizable(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, 8000, len([]rune(text)))
	assert.True(t, strings.HasPrefix(text, "word word"))
}
