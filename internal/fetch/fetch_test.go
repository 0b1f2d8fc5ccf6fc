package fetch

import (
	"context"
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
		html string
		want string
	}{
		{
			name: "simple body text",
			html: "<html><body><p>Contact us at hr@acme.com</p></body></html>",
			want: "Contact us at hr@acme.com",
		},
		{
			name: "scripts and styles removed",
			html: "<html><head><style>body{}</style></head><body><script>var x=1;</script><p>Careers</p></body></html>",
			want: "Careers",
		},
		{
			name: "whitespace collapsed",
			html: "<body><div>  Acme \n  Corp  </div><div>Recruiting</div></body>",
			want: "Acme Corp Recruiting",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractText(tt.html)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html><body><h1>Careers at Acme</h1><p>Email jane@acme.com</p></body></html>"))
	}))
	defer srv.Close()

	res, err := URL(context.Background(), srv.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, res.Text, "jane@acme.com")
	assert.True(t, strings.Contains(res.HTML, "<h1>"))
}

func TestURLRejectsInvalid(t *testing.T) {
	_, err := URL(context.Background(), "not-a-url", nil)
	require.Error(t, err)

	var ferr *Error
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, "not-a-url", ferr.URL)
}

func TestURLNon2xxStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := URL(context.Background(), srv.URL, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestShouldUseBrowser(t *testing.T) {
	assert.True(t, ShouldUseBrowser("tiny"))
	assert.False(t, ShouldUseBrowser(strings.Repeat("content ", 50)))
}
