package search

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/customsearch/v1"
)

func TestBuildQueries(t *testing.T) {
	tests := []struct {
		name     string
		company  string
		jobTitle string
		want     []string
	}{
		{
			name:     "company and title",
			company:  "Acme Corp",
			jobTitle: "Data Analyst",
			want: []string{
				"Acme Corp recruiter email Data Analyst",
				"Acme Corp careers contact",
			},
		},
		{
			name:    "company only",
			company: "Acme Corp",
			want: []string{
				"Acme Corp recruiter email",
				"Acme Corp careers contact",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buildQueries(tt.company, tt.jobTitle))
		})
	}
}

func TestEmailFromItems(t *testing.T) {
	tests := []struct {
		name  string
		items []*customsearch.Result
		want  string
	}{
		{
			name: "email in snippet",
			items: []*customsearch.Result{
				{Title: "Careers at Acme", Snippet: "Reach our team at talent@acme.com for openings."},
			},
			want: "talent@acme.com",
		},
		{
			name: "email in title",
			items: []*customsearch.Result{
				{Title: "jobs@acme.io | Acme Hiring", Snippet: "Apply today."},
			},
			want: "jobs@acme.io",
		},
		{
			name: "first item wins",
			items: []*customsearch.Result{
				{Snippet: "Contact first@acme.com"},
				{Snippet: "Contact second@acme.com"},
			},
			want: "first@acme.com",
		},
		{
			name: "no email anywhere",
			items: []*customsearch.Result{
				{Title: "Acme Careers", Snippet: "Join our team."},
			},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, emailFromItems(tt.items))
		})
	}
}

func TestRelevantLinks(t *testing.T) {
	t.Run("prefers contact-looking pages", func(t *testing.T) {
		items := []*customsearch.Result{
			{Link: "https://acme.com/blog/post", Title: "Engineering Blog"},
			{Link: "https://acme.com/careers", Title: "Careers at Acme"},
			{Link: "https://linkedin.com/in/jane-doe", Title: "Jane Doe"},
		}

		links := relevantLinks(items)
		require.Len(t, links, 2)
		assert.Equal(t, "https://acme.com/careers", links[0].URL)
		assert.Equal(t, "Careers at Acme", links[0].Title)
		assert.Equal(t, "https://linkedin.com/in/jane-doe", links[1].URL)
	})

	t.Run("falls back to top hits when nothing matches", func(t *testing.T) {
		items := []*customsearch.Result{
			{Link: "https://acme.com/about", Title: "About Acme"},
			{Link: "https://acme.com/blog", Title: "Blog"},
		}

		links := relevantLinks(items)
		require.Len(t, links, 2)
		assert.Equal(t, "https://acme.com/about", links[0].URL)
	})

	t.Run("caps the listing", func(t *testing.T) {
		var items []*customsearch.Result
		for i := 0; i < 10; i++ {
			items = append(items, &customsearch.Result{
				Link:  fmt.Sprintf("https://acme.com/careers/%d", i),
				Title: "Careers",
			})
		}

		assert.Len(t, relevantLinks(items), maxRelevantURLs)
	})
}

func TestEmailFromPages(t *testing.T) {
	items := []*customsearch.Result{
		{Link: "https://acme.com/careers"},
		{Link: "https://acme.com/contact"},
	}

	t.Run("finds email in fetched page", func(t *testing.T) {
		f := &Finder{}
		f.fetchText = func(ctx context.Context, url string) (string, string, error) {
			if url == "https://acme.com/contact" {
				return "Write to hiring@acme.com", "<html></html>", nil
			}
			return "No address here", "<html></html>", nil
		}

		assert.Equal(t, "hiring@acme.com", f.emailFromPages(context.Background(), items))
	})

	t.Run("scans raw HTML for mailto targets", func(t *testing.T) {
		f := &Finder{}
		f.fetchText = func(ctx context.Context, url string) (string, string, error) {
			return "Get in touch", `<a href="mailto:jobs@acme.com">Email us</a>`, nil
		}

		assert.Equal(t, "jobs@acme.com", f.emailFromPages(context.Background(), items))
	})

	t.Run("earlier result wins over later one", func(t *testing.T) {
		f := &Finder{}
		f.fetchText = func(ctx context.Context, url string) (string, string, error) {
			if url == "https://acme.com/careers" {
				return "first@acme.com", "", nil
			}
			return "second@acme.com", "", nil
		}

		assert.Equal(t, "first@acme.com", f.emailFromPages(context.Background(), items))
	})

	t.Run("fetch failures are skipped", func(t *testing.T) {
		f := &Finder{}
		f.fetchText = func(ctx context.Context, url string) (string, string, error) {
			if url == "https://acme.com/careers" {
				return "", "", fmt.Errorf("connection refused")
			}
			return "Reach out to talent@acme.com", "", nil
		}

		assert.Equal(t, "talent@acme.com", f.emailFromPages(context.Background(), items))
	})

	t.Run("no email on any page", func(t *testing.T) {
		f := &Finder{}
		f.fetchText = func(ctx context.Context, url string) (string, string, error) {
			return "Nothing useful", "", nil
		}

		assert.Empty(t, f.emailFromPages(context.Background(), items))
	})
}
