// Package search finds recruiter contact information on the web. It queries
// Google Programmable Search for a company (and optional job title), scans
// result snippets and pages for an email address, and falls back to a list
// of relevant contact/careers URLs when no address turns up.
package search

import (
	"context"
	"fmt"
	"log"
	"strings"

	"golang.org/x/sync/errgroup"
	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"

	"github.com/tinghuan/followup-agent/internal/extract"
	"github.com/tinghuan/followup-agent/internal/fetch"
	"github.com/tinghuan/followup-agent/internal/types"
)

// maxResultsPerQuery caps how many hits are taken from each search query.
const maxResultsPerQuery = 5

// maxPagesFetched caps how many result pages are downloaded and scanned.
const maxPagesFetched = 4

// maxRelevantURLs caps the fallback URL listing returned to the caller.
const maxRelevantURLs = 5

// Finder performs recruiter email searches against the Google Programmable
// Search API.
type Finder struct {
	svc       *customsearch.Service
	cx        string
	fetchOpts *fetch.Options

	// fetchText retrieves a page as plain text plus raw HTML; swappable in
	// tests so no real pages are downloaded.
	fetchText func(ctx context.Context, url string) (text, html string, err error)
}

// NewFinder creates a Finder. cx is the Programmable Search engine ID.
func NewFinder(ctx context.Context, apiKey, cx string) (*Finder, error) {
	svc, err := customsearch.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create customsearch service: %w", err)
	}

	f := &Finder{
		svc:       svc,
		cx:        cx,
		fetchOpts: fetch.DefaultOptions(),
	}
	f.fetchText = f.fetchPage
	return f, nil
}

// FindRecruiterEmail searches for a recruiter email address for the given
// company and optional job title. A found address short-circuits the URL
// listing; otherwise the most relevant contact-looking hits are returned.
func (f *Finder) FindRecruiterEmail(ctx context.Context, company, jobTitle string) (*types.SearchResult, error) {
	if strings.TrimSpace(company) == "" {
		return nil, fmt.Errorf("company name is required for a recruiter search")
	}

	items, err := f.collectItems(ctx, buildQueries(company, jobTitle))
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return &types.SearchResult{RelevantURLs: []types.LinkRef{}}, nil
	}

	// Snippets often already contain the address; no page fetch needed.
	if email := emailFromItems(items); email != "" {
		return &types.SearchResult{FoundEmail: email, RelevantURLs: []types.LinkRef{}}, nil
	}

	if email := f.emailFromPages(ctx, items); email != "" {
		return &types.SearchResult{FoundEmail: email, RelevantURLs: []types.LinkRef{}}, nil
	}

	return &types.SearchResult{RelevantURLs: relevantLinks(items)}, nil
}

// collectItems runs each query and gathers unique hits in query order.
func (f *Finder) collectItems(ctx context.Context, queries []string) ([]*customsearch.Result, error) {
	seen := make(map[string]bool)
	var items []*customsearch.Result

	for _, q := range queries {
		resp, err := f.svc.Cse.List().Cx(f.cx).Q(q).Num(maxResultsPerQuery).Context(ctx).Do()
		if err != nil {
			// A single failed query is not fatal when another already
			// produced hits.
			if len(items) > 0 {
				log.Printf("[search] query %q failed: %v", q, err)
				continue
			}
			return nil, fmt.Errorf("search failed: %w", err)
		}
		for _, item := range resp.Items {
			if item.Link == "" || seen[item.Link] {
				continue
			}
			seen[item.Link] = true
			items = append(items, item)
		}
	}
	return items, nil
}

// emailFromPages downloads the top result pages concurrently and scans them
// in result order so the outcome is deterministic.
func (f *Finder) emailFromPages(ctx context.Context, items []*customsearch.Result) string {
	n := len(items)
	if n > maxPagesFetched {
		n = maxPagesFetched
	}

	texts := make([]string, n)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(n)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			text, html, err := f.fetchText(gctx, items[i].Link)
			if err != nil {
				log.Printf("[search] skipping %s: %v", items[i].Link, err)
				return nil
			}
			// Scan the raw HTML too: mailto links live in attributes, not
			// in the visible text.
			texts[i] = text + "\n" + html
			return nil
		})
	}
	_ = g.Wait()

	for _, text := range texts {
		if email := extract.Email(text); email != "" {
			return email
		}
	}
	return ""
}

// fetchPage is the real page fetcher behind fetchText.
func (f *Finder) fetchPage(ctx context.Context, url string) (string, string, error) {
	res, err := fetch.URL(ctx, url, f.fetchOpts)
	if err != nil {
		return "", "", err
	}
	return res.Text, res.HTML, nil
}

// buildQueries composes the search queries for a company/title pair.
func buildQueries(company, jobTitle string) []string {
	if jobTitle != "" {
		return []string{
			fmt.Sprintf("%s recruiter email %s", company, jobTitle),
			fmt.Sprintf("%s careers contact", company),
		}
	}
	return []string{
		fmt.Sprintf("%s recruiter email", company),
		fmt.Sprintf("%s careers contact", company),
	}
}

// emailFromItems scans result titles and snippets for the first address.
func emailFromItems(items []*customsearch.Result) string {
	for _, item := range items {
		if email := extract.Email(item.Title + " " + item.Snippet); email != "" {
			return email
		}
	}
	return ""
}

// contactKeywords mark URLs and titles that plausibly lead to a recruiter:
// careers and contact pages, job boards and recruiter profiles.
var contactKeywords = []string{
	"careers", "career", "jobs", "contact", "recruit", "talent", "hiring", "linkedin.com/in",
}

// relevantLinks filters hits down to contact-looking pages. When nothing
// matches the keywords, the top hits are returned as-is so the caller is
// never left empty-handed after a successful search.
func relevantLinks(items []*customsearch.Result) []types.LinkRef {
	links := make([]types.LinkRef, 0, maxRelevantURLs)
	for _, item := range items {
		if !looksLikeContactPage(item) {
			continue
		}
		links = append(links, types.LinkRef{URL: item.Link, Title: item.Title})
		if len(links) == maxRelevantURLs {
			return links
		}
	}
	if len(links) > 0 {
		return links
	}

	for _, item := range items {
		links = append(links, types.LinkRef{URL: item.Link, Title: item.Title})
		if len(links) == maxRelevantURLs {
			break
		}
	}
	return links
}

func looksLikeContactPage(item *customsearch.Result) bool {
	haystack := strings.ToLower(item.Link + " " + item.Title)
	for _, kw := range contactKeywords {
		if strings.Contains(haystack, kw) {
			return true
		}
	}
	return false
}
