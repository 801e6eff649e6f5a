package search

import "context"

// Document is one indexable unit: title + body of the latest version of a
// content file, tagged with its navigation context.
type Document struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	CategoryLabel string `json:"category"`
	Path          string `json:"path"`
	Body          string `json:"body"`
}

// Result is one ranked search hit.
type Result struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Category string  `json:"category"`
	Path     string  `json:"path"`
	Snippet  string  `json:"snippet"`
	Score    float64 `json:"score"`
}

// Searcher serves ranked full-text lookups over the content corpus.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]Result, error)
}

// CorpusFunc supplies the full document corpus for an index build.
type CorpusFunc func(ctx context.Context) ([]Document, error)

const DefaultLimit = 20
