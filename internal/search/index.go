package search

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Index is the in-process full-text index over all content documents. It is
// built lazily on first query from a full corpus scan; concurrent first
// callers share a single build via singleflight. Reset drops the built state
// so the next query rebuilds from scratch.
type Index struct {
	load CorpusFunc

	group singleflight.Group

	mu       sync.RWMutex
	built    bool
	docs     []Document
	terms    []string
	postings map[string]map[int]int
}

func NewIndex(load CorpusFunc) *Index {
	return &Index{load: load}
}

func (i *Index) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	if strings.TrimSpace(query) == "" {
		return []Result{}, nil
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	if err := i.ensureBuilt(ctx); err != nil {
		return nil, err
	}

	queryTerms := Tokenize(query)
	if len(queryTerms) == 0 {
		return []Result{}, nil
	}

	i.mu.RLock()
	defer i.mu.RUnlock()

	// Every query term must match some indexed term by prefix; a document
	// scores the sum of its matched term frequencies.
	scores := make(map[int]float64)
	for termIdx, qt := range queryTerms {
		termScores := i.prefixScores(qt)
		if termIdx == 0 {
			for docID, c := range termScores {
				scores[docID] = float64(c)
			}
			continue
		}
		for docID := range scores {
			c, ok := termScores[docID]
			if !ok {
				delete(scores, docID)
				continue
			}
			scores[docID] += float64(c)
		}
	}

	ranked := make([]int, 0, len(scores))
	for docID := range scores {
		ranked = append(ranked, docID)
	}
	sort.Slice(ranked, func(a, b int) bool {
		if scores[ranked[a]] != scores[ranked[b]] {
			return scores[ranked[a]] > scores[ranked[b]]
		}
		return ranked[a] < ranked[b]
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	results := make([]Result, 0, len(ranked))
	for _, docID := range ranked {
		doc := i.docs[docID]
		results = append(results, Result{
			ID:       doc.ID,
			Title:    doc.Title,
			Category: doc.CategoryLabel,
			Path:     doc.Path,
			Snippet:  ExtractSnippet(doc.Body, query),
			Score:    scores[docID],
		})
	}
	return results, nil
}

// prefixScores accumulates per-document counts over every indexed term with
// the given prefix.
func (i *Index) prefixScores(prefix string) map[int]int {
	acc := make(map[int]int)
	from := sort.SearchStrings(i.terms, prefix)
	for t := from; t < len(i.terms) && strings.HasPrefix(i.terms[t], prefix); t++ {
		for docID, c := range i.postings[i.terms[t]] {
			acc[docID] += c
		}
	}
	return acc
}

func (i *Index) ensureBuilt(ctx context.Context) error {
	i.mu.RLock()
	built := i.built
	i.mu.RUnlock()
	if built {
		return nil
	}

	_, err, _ := i.group.Do("build", func() (interface{}, error) {
		i.mu.RLock()
		built := i.built
		i.mu.RUnlock()
		if built {
			return nil, nil
		}

		docs, err := i.load(ctx)
		if err != nil {
			return nil, err
		}

		postings := make(map[string]map[int]int)
		for docID, doc := range docs {
			for _, term := range Tokenize(doc.Title + " " + doc.Body) {
				if postings[term] == nil {
					postings[term] = make(map[int]int)
				}
				postings[term][docID]++
			}
		}
		terms := make([]string, 0, len(postings))
		for term := range postings {
			terms = append(terms, term)
		}
		sort.Strings(terms)

		i.mu.Lock()
		i.docs = docs
		i.terms = terms
		i.postings = postings
		i.built = true
		i.mu.Unlock()

		slog.Info("search index built", "documents", len(docs), "terms", len(terms))
		return nil, nil
	})
	return err
}

// Reset clears the built index; the next query triggers a full rebuild.
func (i *Index) Reset() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.built = false
	i.docs = nil
	i.terms = nil
	i.postings = nil
}
