package es

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/textquerytype"

	"github.com/minjae-ko/localtax-portal/internal/search"
)

// Searcher serves ranked lookups from an Elasticsearch index built by the
// Indexer. Prefix semantics match the in-memory backend via bool_prefix.
type Searcher struct {
	client    *elasticsearch.TypedClient
	indexName string
}

func NewSearcher(config ClientConfig) (*Searcher, error) {
	client, err := newClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	return &Searcher{
		client:    client,
		indexName: config.IndexName,
	}, nil
}

func (s *Searcher) Search(ctx context.Context, query string, limit int) ([]search.Result, error) {
	if strings.TrimSpace(query) == "" {
		return []search.Result{}, nil
	}
	if limit <= 0 {
		limit = search.DefaultLimit
	}

	boolPrefix := textquerytype.Boolprefix
	res, err := s.client.Search().
		Index(s.indexName).
		Query(&types.Query{
			MultiMatch: &types.MultiMatchQuery{
				Query:  query,
				Fields: []string{"title^2.0", "body"},
				Type:   &boolPrefix,
			},
		}).
		Size(limit).
		Do(ctx)
	if err != nil {
		slog.Error("Elasticsearch query failed", "error", err, "query", query)
		return nil, fmt.Errorf("failed to execute search: %w", err)
	}

	results := make([]search.Result, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		var doc search.Document
		if err := json.Unmarshal(hit.Source_, &doc); err != nil {
			return nil, fmt.Errorf("failed to unmarshal document: %w", err)
		}

		var score float64
		if hit.Score_ != nil {
			score = float64(*hit.Score_)
		}

		results = append(results, search.Result{
			ID:       doc.ID,
			Title:    doc.Title,
			Category: doc.CategoryLabel,
			Path:     doc.Path,
			Snippet:  search.ExtractSnippet(doc.Body, query),
			Score:    score,
		})
	}

	return results, nil
}
