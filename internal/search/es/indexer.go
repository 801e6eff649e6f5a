package es

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esutil"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"

	"github.com/minjae-ko/localtax-portal/internal/search"
)

// Indexer loads the content corpus into an Elasticsearch index. The portal
// re-syncs the full corpus at startup; content volume is small enough that a
// complete bulk load beats incremental bookkeeping.
type Indexer struct {
	client    *elasticsearch.TypedClient
	indexName string
	corpus    search.CorpusFunc
}

func NewIndexer(ctx context.Context, config ClientConfig, corpus search.CorpusFunc) (*Indexer, error) {
	client, err := newClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	idx := &Indexer{
		client:    client,
		indexName: config.IndexName,
		corpus:    corpus,
	}

	if err := idx.EnsureIndex(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure index exists: %w", err)
	}

	return idx, nil
}

func (e *Indexer) EnsureIndex(ctx context.Context) error {
	exists, err := e.client.Indices.Exists(e.indexName).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to check index existence: %w", err)
	}
	if exists {
		return nil
	}

	_, err = e.client.Indices.Create(e.indexName).
		Mappings(&types.TypeMapping{
			Properties: map[string]types.Property{
				"id":       types.NewKeywordProperty(),
				"title":    &types.TextProperty{},
				"category": types.NewKeywordProperty(),
				"path":     types.NewKeywordProperty(),
				"body":     &types.TextProperty{},
			},
		}).
		Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to create index %s: %w", e.indexName, err)
	}

	slog.Info("created search index", "index", e.indexName)
	return nil
}

// SyncCorpus bulk-indexes every corpus document, overwriting by document ID.
func (e *Indexer) SyncCorpus(ctx context.Context) error {
	docs, err := e.corpus(ctx)
	if err != nil {
		return fmt.Errorf("failed to load corpus: %w", err)
	}
	if len(docs) == 0 {
		return nil
	}

	bi, err := esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Index:         e.indexName,
		Client:        e.client,
		NumWorkers:    2,
		FlushInterval: 30 * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to create bulk indexer: %w", err)
	}

	var failed int64
	for _, doc := range docs {
		docBytes, err := json.Marshal(doc)
		if err != nil {
			slog.Error("failed to marshal document", "error", err, "id", doc.ID)
			failed++
			continue
		}

		err = bi.Add(ctx, esutil.BulkIndexerItem{
			Action:     "index",
			DocumentID: doc.ID,
			Body:       bytes.NewReader(docBytes),
			OnFailure: func(ctx context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem, err error) {
				failed++
				if err != nil {
					slog.Error("bulk index error", "error", err, "id", item.DocumentID)
				} else {
					slog.Error("bulk index error", "status", res.Status, "reason", res.Error.Reason, "id", item.DocumentID)
				}
			},
		})
		if err != nil {
			failed++
			slog.Error("failed to add document to bulk indexer", "error", err, "id", doc.ID)
		}
	}

	if err := bi.Close(ctx); err != nil {
		return fmt.Errorf("failed to close bulk indexer: %w", err)
	}

	stats := bi.Stats()
	slog.Info("corpus sync completed", "indexed", stats.NumFlushed, "failed", failed)
	if failed > 0 {
		return fmt.Errorf("%d documents failed to index", failed)
	}
	return nil
}
