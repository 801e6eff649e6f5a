package factory

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/minjae-ko/localtax-portal/internal/search"
	"github.com/minjae-ko/localtax-portal/internal/search/es"
)

type Backend string

const (
	Memory Backend = "memory"
	ES     Backend = "es"
)

type Config struct {
	Backend Backend
	Es      *es.ClientConfig
}

func LoadEnv() (*Config, error) {
	backend := Backend(os.Getenv("SEARCH_BACKEND"))
	if backend == "" {
		backend = Memory
	}
	if backend != Memory && backend != ES {
		return nil, fmt.Errorf(
			"invalid SEARCH_BACKEND value: %s, expected one of %v",
			backend, []Backend{Memory, ES})
	}

	var esCfg *es.ClientConfig
	if backend == ES {
		esCfg = &es.ClientConfig{
			Addresses: strings.Split(os.Getenv("ES_ADDRESSES"), ","),
			IndexName: os.Getenv("ES_INDEX_NAME"),
			Username:  os.Getenv("ES_USERNAME"),
			Password:  os.Getenv("ES_PASSWORD"),
		}
		if len(esCfg.Addresses) == 0 || esCfg.Addresses[0] == "" || esCfg.IndexName == "" {
			slog.Error("Elasticsearch configuration is incomplete", "addresses", esCfg.Addresses, "indexName", esCfg.IndexName)
			return nil, fmt.Errorf("elasticsearch configuration is incomplete: addresses or index name is missing")
		}
	}

	return &Config{Backend: backend, Es: esCfg}, nil
}

// NewSearcher builds the configured search backend. The memory backend
// defers its corpus scan to the first query; the es backend syncs the corpus
// into the index up front.
func NewSearcher(ctx context.Context, cfg *Config, corpus search.CorpusFunc) (search.Searcher, error) {
	switch cfg.Backend {
	case Memory:
		return search.NewIndex(corpus), nil

	case ES:
		indexer, err := es.NewIndexer(ctx, *cfg.Es, corpus)
		if err != nil {
			return nil, fmt.Errorf("failed to create es indexer: %w", err)
		}
		if err := indexer.SyncCorpus(ctx); err != nil {
			return nil, fmt.Errorf("failed to sync search corpus: %w", err)
		}
		return es.NewSearcher(*cfg.Es)

	default:
		return nil, fmt.Errorf("unsupported search backend: %s", cfg.Backend)
	}
}
