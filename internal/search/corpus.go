package search

import (
	"context"
	"errors"
	"fmt"

	"github.com/minjae-ko/localtax-portal/internal/apperr"
	"github.com/minjae-ko/localtax-portal/internal/content"
	"github.com/minjae-ko/localtax-portal/internal/navigation"
)

// NewContentCorpus scans every category for the latest version of each
// logical document and maps it to an indexable Document. Category labels come
// from the navigation tree, falling back to the raw category id.
func NewContentCorpus(repo content.Repository, tree *navigation.Tree) CorpusFunc {
	return func(ctx context.Context) ([]Document, error) {
		var docs []Document

		for _, category := range content.Categories {
			label := tree.Label("/" + string(category))
			if label == "" {
				label = string(category)
			}

			slugs, err := repo.ListDocuments(category)
			if err != nil {
				return nil, fmt.Errorf("failed to list %s documents: %w", category, err)
			}

			for _, slugPath := range slugs {
				file, err := repo.Resolve(category, slugPath, "")
				if err != nil {
					var nf *apperr.NotFoundError
					if errors.As(err, &nf) {
						continue
					}
					return nil, err
				}

				doc, err := repo.Read(file)
				if err != nil {
					return nil, err
				}

				docs = append(docs, Document{
					ID:            doc.Meta.ID,
					Title:         doc.Meta.Title,
					CategoryLabel: label,
					Path:          "/" + doc.Meta.ID,
					Body:          doc.Body,
				})
			}
		}

		return docs, nil
	}
}
