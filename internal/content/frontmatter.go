package content

import (
	"strings"

	"gopkg.in/yaml.v3"
)

const frontMatterDelim = "---"

// frontMatter carries every recognized header key, with both spellings of the
// date and legal-basis fields the content authors have used.
type frontMatter struct {
	Title          string `yaml:"title"`
	Description    string `yaml:"description"`
	Category       string `yaml:"category"`
	Version        string `yaml:"version"`
	LastUpdated    string `yaml:"last_updated"`
	LastUpdatedAlt string `yaml:"lastUpdated"`
	LawReference   string `yaml:"law_reference"`
	LegalBasis     string `yaml:"legalBasis"`
	Audience       string `yaml:"audience"`
}

func (fm *frontMatter) lastUpdated() string {
	if fm.LastUpdated != "" {
		return fm.LastUpdated
	}
	return fm.LastUpdatedAlt
}

func (fm *frontMatter) legalBasis() string {
	if fm.LawReference != "" {
		return fm.LawReference
	}
	return fm.LegalBasis
}

// splitFrontMatter separates the key-value header block from the body.
// Content without a header yields an empty frontMatter and the full body.
func splitFrontMatter(raw string) (*frontMatter, string, error) {
	fm := &frontMatter{}

	trimmed := strings.TrimPrefix(raw, "\uFEFF")
	if !strings.HasPrefix(trimmed, frontMatterDelim+"\n") && trimmed != frontMatterDelim {
		return fm, raw, nil
	}

	rest := strings.TrimPrefix(trimmed, frontMatterDelim+"\n")
	end := strings.Index(rest, "\n"+frontMatterDelim)
	if end < 0 {
		return fm, raw, nil
	}

	header := rest[:end]
	body := rest[end+len("\n"+frontMatterDelim):]
	body = strings.TrimPrefix(body, "\n")

	if err := yaml.Unmarshal([]byte(header), fm); err != nil {
		return nil, "", err
	}
	return fm, body, nil
}
