package search

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staticCorpus(docs []Document) CorpusFunc {
	return func(ctx context.Context) ([]Document, error) {
		return docs, nil
	}
}

var testDocs = []Document{
	{
		ID:            "acquisition/exemption/veterans",
		Title:         "국가유공자 감면",
		CategoryLabel: "취득세",
		Path:          "/acquisition/exemption/veterans",
		Body:          "국가유공자에 대한 취득세 감면 요건을 설명합니다.\n감면율은 100분의 100입니다.",
	},
	{
		ID:            "acquisition/rates/housing",
		Title:         "주택 세율",
		CategoryLabel: "취득세",
		Path:          "/acquisition/rates/housing",
		Body:          "주택 취득세율은 취득가액에 따라 달라집니다. first-time buyer relief applies.",
	},
	{
		ID:            "property/overview",
		Title:         "재산세 개요",
		CategoryLabel: "재산세",
		Path:          "/property/overview",
		Body:          "재산세는 매년 6월 1일 기준으로 과세됩니다.",
	},
}

func TestIndex_Search_MatchesVerbatimQuery(t *testing.T) {
	idx := NewIndex(staticCorpus(testDocs))

	results, err := idx.Search(context.Background(), "감면", 10)

	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "acquisition/exemption/veterans", results[0].ID)
	assert.Equal(t, "취득세", results[0].Category)
	assert.Contains(t, results[0].Snippet, "감면")
	assert.Positive(t, results[0].Score)
}

func TestIndex_Search_PrefixMatching(t *testing.T) {
	idx := NewIndex(staticCorpus(testDocs))

	// "fir" should match "first-time" by word-beginning.
	results, err := idx.Search(context.Background(), "fir", 10)

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "acquisition/rates/housing", results[0].ID)
}

func TestIndex_Search_EmptyQuery(t *testing.T) {
	calls := int32(0)
	idx := NewIndex(func(ctx context.Context) ([]Document, error) {
		atomic.AddInt32(&calls, 1)
		return testDocs, nil
	})

	results, err := idx.Search(context.Background(), "   ", 10)

	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Zero(t, atomic.LoadInt32(&calls), "blank query must not build the index")
}

func TestIndex_Search_NonsenseQuery(t *testing.T) {
	idx := NewIndex(staticCorpus(testDocs))

	results, err := idx.Search(context.Background(), "zzzzqqqq", 10)

	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestIndex_Search_AllTermsRequired(t *testing.T) {
	idx := NewIndex(staticCorpus(testDocs))

	results, err := idx.Search(context.Background(), "재산세 감면", 10)

	require.NoError(t, err)
	assert.Empty(t, results, "no document carries both terms")
}

func TestIndex_BuildsOnceUnderConcurrentFirstAccess(t *testing.T) {
	calls := int32(0)
	idx := NewIndex(func(ctx context.Context) ([]Document, error) {
		atomic.AddInt32(&calls, 1)
		return testDocs, nil
	})

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := idx.Search(context.Background(), "감면", 10)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "concurrent first queries must share one build")
}

func TestIndex_Reset_TriggersRebuild(t *testing.T) {
	calls := int32(0)
	idx := NewIndex(func(ctx context.Context) ([]Document, error) {
		atomic.AddInt32(&calls, 1)
		return testDocs, nil
	})

	_, err := idx.Search(context.Background(), "감면", 10)
	require.NoError(t, err)
	require.Equal(t, int32(1), atomic.LoadInt32(&calls))

	idx.Reset()

	_, err = idx.Search(context.Background(), "감면", 10)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestIndex_Search_RespectsLimit(t *testing.T) {
	idx := NewIndex(staticCorpus(testDocs))

	results, err := idx.Search(context.Background(), "취득", 1)

	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestTokenize(t *testing.T) {
	tokens := Tokenize("주택 취득세율, First-Time Buyer!")

	assert.Equal(t, []string{"주택", "취득세율", "first", "time", "buyer"}, tokens)
}

func TestExtractSnippet(t *testing.T) {
	longBody := strings.Repeat("가", 60) + " 감면 내용 " + strings.Repeat("나", 200)

	t.Run("match window with ellipsis", func(t *testing.T) {
		s := ExtractSnippet(longBody, "감면")
		assert.True(t, strings.HasPrefix(s, "..."))
		assert.True(t, strings.HasSuffix(s, "..."))
		assert.Contains(t, s, "감면")
	})

	t.Run("match at start has no leading ellipsis", func(t *testing.T) {
		s := ExtractSnippet("감면 "+strings.Repeat("나", 200), "감면")
		assert.False(t, strings.HasPrefix(s, "..."))
		assert.True(t, strings.HasSuffix(s, "..."))
	})

	t.Run("no literal match falls back to head", func(t *testing.T) {
		s := ExtractSnippet(longBody, "없는말")
		assert.True(t, strings.HasSuffix(s, "..."))
		assert.True(t, strings.HasPrefix(s, "가"))
	})

	t.Run("case insensitive", func(t *testing.T) {
		s := ExtractSnippet("The First-Time Buyer relief works.", "first-time")
		assert.Contains(t, s, "First-Time")
	})
}
