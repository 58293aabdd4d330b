package tokens_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/wikitok/pkg/tokens"
)

func TestStore_Issue(t *testing.T) {
	t.Parallel()

	store := tokens.NewStore(tokens.Options{})

	first, err := store.Issue("interwiki", tokens.Attributes{"site": "local", "page": "Home"})
	require.NoError(t, err)
	second, err := store.Issue("interwiki", tokens.Attributes{"site": "en", "page": "Go"})
	require.NoError(t, err)

	assert.Equal(t, "\xFF0\xFF", first)
	assert.Equal(t, "\xFF1\xFF", second)
	assert.NotEqual(t, first, second)
	assert.Equal(t, 2, store.Len())

	tok, ok := store.Get(1)
	require.True(t, ok)
	assert.Equal(t, "interwiki", tok.Rule)
	assert.Equal(t, "en", tok.Attrs["site"])

	_, ok = store.Get(2)
	assert.False(t, ok)
	_, ok = store.Get(-1)
	assert.False(t, ok)
}

func TestStore_CustomDelimiter(t *testing.T) {
	t.Parallel()

	store := tokens.NewStore(tokens.Options{Delimiter: "@@"})
	placeholder, err := store.Issue("interwiki", nil)
	require.NoError(t, err)

	assert.Equal(t, "@@0@@", placeholder)
	assert.Equal(t, "@@", store.Delimiter())
}

func TestStore_MaxTokens(t *testing.T) {
	t.Parallel()

	store := tokens.NewStore(tokens.Options{MaxTokens: 1})

	_, err := store.Issue("interwiki", nil)
	require.NoError(t, err)

	_, err = store.Issue("interwiki", nil)
	require.ErrorIs(t, err, tokens.ErrTokenLimit)
	assert.Equal(t, 1, store.Len())
}

func TestStore_TokensReturnsCopy(t *testing.T) {
	t.Parallel()

	store := tokens.NewStore(tokens.Options{})
	_, err := store.Issue("interwiki", nil)
	require.NoError(t, err)

	toks := store.Tokens()
	toks[0].Rule = "changed"

	tok, ok := store.Get(0)
	require.True(t, ok)
	assert.Equal(t, "interwiki", tok.Rule)
}

func TestStore_CountByRule(t *testing.T) {
	t.Parallel()

	store := tokens.NewStore(tokens.Options{})
	for _, rule := range []string{"interwiki", "interwiki", "other"} {
		_, err := store.Issue(rule, nil)
		require.NoError(t, err)
	}

	assert.Equal(t, map[string]int{"interwiki": 2, "other": 1}, store.CountByRule())
}

func TestStore_ConcurrentIssue(t *testing.T) {
	t.Parallel()

	store := tokens.NewStore(tokens.Options{})

	var wg sync.WaitGroup
	seen := sync.Map{}
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			placeholder, err := store.Issue("interwiki", nil)
			assert.NoError(t, err)
			_, dup := seen.LoadOrStore(placeholder, true)
			assert.False(t, dup, "placeholder %q issued twice", placeholder)
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, store.Len())
}

func TestStore_Split(t *testing.T) {
	t.Parallel()

	store := tokens.NewStore(tokens.Options{})
	for range 2 {
		_, err := store.Issue("interwiki", nil)
		require.NoError(t, err)
	}

	tests := []struct {
		name string
		text string
		want []tokens.Segment
	}{
		{
			name: "plain text",
			text: "no tokens here",
			want: []tokens.Segment{{Text: "no tokens here", TokenID: -1}},
		},
		{
			name: "empty text",
			text: "",
			want: []tokens.Segment{},
		},
		{
			name: "tokens between text",
			text: "see \xFF0\xFF and \xFF1\xFF.",
			want: []tokens.Segment{
				{Text: "see ", TokenID: -1},
				{TokenID: 0},
				{Text: " and ", TokenID: -1},
				{TokenID: 1},
				{Text: ".", TokenID: -1},
			},
		},
		{
			name: "adjacent tokens",
			text: "\xFF0\xFF\xFF1\xFF",
			want: []tokens.Segment{{TokenID: 0}, {TokenID: 1}},
		},
		{
			name: "unknown id stays literal",
			text: "a\xFF9\xFFb",
			want: []tokens.Segment{{Text: "a\xFF9\xFFb", TokenID: -1}},
		},
		{
			name: "unterminated delimiter stays literal",
			text: "a\xFF0",
			want: []tokens.Segment{{Text: "a\xFF0", TokenID: -1}},
		},
		{
			name: "stray delimiter before token",
			text: "latin1 \xFFy \xFF0\xFF",
			want: []tokens.Segment{
				{Text: "latin1 \xFFy ", TokenID: -1},
				{TokenID: 0},
			},
		},
		{
			name: "doubled delimiter before token",
			text: "\xFF\xFF1\xFF!",
			want: []tokens.Segment{
				{Text: "\xFF", TokenID: -1},
				{TokenID: 1},
				{Text: "!", TokenID: -1},
			},
		},
		{
			name: "unknown id shares closing delimiter",
			text: "\xFF9\xFF0\xFF",
			want: []tokens.Segment{
				{Text: "\xFF9", TokenID: -1},
				{TokenID: 0},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, store.Split(tt.text))
		})
	}
}

func TestStore_Placeholders(t *testing.T) {
	t.Parallel()

	store := tokens.NewStore(tokens.Options{Delimiter: "@"})
	first, err := store.Issue("interwiki", tokens.Attributes{"page": "A"})
	require.NoError(t, err)
	second, err := store.Issue("interwiki", tokens.Attributes{"page": "B"})
	require.NoError(t, err)

	assert.Equal(t, []int{1, 0}, store.Placeholders(second+" then "+first+" and @7@"))
	assert.Empty(t, store.Placeholders("nothing"))
	assert.Equal(t, []int{0}, store.Placeholders("mail a@b "+first))
	assert.Equal(t, []int{1}, store.Placeholders("a@@b@@"+second))
}

func TestCheckDelimiter(t *testing.T) {
	t.Parallel()

	for _, delim := range []string{"", tokens.DefaultDelimiter, "@", "~~", "\x00"} {
		assert.NoError(t, tokens.CheckDelimiter(delim), "delimiter %q", delim)
	}
	for _, delim := range []string{"1", "#0#", "[", "]", "|", "<|>"} {
		assert.ErrorIs(t, tokens.CheckDelimiter(delim), tokens.ErrInvalidDelimiter, "delimiter %q", delim)
	}
}
