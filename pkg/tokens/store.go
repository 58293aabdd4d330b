// Package tokens provides the token store that parse rules hand their
// recognized markup to. Each issued token is represented in the source text
// by an opaque placeholder that a later render stage resolves.
package tokens

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// DefaultDelimiter wraps token IDs inside placeholders.
const DefaultDelimiter = "\xFF"

// ErrTokenLimit is returned by Issue when the store is full.
var ErrTokenLimit = errors.New("token limit reached")

// ErrInvalidDelimiter is returned by CheckDelimiter.
var ErrInvalidDelimiter = errors.New("invalid token delimiter")

// reservedDelimiterChars may not appear in a delimiter: digits form the token
// ID, and the rest belong to link markup.
const reservedDelimiterChars = "0123456789[]|"

// CheckDelimiter reports whether delim can wrap token IDs. The empty string
// is accepted and means DefaultDelimiter.
func CheckDelimiter(delim string) error {
	if i := strings.IndexAny(delim, reservedDelimiterChars); i >= 0 {
		return fmt.Errorf("%w: must not contain %q", ErrInvalidDelimiter, delim[i])
	}
	return nil
}

// Attributes holds the decoded options of a token, keyed by attribute name.
type Attributes map[string]string

// Token is a single entry in the store.
type Token struct {
	// ID is the position of the token in issue order.
	ID int

	// Rule is the name of the rule that issued the token (e.g., "interwiki").
	Rule string

	// Attrs are the decoded attributes supplied by the rule.
	Attrs Attributes
}

// Options configures a Store.
type Options struct {
	// Delimiter surrounds the token ID in placeholders. Defaults to DefaultDelimiter.
	Delimiter string

	// MaxTokens limits the number of tokens; 0 means unlimited.
	MaxTokens int
}

// Store issues placeholder tokens and remembers their attributes.
// It is append-only and safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	delim  string
	max    int
	tokens []Token
}

// NewStore creates an empty store.
func NewStore(opts Options) *Store {
	delim := opts.Delimiter
	if delim == "" {
		delim = DefaultDelimiter
	}
	return &Store{
		delim: delim,
		max:   opts.MaxTokens,
	}
}

// Delimiter returns the placeholder delimiter used by the store.
func (s *Store) Delimiter() string {
	return s.delim
}

// Issue records a token and returns its placeholder.
func (s *Store) Issue(rule string, attrs Attributes) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.max > 0 && len(s.tokens) >= s.max {
		return "", fmt.Errorf("%w: %d", ErrTokenLimit, s.max)
	}

	id := len(s.tokens)
	s.tokens = append(s.tokens, Token{ID: id, Rule: rule, Attrs: attrs})

	return s.placeholder(id), nil
}

func (s *Store) placeholder(id int) string {
	return s.delim + strconv.Itoa(id) + s.delim
}

// Get returns the token with the given ID.
func (s *Store) Get(id int) (Token, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if id < 0 || id >= len(s.tokens) {
		return Token{}, false
	}
	return s.tokens[id], true
}

// Len returns the number of issued tokens.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tokens)
}

// Tokens returns a copy of all tokens in issue order.
func (s *Store) Tokens() []Token {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Token, len(s.tokens))
	copy(out, s.tokens)
	return out
}

// CountByRule returns how many tokens each rule issued.
func (s *Store) CountByRule() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int)
	for _, tok := range s.tokens {
		counts[tok.Rule]++
	}
	return counts
}

// Segment is a piece of tokenized text: either literal text or a placeholder.
type Segment struct {
	// Text is the literal text; empty for placeholders.
	Text string

	// TokenID is the referenced token, or -1 for literal text.
	TokenID int
}

// IsToken reports whether the segment is a placeholder.
func (seg Segment) IsToken() bool {
	return seg.TokenID >= 0
}

// Split breaks text into literal and placeholder segments. A placeholder is
// the delimiter, a run of digits naming a known token, and the delimiter
// again. Anything else, including a stray delimiter, is kept as literal text.
func (s *Store) Split(text string) []Segment {
	segments := make([]Segment, 0, 1)

	appendLiteral := func(lit string) {
		if lit == "" {
			return
		}
		if n := len(segments); n > 0 && !segments[n-1].IsToken() {
			segments[n-1].Text += lit
			return
		}
		segments = append(segments, Segment{Text: lit, TokenID: -1})
	}

	for text != "" {
		open := strings.Index(text, s.delim)
		if open < 0 {
			appendLiteral(text)
			break
		}
		appendLiteral(text[:open])
		rest := text[open+len(s.delim):]

		digits := 0
		for digits < len(rest) && rest[digits] >= '0' && rest[digits] <= '9' {
			digits++
		}
		if digits == 0 || !strings.HasPrefix(rest[digits:], s.delim) {
			// Not a placeholder; resume right after this delimiter.
			appendLiteral(s.delim)
			text = rest
			continue
		}

		if id, err := strconv.Atoi(rest[:digits]); err == nil {
			if _, ok := s.Get(id); ok {
				segments = append(segments, Segment{TokenID: id})
				text = rest[digits+len(s.delim):]
				continue
			}
		}
		// Unknown ID; the closing delimiter may open the next placeholder.
		appendLiteral(s.delim + rest[:digits])
		text = rest[digits:]
	}

	return segments
}

// Placeholders returns the IDs of the known tokens referenced in text, in
// order of appearance.
func (s *Store) Placeholders(text string) []int {
	var ids []int
	for _, seg := range s.Split(text) {
		if seg.IsToken() {
			ids = append(ids, seg.TokenID)
		}
	}
	return ids
}
