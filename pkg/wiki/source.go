package wiki

// Source is the shared, mutable wiki source buffer that parse rules rewrite
// in place. It is owned by the pipeline driver for the duration of a parse
// and is not safe for concurrent use.
type Source struct {
	path string
	text string
}

// NewSource creates a buffer holding text read from path.
// Path is informational and may be empty (e.g., stdin).
func NewSource(path, text string) *Source {
	return &Source{path: path, text: text}
}

// Path returns the path the source was read from.
func (s *Source) Path() string {
	return s.path
}

// Text returns the current buffer contents.
func (s *Source) Text() string {
	return s.text
}

// Set replaces the buffer contents.
func (s *Source) Set(text string) {
	s.text = text
}

// Len returns the current buffer length in bytes.
func (s *Source) Len() int {
	return len(s.text)
}
