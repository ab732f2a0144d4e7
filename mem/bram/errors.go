package bram

import "fmt"

// ParseError reports a line of a memory initialization file that does not
// start with a binary digit.
type ParseError struct {
	Path    string
	Line    int
	Content string
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("line %d: cannot parse %q as a binary word",
			e.Line, e.Content)
	}

	return fmt.Sprintf("%s:%d: cannot parse %q as a binary word",
		e.Path, e.Line, e.Content)
}

// DepthMismatchError reports initial contents whose number of words differs
// from the depth of the memory.
type DepthMismatchError struct {
	Source string
	Depth  int
	Words  int
}

func (e *DepthMismatchError) Error() string {
	return fmt.Sprintf("%s provides %d words, but the memory depth is %d",
		e.Source, e.Words, e.Depth)
}

// StimulusError reports a malformed record in a stimulus stream.
type StimulusError struct {
	Record int
	Field  string
	Err    error
}

func (e *StimulusError) Error() string {
	return fmt.Sprintf("stimulus record %d, field %s: %v",
		e.Record, e.Field, e.Err)
}

func (e *StimulusError) Unwrap() error {
	return e.Err
}
