package parser

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// Parser defines a survey export parser implementation.
type Parser interface {
	CanParse(filename string) bool
	Parse(r io.Reader) ([]Record, error)
}

var registry []Parser

// Register adds a parser implementation to the registry.
func Register(p Parser) {
	registry = append(registry, p)
}

// ParseFile selects a parser based on filename and returns the extracted responses.
// The file is opened, fully consumed and closed before returning.
func ParseFile(path string) ([]Record, error) {
	var chosen Parser
	for _, p := range registry {
		if p.CanParse(path) {
			chosen = p
			break
		}
	}
	if chosen == nil {
		return nil, &ParseError{Path: path, Err: ErrUnsupported}
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: fmt.Errorf("open: %w", err)}
	}
	defer f.Close()
	recs, err := chosen.Parse(f)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return recs, nil
}

func init() {
	Register(htmlParser{})
}

// ErrUnsupported indicates a format is not supported.
var ErrUnsupported = errors.New("unsupported survey export format")

// ParseError reports a survey export that could not be read or parsed.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("parse survey: %v", e.Err)
	}
	return fmt.Sprintf("parse survey %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
