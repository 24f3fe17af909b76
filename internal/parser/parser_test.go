package parser_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fayssalzakaria/data-analysis-on-an-HTML-file/internal/parser"
)

const surveyHTML = `<!DOCTYPE html>
<html><body>
<div class="response">
  <h2>Profil</h2>
  <table class="group">
    <tr class="question"><td>Quel est votre âge ?</td><td> 34 </td></tr>
    <tr class="question"><td>Vous vous identifiez comme</td><td>Femme</td></tr>
  </table>
</div>
<div class="response">
  <h2>Profil</h2>
  <table class="group">
    <tr class="question"><td>Quel est votre âge ?</td><td>41</td></tr>
  </table>
</div>
</body></html>`

func TestParseFileHTML(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "survey.html")
	if err := os.WriteFile(p, []byte(surveyHTML), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	recs, err := parser.ParseFile(p)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 responses, got %d", len(recs))
	}
	if v, ok := recs[0].Get("Profil - Quel est votre âge ?"); !ok || v != "34" {
		t.Fatalf("unexpected age answer: %q (found=%v)", v, ok)
	}
	if recs[1].Len() != 1 {
		t.Fatalf("expected 1 answer in second response, got %d", recs[1].Len())
	}
}

func TestParseFileUnsupported(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "survey.pdf")
	if err := os.WriteFile(p, []byte("%PDF"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := parser.ParseFile(p)
	if !errors.Is(err, parser.ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
	var pe *parser.ParseError
	if !errors.As(err, &pe) || pe.Path != p {
		t.Fatalf("expected ParseError for %s, got %v", p, err)
	}
}

func TestParseFileMissing(t *testing.T) {
	_, err := parser.ParseFile(filepath.Join(t.TempDir(), "nope.html"))
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected wrapped not-exist error, got %v", err)
	}
	if !strings.Contains(err.Error(), "nope.html") {
		t.Fatalf("error should name the file: %v", err)
	}
}
