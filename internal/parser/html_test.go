package parser

import (
	"strings"
	"testing"
)

func extractString(t *testing.T, doc string) []Record {
	t.Helper()
	recs, err := Extract(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	return recs
}

func TestExtractOneRecordPerResponse(t *testing.T) {
	doc := `<div class="response"><table class="group"><tr class="question"><td>Q</td><td>1</td></tr></table></div>
<div class="response"></div>
<div class="response other"><table class="group"><tr class="question"><td>Q</td><td>3</td></tr></table></div>
<div class="not-a-response"><table class="group"><tr class="question"><td>Q</td><td>x</td></tr></table></div>`
	recs := extractString(t, doc)
	if len(recs) != 3 {
		t.Fatalf("expected 3 records, got %d", len(recs))
	}
	if recs[1].Len() != 0 {
		t.Fatalf("empty response should yield an empty record, got %v", recs[1].Keys())
	}
	if v, _ := recs[2].Get("Q"); v != "3" {
		t.Fatalf("multi-class container not matched, got %q", v)
	}
}

func TestExtractGroupPrefixes(t *testing.T) {
	doc := `<div class="response">
  <table class="group"><tr class="question"><td>Before</td><td>a</td></tr></table>
  <h1>  Identité </h1>
  <table class="group"><tr class="question"><td>Nom</td><td>b</td></tr></table>
  <h2>Carrière</h2>
  <table class="group"><tr class="question"><td> Statut actuel </td><td>  Titulaire </td></tr></table>
  <h3>Ignored</h3>
  <table class="group"><tr class="question"><td>After h3</td><td>c</td></tr></table>
</div>`
	recs := extractString(t, doc)
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	want := []string{"Before", "Identité - Nom", "Carrière - Statut actuel", "Carrière - After h3"}
	got := recs[0].Keys()
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("keys mismatch:\n got %q\nwant %q", got, want)
	}
	if v, _ := recs[0].Get("Carrière - Statut actuel"); v != "Titulaire" {
		t.Fatalf("answer not trimmed: %q", v)
	}
}

func TestExtractSkipsShortRowsAndUntaggedTables(t *testing.T) {
	doc := `<div class="response">
  <table class="group">
    <tr class="question"><td>Only one cell</td></tr>
    <tr><td>Not a question</td><td>x</td></tr>
    <tr class="question"><td>Q</td><td>A</td><td>extra</td></tr>
  </table>
  <table><tr class="question"><td>Outside group</td><td>y</td></tr></table>
</div>`
	recs := extractString(t, doc)
	keys := recs[0].Keys()
	if len(keys) != 1 || keys[0] != "Q" {
		t.Fatalf("expected only key Q, got %q", keys)
	}
	if v, _ := recs[0].Get("Q"); v != "A" {
		t.Fatalf("expected first two cells only, got %q", v)
	}
}

func TestExtractDuplicateKeyLastWriteWins(t *testing.T) {
	doc := `<div class="response"><table class="group">
  <tr class="question"><td>Q</td><td>first</td></tr>
  <tr class="question"><td>R</td><td>r</td></tr>
  <tr class="question"><td>Q</td><td>second</td></tr>
</table></div>`
	recs := extractString(t, doc)
	if v, _ := recs[0].Get("Q"); v != "second" {
		t.Fatalf("expected last write to win, got %q", v)
	}
	if keys := recs[0].Keys(); len(keys) != 2 || keys[0] != "Q" {
		t.Fatalf("duplicate key should keep first position, got %q", keys)
	}
}

func TestExtractNestedMarkupText(t *testing.T) {
	doc := `<div class="response"><table class="group">
  <tr class="question"><td><span>Date de </span><b>lancement</b></td><td><p> 2024-01-01 </p><p>10:00:00</p></td></tr>
</table></div>`
	recs := extractString(t, doc)
	v, ok := recs[0].Get("Date delancement")
	if !ok {
		t.Fatalf("expected stripped text join, keys=%q", recs[0].Keys())
	}
	if v != "2024-01-0110:00:00" {
		t.Fatalf("unexpected answer %q", v)
	}
}

func TestExtractNoResponses(t *testing.T) {
	recs := extractString(t, `<html><body><p>Aucune réponse</p></body></html>`)
	if len(recs) != 0 {
		t.Fatalf("expected no records, got %d", len(recs))
	}
}

func TestExtractSelectorsMatchClassTokens(t *testing.T) {
	doc := `<DIV CLASS="  extra   response ">
  <div><h1>Not a direct heading</h1></div>
  <H2>Profil</H2>
  <table class="wide group"><tbody>
    <tr class="odd question"><td>Âge<!-- hidden --></td><td> 41 </td></tr>
  </tbody></table>
</DIV>
<span class="response"><table class="group"><tr class="question"><td>Q</td><td>x</td></tr></table></span>`
	recs := extractString(t, doc)
	if len(recs) != 1 {
		t.Fatalf("only div containers count, got %d records", len(recs))
	}
	keys := recs[0].Keys()
	if len(keys) != 1 || keys[0] != "Profil - Âge" {
		t.Fatalf("unexpected keys %q", keys)
	}
	if v, _ := recs[0].Get("Profil - Âge"); v != "41" {
		t.Fatalf("unexpected answer %q", v)
	}
}
