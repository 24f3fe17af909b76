package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/fayssalzakaria/data-analysis-on-an-HTML-file/internal/runs"
)

const surveyHTML = `<html><body>
<div class="response">
  <h2>Informations</h2>
  <table class="group">
    <tr class="question"><td>Quel est votre âge ?</td><td>25</td></tr>
    <tr class="question"><td>Date de lancement</td><td>2024-01-01 10:00:00</td></tr>
    <tr class="question"><td>Date de soumission</td><td>2024-01-01 10:30:00</td></tr>
    <tr class="question"><td>Vous vous identifiez comme</td><td>Femme</td></tr>
  </table>
</div>
<div class="response">
  <h2>Informations</h2>
  <table class="group">
    <tr class="question"><td>Quel est votre âge ?</td><td>35</td></tr>
    <tr class="question"><td>Date de lancement</td><td>2024-01-01 11:00:00</td></tr>
    <tr class="question"><td>Date de soumission</td><td>2024-01-01 12:00:00</td></tr>
    <tr class="question"><td>Vous vous identifiez comme</td><td>Homme</td></tr>
  </table>
</div>
</body></html>`

// resetFlags restores every flag of c and its children to its default.
func resetFlags(c *cobra.Command) {
	reset := func(fl *pflag.Flag) {
		_ = fl.Value.Set(fl.DefValue)
		fl.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// runCmd is a helper to execute the root command with args.
func runCmd(t *testing.T, args ...string) error {
	t.Helper()
	resetFlags(rootCmd)
	cfg = nil
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func mustRun(t *testing.T, args ...string) {
	t.Helper()
	if err := runCmd(t, args...); err != nil {
		t.Fatalf("command %v failed: %v", args, err)
	}
}

func setupHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestCLI_AnalyzeWritesOutputsAndSavesRun(t *testing.T) {
	home := setupHome(t)
	in := filepath.Join(home, "survey.html")
	writeFile(t, in, surveyHTML)
	xlsx := filepath.Join(home, "out", "stats.xlsx")
	report := filepath.Join(home, "out", "stats.md")
	if err := os.MkdirAll(filepath.Dir(xlsx), 0o755); err != nil {
		t.Fatal(err)
	}

	mustRun(t, "analyze", in, "-o", xlsx, "--report", report, "--save", "--quiet")

	if _, err := os.Stat(xlsx); err != nil {
		t.Fatalf("workbook not written: %v", err)
	}
	body, err := os.ReadFile(report)
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	for _, want := range []string{"[BASIC STATISTICS]", "Age Mean: 30", "Average Response Time: 45"} {
		if !strings.Contains(string(body), want) {
			t.Fatalf("report missing %q:\n%s", want, body)
		}
	}

	saved, err := runs.List(filepath.Join(home, ".surveystats", "runs"))
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(saved) != 1 {
		t.Fatalf("expected 1 saved run, got %d", len(saved))
	}
	if saved[0].Source != in || saved[0].Rows != 2 {
		t.Fatalf("unexpected run: %+v", saved[0])
	}

	mustRun(t, "list")
	mustRun(t, "show", saved[0].ID[:8])
	mustRun(t, "show", saved[0].ID, "--json")
	if err := runCmd(t, "show", "no-such-run"); err == nil {
		t.Fatalf("expected error for unknown run")
	}
}

func TestCLI_AnalyzeReadsStdin(t *testing.T) {
	home := setupHome(t)
	report := filepath.Join(home, "stdin.md")
	rootCmd.SetIn(strings.NewReader(surveyHTML))
	defer rootCmd.SetIn(nil)

	mustRun(t, "analyze", "-", "--report", report, "--save", "--quiet")

	body, err := os.ReadFile(report)
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	if !strings.Contains(string(body), "Age Mean: 30") || !strings.Contains(string(body), "File: stdin") {
		t.Fatalf("unexpected report:\n%s", body)
	}
	saved, err := runs.List(filepath.Join(home, ".surveystats", "runs"))
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(saved) != 1 || saved[0].Source != "stdin" {
		t.Fatalf("unexpected runs: %+v", saved)
	}
}

func TestCLI_AnalyzeNoResponsesIsNotAnError(t *testing.T) {
	home := setupHome(t)
	in := filepath.Join(home, "empty.html")
	writeFile(t, in, "<html><body><p>rien</p></body></html>")
	mustRun(t, "analyze", in, "--quiet")
}

func TestCLI_AnalyzeRejectsBadInput(t *testing.T) {
	home := setupHome(t)
	if err := runCmd(t, "analyze", filepath.Join(home, "missing.html")); err == nil {
		t.Fatalf("expected error for missing file")
	}
	in := filepath.Join(home, "survey.html")
	writeFile(t, in, surveyHTML)
	if err := runCmd(t, "analyze", in, "--format", "yaml"); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}

func TestCLI_AnalyzeBatchAvoidsOverwrite(t *testing.T) {
	home := setupHome(t)
	writeFile(t, filepath.Join(home, "d1", "survey.html"), surveyHTML)
	writeFile(t, filepath.Join(home, "d2", "survey.html"), surveyHTML)
	writeFile(t, filepath.Join(home, "d3", "survey.html"), "<html><body></body></html>")
	out := filepath.Join(home, "out")

	mustRun(t, "analyze-batch", filepath.Join(home, "d*", "survey.html"), "--out-dir", out, "--reports", "--quiet")

	for _, name := range []string{"survey.xlsx", "survey__2.xlsx", "survey.summary.md", "survey__2.summary.md"} {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Fatalf("missing %s: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(out, "survey__3.xlsx")); !os.IsNotExist(err) {
		t.Fatalf("empty survey should not produce a workbook")
	}
}

func TestCLI_AnalyzeBatchNoMatches(t *testing.T) {
	home := setupHome(t)
	if err := runCmd(t, "analyze-batch", filepath.Join(home, "*.html")); err == nil {
		t.Fatalf("expected error when nothing matches")
	}
}

func TestCLI_ConfigSetAndShow(t *testing.T) {
	home := setupHome(t)
	mustRun(t, "config", "set", "cluster_k", "4")
	mustRun(t, "config", "set", "markers.age", "age")
	mustRun(t, "config", "show")

	body, err := os.ReadFile(filepath.Join(home, ".surveystats", "config.yaml"))
	if err != nil {
		t.Fatalf("config not saved: %v", err)
	}
	if !strings.Contains(string(body), "cluster_k: 4") || !strings.Contains(string(body), "age: age") {
		t.Fatalf("unexpected config file:\n%s", body)
	}
	if err := runCmd(t, "config", "set", "nope", "1"); err == nil {
		t.Fatalf("expected error for unknown key")
	}
	if err := runCmd(t, "config", "set", "cluster_k", "-2"); err == nil {
		t.Fatalf("expected error for invalid cluster_k")
	}
}

func TestCLI_Columns(t *testing.T) {
	home := setupHome(t)
	in := filepath.Join(home, "survey.html")
	writeFile(t, in, surveyHTML)
	mustRun(t, "columns", in)
}

func TestExpandInputsDedupesAndSorts(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.html"), "x")
	writeFile(t, filepath.Join(dir, "a.html"), "x")
	got := expandInputs([]string{filepath.Join(dir, "*.html"), filepath.Join(dir, "a.html")})
	want := []string{filepath.Join(dir, "a.html"), filepath.Join(dir, "b.html")}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
