package runs

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fayssalzakaria/data-analysis-on-an-HTML-file/internal/analysis"
	"github.com/fayssalzakaria/data-analysis-on-an-HTML-file/internal/pipeline"
	"github.com/fayssalzakaria/data-analysis-on-an-HTML-file/internal/utils"
)

const runFileExt = ".json"

// ErrRunNotFound is returned when no saved run matches an ID.
var ErrRunNotFound = errors.New("run not found")

// Run is a saved analysis persisted as <dir>/<id>.json.
type Run struct {
	ID          string          `json:"id"`
	Source      string          `json:"source"`
	CreatedAt   time.Time       `json:"created_at"`
	DurationMs  int64           `json:"duration_ms"`
	Rows        int             `json:"rows"`
	Columns     int             `json:"columns"`
	ColumnNames []string        `json:"column_names"`
	Basic       analysis.Result `json:"basic"`
	Advanced    analysis.Result `json:"advanced"`
	Report      string          `json:"report,omitempty"`
}

// NewRun captures a pipeline outcome under a fresh ID. Call Save to persist.
func NewRun(out *pipeline.Outcome) *Run {
	r := &Run{
		ID:         uuid.NewString(),
		Source:     out.Source,
		CreatedAt:  time.Now(),
		DurationMs: out.Duration.Milliseconds(),
		Basic:      out.Basic,
		Advanced:   out.Advanced,
	}
	if out.Dataset != nil {
		r.Rows = out.Dataset.Len()
		r.Columns = out.Dataset.Width()
		r.ColumnNames = out.Dataset.Columns()
	}
	return r
}

// Save writes the run into dir using an atomic write.
func (r *Run) Save(dir string) error {
	if dir == "" {
		return errors.New("runs directory not set")
	}
	if r.ID == "" {
		return errors.New("run has no id")
	}
	if err := utils.EnsureDir(dir); err != nil {
		return fmt.Errorf("ensure dir: %w", err)
	}
	data, err := utils.PrettyJSON(r)
	if err != nil {
		return err
	}
	return utils.SafeWriteFile(filepath.Join(dir, r.ID+runFileExt), data)
}

// Load reads the run whose ID is id or starts with id. An ambiguous prefix is an error.
func Load(dir, id string) (*Run, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("empty run id: %w", ErrRunNotFound)
	}
	path := filepath.Join(dir, id+runFileExt)
	if _, err := os.Stat(path); err != nil {
		ids, lerr := listIDs(dir)
		if lerr != nil {
			return nil, lerr
		}
		var matches []string
		for _, candidate := range ids {
			if strings.HasPrefix(candidate, id) {
				matches = append(matches, candidate)
			}
		}
		switch len(matches) {
		case 0:
			return nil, fmt.Errorf("%s: %w", id, ErrRunNotFound)
		case 1:
			path = filepath.Join(dir, matches[0]+runFileExt)
		default:
			return nil, fmt.Errorf("run id %q is ambiguous (%d matches)", id, len(matches))
		}
	}
	return readRun(path)
}

// List returns saved runs, newest first. A missing directory yields no runs.
func List(dir string) ([]*Run, error) {
	ids, err := listIDs(dir)
	if err != nil {
		return nil, err
	}
	out := make([]*Run, 0, len(ids))
	for _, id := range ids {
		r, err := readRun(filepath.Join(dir, id+runFileExt))
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func listIDs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read runs dir: %w", err)
	}
	var ids []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || filepath.Ext(name) != runFileExt {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, runFileExt))
	}
	sort.Strings(ids)
	return ids, nil
}

func readRun(path string) (*Run, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrRunNotFound)
		}
		return nil, fmt.Errorf("read run: %w", err)
	}
	var r Run
	if err := json.Unmarshal(b, &r); err != nil {
		return nil, fmt.Errorf("parse run %s: %w", filepath.Base(path), err)
	}
	return &r, nil
}
