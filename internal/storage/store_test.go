package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/san-kum/ropeclimb/internal/game"
	"github.com/san-kum/ropeclimb/internal/sim"
)

func runQuick(t *testing.T, trace bool) *sim.Result {
	t.Helper()
	g := game.New(game.WithViewport(800, 900))
	result, err := sim.New().Run(context.Background(), g, sim.QuickScript(0, 0), sim.Config{MaxTicks: 500, Trace: trace})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	result.Metrics["energy"] = 1.5
	return result
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	result := runQuick(t, true)
	runID, err := st.Save("quick", result)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Script != "quick" {
		t.Errorf("expected script 'quick', got '%s'", meta.Script)
	}
	if meta.Won != result.Won || meta.WonAt != result.WonAt || meta.Ticks != result.Ticks {
		t.Errorf("expected outcome %v/%d/%d, got %+v", result.Won, result.WonAt, result.Ticks, meta)
	}
	if meta.Metrics["energy"] != 1.5 {
		t.Errorf("expected energy 1.5, got %f", meta.Metrics["energy"])
	}

	trace, err := st.LoadTrace(runID)
	if err != nil {
		t.Fatalf("load trace failed: %v", err)
	}
	if len(trace) != len(result.Trace) {
		t.Errorf("expected %d samples, got %d", len(result.Trace), len(trace))
	}
}

func TestStoreUntracedRun(t *testing.T) {
	st := New(t.TempDir())
	runID, err := st.Save("", runQuick(t, false))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(st.baseDir, runID, traceFile)); !os.IsNotExist(err) {
		t.Error("expected no trace file for an untraced run")
	}
	trace, err := st.LoadTrace(runID)
	if err != nil || len(trace) != 0 {
		t.Errorf("expected empty trace, got %v, %v", trace, err)
	}
}

func TestStoreList(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)

	runs, err := st.List()
	if err != nil || len(runs) != 0 {
		t.Fatalf("expected no runs, got %v, %v", runs, err)
	}

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, name := range []string{"b", "a"} {
		ts := base.Add(time.Duration(i) * time.Minute)
		st.now = func() time.Time { return ts }
		if _, err := st.Save(name, runQuick(t, false)); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "junk"), 0755); err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].Script != "b" || runs[1].Script != "a" {
		t.Errorf("expected oldest first, got %s then %s", runs[0].Script, runs[1].Script)
	}
}

func TestStoreMissingRun(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("nope"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
	if _, err := st.LoadTrace("nope"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
}

func TestStoreExportJSON(t *testing.T) {
	st := New(t.TempDir())
	runID, err := st.Save("quick", runQuick(t, true))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	var buf bytes.Buffer
	if err := st.ExportJSON(&buf, runID); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var doc struct {
		ID    string            `json:"id"`
		Trace []json.RawMessage `json:"trace"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if doc.ID != runID || len(doc.Trace) == 0 {
		t.Errorf("unexpected export %s with %d samples", doc.ID, len(doc.Trace))
	}
}
