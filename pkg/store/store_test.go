package store

import (
	"context"
	"testing"
	"time"

	"github.com/matzehuels/hyprtile/pkg/errors"
	"github.com/matzehuels/hyprtile/pkg/geom"
	"github.com/matzehuels/hyprtile/pkg/layout"
	"github.com/matzehuels/hyprtile/pkg/scene"
)

func testReport(name string, width float64) scene.WorkspaceReport {
	r := geom.Rect{Width: width, Height: 100}
	return scene.WorkspaceReport{
		Name:     name,
		Monitor:  "main",
		Active:   true,
		Physical: &r,
		Nodes:    []scene.NodeReport{{ID: "n1", Kind: "window", WindowID: 1, Physical: &r}},
	}
}

func TestNewSnapshot(t *testing.T) {
	s := NewSnapshot("abc", testReport("1", 10), layout.Stats{Tiled: 1})
	if s.ID == "" || s.Workspace != "1" || s.SceneHash != "abc" {
		t.Errorf("NewSnapshot() = %+v", s)
	}
	if s.CreatedAt.IsZero() || s.CreatedAt.Location() != time.UTC {
		t.Errorf("CreatedAt = %v, want UTC now", s.CreatedAt)
	}
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	st, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	defer st.Close()

	if _, err := st.Latest(ctx, "1"); !IsNotFound(err) {
		t.Errorf("Latest(empty) error = %v, want ErrNotFound", err)
	}
	if snaps, err := st.List(ctx, "1", 0); err != nil || len(snaps) != 0 {
		t.Errorf("List(empty) = %v, %v", snaps, err)
	}

	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	for i := range 3 {
		s := NewSnapshot("h", testReport("1", float64(100*(i+1))), layout.Stats{Tiled: i})
		s.CreatedAt = base.Add(time.Duration(i) * time.Second)
		if err := st.Save(ctx, s); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}
	if err := st.Save(ctx, NewSnapshot("h", testReport("2", 1), layout.Stats{})); err != nil {
		t.Fatal(err)
	}

	latest, err := st.Latest(ctx, "1")
	if err != nil {
		t.Fatalf("Latest() error = %v", err)
	}
	if latest.Stats.Tiled != 2 || latest.Report.Physical.Width != 300 {
		t.Errorf("Latest() = %+v, want the third snapshot", latest)
	}

	all, err := st.List(ctx, "1", 0)
	if err != nil || len(all) != 3 {
		t.Fatalf("List() = %d, %v", len(all), err)
	}
	if !all[0].CreatedAt.After(all[1].CreatedAt) || !all[1].CreatedAt.After(all[2].CreatedAt) {
		t.Error("List() should be newest first")
	}
	if two, _ := st.List(ctx, "1", 2); len(two) != 2 {
		t.Errorf("List(limit 2) = %d", len(two))
	}
}

func TestFileStoreRejectsBadNames(t *testing.T) {
	ctx := context.Background()
	st, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	snap := NewSnapshot("h", testReport("../escape", 1), layout.Stats{})
	if err := st.Save(ctx, snap); !errors.Is(err, errors.ErrCodeInvalidName) {
		t.Errorf("Save() error = %v, want INVALID_NAME", err)
	}
	if _, err := st.List(ctx, "", 0); err == nil {
		t.Error("List(\"\") should fail")
	}
}

func TestDefaultDir(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/tmp/state")
	dir, err := DefaultDir()
	if err != nil {
		t.Fatal(err)
	}
	if dir != "/tmp/state/hyprtile/snapshots" {
		t.Errorf("DefaultDir() = %q", dir)
	}
}

func TestNewMongoStoreUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := NewMongoStore(ctx, MongoConfig{URI: "mongodb://127.0.0.1:1/?serverSelectionTimeoutMS=200&connectTimeoutMS=200"})
	if err == nil {
		t.Error("NewMongoStore() should fail without a server")
	}
}
