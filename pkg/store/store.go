// Package store keeps a history of layout results per workspace.
//
// Every pipeline run can save one [Snapshot] per workspace it laid out.
// Snapshots answer "where was this window placed last time" for other
// tools without re-running layout, and let `hyprtile serve` expose the
// history over HTTP.
//
// Backends:
//   - [FileStore]: JSON files under ~/.local/state/hyprtile/snapshots
//   - [MongoStore]: a MongoDB collection, for shared deployments
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/hyprtile/pkg/layout"
	"github.com/matzehuels/hyprtile/pkg/scene"
)

// ErrNotFound is returned when a workspace has no snapshots.
var ErrNotFound = errors.New("not found")

// Snapshot is the outcome of laying out one workspace.
type Snapshot struct {
	ID        string                `json:"id" bson:"_id"`
	Workspace string                `json:"workspace" bson:"workspace"`
	SceneHash string                `json:"scene_hash" bson:"scene_hash"`
	CreatedAt time.Time             `json:"created_at" bson:"created_at"`
	Report    scene.WorkspaceReport `json:"report" bson:"report"`
	Stats     layout.Stats          `json:"stats" bson:"stats"`
}

// NewSnapshot stamps a report with a fresh id and the current time.
func NewSnapshot(sceneHash string, report scene.WorkspaceReport, stats layout.Stats) *Snapshot {
	return &Snapshot{
		ID:        uuid.NewString(),
		Workspace: report.Name,
		SceneHash: sceneHash,
		CreatedAt: time.Now().UTC(),
		Report:    report,
		Stats:     stats,
	}
}

// Store persists snapshots.
type Store interface {
	Save(ctx context.Context, s *Snapshot) error

	// Latest returns the newest snapshot of a workspace or ErrNotFound.
	Latest(ctx context.Context, workspace string) (*Snapshot, error)

	// List returns up to limit snapshots of a workspace, newest first. A
	// limit <= 0 returns all of them.
	List(ctx context.Context, workspace string, limit int) ([]*Snapshot, error)

	Close() error
}

// DefaultLimit bounds List calls made on behalf of HTTP clients.
const DefaultLimit = 50

// IsNotFound reports whether err means no snapshot exists.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

var (
	_ Store = (*FileStore)(nil)
	_ Store = (*MongoStore)(nil)
)
