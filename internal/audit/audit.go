// Package audit appends traceability records for analytical features: what
// the feature saw, what it produced, and how confident it was.
package audit

import (
	"context"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/google/uuid"
)

// Record is one audit-log line. InputSnapshot and OutputSummary are small
// JSON blobs; InputHash lets operators spot identical inputs without
// comparing snapshots.
type Record struct {
	ID            uuid.UUID
	Feature       string
	InputHash     string
	InputSnapshot string
	OutputSummary string
	Confidence    float64
	CreatedAt     time.Time
}

//go:generate mockgen -source=audit.go -destination=recorder_mock.go -package=audit
type Recorder interface {
	Append(ctx context.Context, rec *Record) error
}

// HashInput fingerprints a serialized input snapshot.
func HashInput(snapshot string) string {
	h := fnv.New64a()
	h.Write([]byte(snapshot))

	return fmt.Sprintf("%016x", h.Sum64())
}
