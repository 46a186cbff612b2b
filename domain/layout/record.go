// Package layout defines the versioned position record exchanged with
// the persistence collaborator.
package layout

import (
	"encoding/json"
	"time"

	"github.com/nibzard/beautiful-mermaid/domain/scene"
	"github.com/nibzard/beautiful-mermaid/pkg/geometry"
)

// RecordVersion is the current export format version. Imports tolerate
// other versions; the positions map is matched by stable identifier
// and anything unknown is dropped.
const RecordVersion = 1

// Record is one exported position set, keyed to a source document
// identity so distinct documents never collide in storage.
type Record struct {
	Version       int                       `json:"version"`
	Source        string                    `json:"source"`
	Positions     map[string]geometry.Point `json:"positions"`
	SavedAt       time.Time                 `json:"savedAt"`
	DiagramFamily string                    `json:"diagramFamily"`
}

// NewRecord builds a current-version record.
func NewRecord(source string, family scene.Family, positions map[string]geometry.Point) *Record {
	return &Record{
		Version:       RecordVersion,
		Source:        source,
		Positions:     positions,
		SavedAt:       time.Now().UTC(),
		DiagramFamily: string(family),
	}
}

// Encode serializes the record.
func (r *Record) Encode() ([]byte, error) {
	return json.Marshal(r)
}

// Decode parses a persisted record. A malformed or empty payload is
// treated as "no saved layout": the second return is false and the
// caller moves on.
func Decode(data []byte) (*Record, bool) {
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, false
	}
	if r.Positions == nil {
		return nil, false
	}
	return &r, true
}
