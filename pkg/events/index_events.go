package events

import "time"

const (
	TypeIndexRebuilt = "INDEX_REBUILT"
	TypeRebuildIndex = "REBUILD_INDEX"
)

// IndexRebuilt is published after a new index generation becomes visible to
// readers. Instances sharing the storage reload their snapshot on receipt.
type IndexRebuilt struct {
	Generation string
	Backend    string
	Documents  int
	Chunks     int
	BuiltAt    time.Time
}

func (e IndexRebuilt) EventType() string { return TypeIndexRebuilt }

func (e IndexRebuilt) Payload() map[string]interface{} {
	return map[string]interface{}{
		"generation": e.Generation,
		"backend":    e.Backend,
		"documents":  e.Documents,
		"chunks":     e.Chunks,
		"built_at":   e.BuiltAt.Format(time.RFC3339),
	}
}

func (e IndexRebuilt) Timestamp() time.Time { return e.BuiltAt }
