package domain

type SyncState string

const (
	SyncPending SyncState = "pending"
	SyncSynced  SyncState = "synced"
	SyncFailed  SyncState = "failed"
)

const (
	RowKindLink       = "link"
	RowKindCollection = "collection"
)

// RowSync tracks one row write of a board mutation.
type RowSync struct {
	Kind     string    `json:"kind"`
	ID       string    `json:"id"`
	Position *int      `json:"position,omitempty"`
	State    SyncState `json:"state"`
	Error    string    `json:"error,omitempty"`
}

type SyncReport struct {
	Rows []RowSync `json:"rows"`
}

// Pending appends a row in the pending state and returns its index.
func (r *SyncReport) Pending(kind, id string, position *int) int {
	r.Rows = append(r.Rows, RowSync{Kind: kind, ID: id, Position: position, State: SyncPending})
	return len(r.Rows) - 1
}

// Resolve marks row i synced, or failed with err.
func (r *SyncReport) Resolve(i int, err error) {
	if err != nil {
		r.Rows[i].State = SyncFailed
		r.Rows[i].Error = err.Error()
		return
	}
	r.Rows[i].State = SyncSynced
}

func (r SyncReport) Failed() []RowSync {
	var failed []RowSync
	for _, row := range r.Rows {
		if row.State == SyncFailed {
			failed = append(failed, row)
		}
	}
	return failed
}

// BoardUpdate is the outcome of an ordering operation: the board as the
// caller should now display it and the per-row write report.
type BoardUpdate struct {
	Board      *Board     `json:"board"`
	Sync       SyncReport `json:"sync"`
	Reconciled bool       `json:"reconciled"`
}
