package models

// Per-row import outcomes.
const (
	ImportRowCreated = "created"
	ImportRowUpdated = "updated"
	ImportRowSkipped = "skipped"
	ImportRowError   = "error"
)

// ImportRowDetail describes what happened to a single spreadsheet row,
// for display in the admin UI after an import.
type ImportRowDetail struct {
	Row     int    `json:"row"` // 1-based row number in the sheet
	Code    string `json:"code,omitempty"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ImportResult is the aggregate outcome of one import batch.
type ImportResult struct {
	Created int               `json:"created"`
	Updated int               `json:"updated"`
	Skipped int               `json:"skipped"`
	Errors  []string          `json:"errors"`
	Details []ImportRowDetail `json:"details"`
}

// Merge folds another result (e.g. from the variants sheet) into this one.
func (r *ImportResult) Merge(other *ImportResult) {
	r.Created += other.Created
	r.Updated += other.Updated
	r.Skipped += other.Skipped
	r.Errors = append(r.Errors, other.Errors...)
	r.Details = append(r.Details, other.Details...)
}
