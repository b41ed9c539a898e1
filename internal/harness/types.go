package harness

// QueryResult is what one query returned.
type QueryResult struct {
	Query      string   `json:"query"`
	Mode       string   `json:"mode"`
	Valid      bool     `json:"valid"`
	Tree       string   `json:"tree,omitempty"`
	Items      []string `json:"items"`
	Containers []string `json:"containers"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when every expectation held and the in-memory and SQL
	// searches agreed.
	Pass bool `json:"pass"`

	// Queries holds one entry per scenario query, in order.
	Queries []QueryResult `json:"queries"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:    true,
		Queries: []QueryResult{},
		Errors:  []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
