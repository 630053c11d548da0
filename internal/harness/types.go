package harness

// TraceEvent records one executed flow step.
type TraceEvent struct {
	Seq     int64    `json:"seq"`
	Op      string   `json:"op"`
	Input   string   `json:"input,omitempty"`
	Filters string   `json:"filters,omitempty"`
	Outcome string   `json:"outcome"`
	Count   *int     `json:"count,omitempty"`
	Values  []string `json:"values,omitempty"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall success.
	// True if all expect clauses and assertions hold.
	Pass bool `json:"pass"`

	// Trace contains one event per flow step, in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Final lists the stored values after the flow, in insertion order.
	Final []string `json:"final"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
		Final:  []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddTrace appends an event to the trace.
func (r *Result) AddTrace(ev TraceEvent) {
	r.Trace = append(r.Trace, ev)
}
