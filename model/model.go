package model

// Status describes what happened to a single recipe step.
type Status string

const (
	StatusApplied        Status = "applied"
	StatusAlreadyApplied Status = "already-applied"
	StatusAnchorMissing  Status = "anchor-missing"
	StatusNoClosingBrace Status = "no-closing-brace"
)

// StepResult is the outcome of one step against the buffer.
type StepResult struct {
	Name        string
	Status      Status
	Occurrences int // anchor occurrences the text was inserted after
	Inserted    int // bytes added to the buffer
	Loose       bool
}

// Summary holds the results of a run for display.
type Summary struct {
	Target  string
	Recipe  string
	Steps   []StepResult
	Changed bool
	Written bool
	DryRun  bool
	OldHash string
	NewHash string
	Message string
}

// Applied returns the names of the steps that changed the buffer.
func (s Summary) Applied() []string {
	var names []string
	for _, st := range s.Steps {
		if st.Status == StatusApplied {
			names = append(names, st.Name)
		}
	}
	return names
}
