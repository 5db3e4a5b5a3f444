package prune

// Status is the overall result of a batch.
type Status string

const (
	StatusNothingFound Status = "nothing-found"
	StatusDryRun       Status = "dry-run"
	StatusAllRemoved   Status = "all-removed"
	StatusPartial      Status = "partial-failure"
)

// Summary condenses a batch for the final report.
type Summary struct {
	Status  Status   `json:"status" yaml:"status"`
	Removed []string `json:"removed" yaml:"removed"`
	Failed  []string `json:"failed" yaml:"failed"`
}

// Summarize classifies outcomes produced by Execute in the given mode.
func Summarize(outcomes []Outcome, mode Mode) Summary {
	s := Summary{Removed: []string{}, Failed: []string{}}
	for _, o := range outcomes {
		switch {
		case o.Deleted:
			s.Removed = append(s.Removed, o.Name)
		case mode == Delete:
			s.Failed = append(s.Failed, o.Name)
		}
	}

	switch {
	case len(outcomes) == 0:
		s.Status = StatusNothingFound
	case mode == DryRun:
		s.Status = StatusDryRun
	case len(s.Failed) > 0:
		s.Status = StatusPartial
	default:
		s.Status = StatusAllRemoved
	}
	return s
}
