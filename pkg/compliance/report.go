package compliance

type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
)

// Violation is one entity failing one rule.
type Violation struct {
	Subject  string         `json:"subject" yaml:"subject"`
	Reason   string         `json:"reason" yaml:"reason"`
	Severity Severity       `json:"severity" yaml:"severity"`
	Details  map[string]any `json:"details,omitempty" yaml:"details,omitempty"`
}

// Report is the outcome of a single validator call.
// Count is always len(Violations).
type Report struct {
	Check      Check       `json:"check" yaml:"check"`
	Violations []Violation `json:"violations" yaml:"violations"`
	Total      int         `json:"total" yaml:"total"`
	Count      int         `json:"count" yaml:"count"`
}

func newReport(check Check, total int) *Report {
	return &Report{
		Check:      check,
		Violations: []Violation{},
		Total:      total,
	}
}

func (r *Report) add(subject string, severity Severity, reason string, details map[string]any) {
	r.Violations = append(r.Violations, Violation{
		Subject:  subject,
		Reason:   reason,
		Severity: severity,
		Details:  details,
	})
	r.Count = len(r.Violations)
}

func (r Report) Critical() int {
	return r.countSeverity(SeverityCritical)
}

func (r Report) Warnings() int {
	return r.countSeverity(SeverityWarning)
}

func (r Report) Passed() bool {
	return len(r.Violations) == 0
}

func (r Report) countSeverity(s Severity) int {
	n := 0
	for _, v := range r.Violations {
		if v.Severity == s {
			n++
		}
	}
	return n
}

// Merge combines reports of the same check, e.g. one per host.
func Merge(check Check, reports ...Report) Report {
	r := newReport(check, 0)
	for _, rep := range reports {
		r.Total += rep.Total
		r.Violations = append(r.Violations, rep.Violations...)
	}
	r.Count = len(r.Violations)
	return *r
}
