package model

// Status is the outcome of transforming one source.
type Status string

const (
	// StatusTransformed means calls were rewritten or statements moved.
	StatusTransformed Status = "transformed"
	// StatusUnchanged means the file holds nothing to hoist.
	StatusUnchanged Status = "unchanged"
	// StatusRejected means a mock factory failed validation.
	StatusRejected Status = "rejected"
	// StatusFailed means the file could not be read, parsed or written.
	StatusFailed Status = "failed"
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusTransformed, StatusUnchanged, StatusRejected, StatusFailed}

func (s Status) String() string {
	return string(s)
}

// Diagnostic describes why a source was rejected or failed.
type Diagnostic struct {
	Kind    string `yaml:"kind"`
	Line    int    `yaml:"line,omitempty"`
	Column  int    `yaml:"column,omitempty"`
	Name    string `yaml:"name,omitempty"`
	Message string `yaml:"message"`
	// Frame is the offending source excerpt with a caret under Column.
	Frame string `yaml:"frame,omitempty"`
}

// Report is the persisted result of transforming one source.
type Report struct {
	Source       Source      `yaml:"source"`
	Status       Status      `yaml:"status"`
	Getter       string      `yaml:"getter,omitempty"`
	Rewritten    int         `yaml:"rewritten"`
	HoistedCalls int         `yaml:"hoisted_calls"`
	HoistedVars  int         `yaml:"hoisted_vars"`
	Written      bool        `yaml:"written,omitempty"`
	Diff         string      `yaml:"diff,omitempty"`
	Diagnostic   *Diagnostic `yaml:"diagnostic,omitempty"`
}

// Summary aggregates reports by status.
type Summary struct {
	Files        int
	ByStatus     map[Status]int
	Rewritten    int
	HoistedCalls int
	HoistedVars  int
}

// NewSummary returns an empty summary.
func NewSummary() Summary {
	return Summary{ByStatus: make(map[Status]int, len(Statuses))}
}

// Add counts r.
func (s *Summary) Add(r Report) {
	if s.ByStatus == nil {
		s.ByStatus = make(map[Status]int, len(Statuses))
	}

	s.Files++
	s.ByStatus[r.Status]++
	s.Rewritten += r.Rewritten
	s.HoistedCalls += r.HoistedCalls
	s.HoistedVars += r.HoistedVars
}

// Summarize counts reports.
func Summarize(reports []Report) Summary {
	s := NewSummary()
	for _, r := range reports {
		s.Add(r)
	}

	return s
}

// Failed reports whether any source was rejected or failed.
func (s Summary) Failed() bool {
	return s.ByStatus[StatusRejected] > 0 || s.ByStatus[StatusFailed] > 0
}
