package doctor

// Severity grades a check result. The order matters: higher is worse.
type Severity int

const (
	SeverityPass Severity = iota
	// SeverityInfo is worth knowing but needs no action, e.g. an existing
	// config dir the installer will offer to back up.
	SeverityInfo
	// SeverityWarning will likely make the install fail or misbehave.
	SeverityWarning
	// SeverityError means the install cannot succeed on this host.
	SeverityError
)

var severityNames = [...]string{"pass", "info", "warning", "error"}

func (s Severity) String() string {
	if s < 0 || int(s) >= len(severityNames) {
		return "unknown"
	}
	return severityNames[s]
}

// MarshalText renders the severity by name in JSON output.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// CheckResult is what a single check found.
type CheckResult struct {
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Status   Severity `json:"status"`
	Message  string   `json:"message"`
	// Details are check specific, e.g. "path" and "backups" for config-dir.
	Details map[string]any `json:"details,omitempty"`
	FixHint string         `json:"fix_hint,omitempty"`
}

// Summary counts results by severity.
type Summary struct {
	Passed   int `json:"passed"`
	Info     int `json:"info"`
	Warnings int `json:"warnings"`
	Errors   int `json:"errors"`
}

func (s *Summary) add(sev Severity) {
	switch sev {
	case SeverityPass:
		s.Passed++
	case SeverityInfo:
		s.Info++
	case SeverityWarning:
		s.Warnings++
	case SeverityError:
		s.Errors++
	}
}
