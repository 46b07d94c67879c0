package diagnostic

import (
	"fmt"
	"sort"
	"strings"

	"propmap/maperr"
)

// Codes reported by profile validation.
const (
	CodeUnsupportedVersion = "unsupported-version"
	CodeUnknownType        = "unknown-type"
	CodeUnknownProperty    = "unknown-property"
	CodeDuplicatePair      = "duplicate-pair"
	CodeConflictingRule    = "conflicting-rule"
	CodeTypeMismatch       = "type-mismatch"
	CodeIgnoredByMarker    = "ignored-by-marker"
	CodeEmptyRule          = "empty-rule"
)

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Diagnostic is a single finding.
type Diagnostic struct {
	Severity Severity
	// Code is a stable identifier, one of the Code* constants.
	Code    string
	Message string
	// Pair is the "Source->Destination" mapping the finding relates to, if any.
	Pair string
	// Property is the property name the finding relates to, if any.
	Property    string
	Suggestions []string
}

// String returns a formatted diagnostic line.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Pair != "" {
		prefix = append(prefix, "["+d.Pair+"]")
	}

	if d.Property != "" {
		prefix = append(prefix, d.Property)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(d.Suggestions) > 0 {
		msg += " (did you mean " + strings.Join(d.Suggestions, ", ") + "?)"
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}

// Diagnostics holds every finding of one validation run.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Add files d under its severity.
func (d *Diagnostics) Add(diag Diagnostic) {
	switch diag.Severity {
	case SeverityError:
		d.Errors = append(d.Errors, diag)
	case SeverityWarning:
		d.Warnings = append(d.Warnings, diag)
	default:
		d.Infos = append(d.Infos, diag)
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, pair, property string, suggestions ...string) {
	d.Add(Diagnostic{
		Severity:    SeverityError,
		Code:        code,
		Message:     message,
		Pair:        pair,
		Property:    property,
		Suggestions: suggestions,
	})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, pair, property string, suggestions ...string) {
	d.Add(Diagnostic{
		Severity:    SeverityWarning,
		Code:        code,
		Message:     message,
		Pair:        pair,
		Property:    property,
		Suggestions: suggestions,
	})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, pair, property string) {
	d.Add(Diagnostic{
		Severity: SeverityInfo,
		Code:     code,
		Message:  message,
		Pair:     pair,
		Property: property,
	})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// HasCode reports whether any finding carries code.
func (d *Diagnostics) HasCode(code string) bool {
	for _, diag := range d.All() {
		if diag.Code == code {
			return true
		}
	}

	return false
}

// All returns every finding, errors first.
func (d *Diagnostics) All() []Diagnostic {
	all := make([]Diagnostic, 0, len(d.Errors)+len(d.Warnings)+len(d.Infos))
	all = append(all, d.Errors...)
	all = append(all, d.Warnings...)
	all = append(all, d.Infos...)

	return all
}

// Lines renders all findings, ordered by severity then pair then property.
func (d *Diagnostics) Lines() []string {
	all := d.All()
	sort.SliceStable(all, func(i, j int) bool {
		a, b := all[i], all[j]
		if a.Severity != b.Severity {
			return a.Severity > b.Severity
		}

		if a.Pair != b.Pair {
			return a.Pair < b.Pair
		}

		return a.Property < b.Property
	})

	lines := make([]string, len(all))
	for i, diag := range all {
		lines[i] = diag.Severity.String() + ": " + diag.String()
	}

	return lines
}

// Err returns nil when there are no errors, otherwise an InvalidArgument
// error listing every error finding.
func (d *Diagnostics) Err() error {
	if !d.HasErrors() {
		return nil
	}

	parts := make([]string, len(d.Errors))
	for i, e := range d.Errors {
		parts[i] = e.String()
	}

	return maperr.New(maperr.ErrInvalidArgument, "profile.Validate", strings.Join(parts, "; "))
}
