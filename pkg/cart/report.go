package cart

import (
	"errors"
	"fmt"
	"strings"
)

type Severity uint8

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Kind classifies a finding.
type Kind uint8

const (
	KindBadTag Kind = iota
	KindSizeMismatch
	KindStructuralViolation
	KindSemanticWarning
)

func (k Kind) String() string {
	switch k {
	case KindBadTag:
		return "bad_tag"
	case KindSizeMismatch:
		return "size_mismatch"
	case KindStructuralViolation:
		return "structural_violation"
	case KindSemanticWarning:
		return "semantic_warning"
	default:
		return "unknown"
	}
}

// Violation is one validation finding.
type Violation struct {
	Field    string
	Severity Severity
	Kind     Kind
	Message  string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s %s [%s]: %s", v.Severity, v.Field, v.Kind, v.Message)
}

// Report is the ordered list of findings produced by Validate.
type Report struct {
	Violations []Violation
}

func (r *Report) add(field string, sev Severity, kind Kind, format string, args ...any) {
	r.Violations = append(r.Violations, Violation{
		Field:    field,
		Severity: sev,
		Kind:     kind,
		Message:  fmt.Sprintf(format, args...),
	})
}

func (r *Report) warn(field string, kind Kind, format string, args ...any) {
	r.add(field, SeverityWarning, kind, format, args...)
}

func (r Report) filter(sev Severity) []Violation {
	var out []Violation
	for _, v := range r.Violations {
		if v.Severity == sev {
			out = append(out, v)
		}
	}
	return out
}

func (r Report) Errors() []Violation   { return r.filter(SeverityError) }
func (r Report) Warnings() []Violation { return r.filter(SeverityWarning) }

// HasErrors reports whether the buffer must not be treated as a cart chunk.
func (r Report) HasErrors() bool {
	for _, v := range r.Violations {
		if v.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Err returns the first Error-severity finding as an error, wrapping
// ErrBadTag or ErrSizeMismatch.
func (r Report) Err() error {
	for _, v := range r.Violations {
		if v.Severity != SeverityError {
			continue
		}
		switch v.Kind {
		case KindBadTag:
			return fmt.Errorf("%w: %s", ErrBadTag, v.Message)
		case KindSizeMismatch:
			return fmt.Errorf("%w: %s", ErrSizeMismatch, v.Message)
		default:
			return errors.New(v.String())
		}
	}
	return nil
}

func (r Report) String() string {
	if len(r.Violations) == 0 {
		return "no findings"
	}
	var b strings.Builder
	for i, v := range r.Violations {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(v.String())
	}
	return b.String()
}
