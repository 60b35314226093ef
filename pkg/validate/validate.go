// Package validate checks corpus documents against the structural rules
// of the knowledge base: required fields per role, language-map shape
// and completeness, system-scoping of content fields, and resolution of
// cross-references against the loaded corpus.
package validate

import (
	"fmt"

	"github.com/openherb/herbarium/pkg/corpus"
)

// Kind classifies a validation finding.
type Kind string

// Validation finding kinds.
const (
	MissingField       Kind = "MissingField"
	WrongShape         Kind = "WrongShape"
	MissingTranslation Kind = "MissingTranslation"
	ScopeViolation     Kind = "ScopeViolation"

	// Resolution kinds, reported by the corpus-level pass. Unresolved
	// and malformed references are distinct findings.
	UnresolvedReference Kind = "UnresolvedReference"
	MalformedReference  Kind = "MalformedReference"
)

// Severity separates blocking errors from advisory warnings.
type Severity int

// Severities.
const (
	Warning Severity = iota
	Error
)

func (s Severity) String() string {
	if s == Error {
		return "error"
	}
	return "warning"
}

// Issue is one validation finding on one field.
type Issue struct {
	Field    string   `json:"field"`
	Kind     Kind     `json:"kind"`
	Severity Severity `json:"-"`
	Level    string   `json:"severity"`
	Detail   string   `json:"detail,omitempty"`
}

func issue(severity Severity, field string, kind Kind, detail string) Issue {
	return Issue{
		Field:    field,
		Kind:     kind,
		Severity: severity,
		Level:    severity.String(),
		Detail:   detail,
	}
}

// Result aggregates the findings for one document.
type Result struct {
	Path   string      `json:"path"`
	ID     string      `json:"id"`
	Role   corpus.Role `json:"role"`
	Issues []Issue     `json:"issues,omitempty"`
}

// ErrorCount returns the number of blocking findings.
func (r *Result) ErrorCount() int {
	n := 0
	for _, iss := range r.Issues {
		if iss.Severity == Error {
			n++
		}
	}
	return n
}

// WarningCount returns the number of advisory findings.
func (r *Result) WarningCount() int {
	return len(r.Issues) - r.ErrorCount()
}

// Report aggregates a whole validation run.
type Report struct {
	Results       []*Result `json:"results"`
	ParseFailures []string  `json:"parseFailures,omitempty"`
}

// Documents returns the number of documents examined.
func (rep *Report) Documents() int { return len(rep.Results) }

// Passed returns the number of documents with no blocking errors.
func (rep *Report) Passed() int {
	n := 0
	for _, r := range rep.Results {
		if r.ErrorCount() == 0 {
			n++
		}
	}
	return n
}

// Errors returns the total blocking findings plus parse failures.
func (rep *Report) Errors() int {
	n := len(rep.ParseFailures)
	for _, r := range rep.Results {
		n += r.ErrorCount()
	}
	return n
}

// Warnings returns the total advisory findings.
func (rep *Report) Warnings() int {
	n := 0
	for _, r := range rep.Results {
		n += r.WarningCount()
	}
	return n
}

// Failed reports whether the run should exit non-zero.
func (rep *Report) Failed() bool { return rep.Errors() > 0 }

// Document validates a single parsed document in isolation. Corpus-level
// reference resolution needs the full corpus; see Corpus.
func Document(doc corpus.Document) []Issue {
	switch d := doc.(type) {
	case *corpus.Plant:
		return plantIssues(d)
	case *corpus.Profile:
		return profileIssues(d)
	case *corpus.ConceptScheme:
		return schemeIssues(d)
	default:
		return []Issue{issue(Error, "", WrongShape, fmt.Sprintf("unsupported document type %T", doc))}
	}
}

// Corpus validates every loaded document and resolves cross-references
// against the corpus lookup tables. Parse failures recorded by the
// loader are carried into the report as blocking errors.
func Corpus(c *corpus.Corpus) *Report {
	rep := &Report{}
	for _, f := range c.Files {
		result := &Result{Path: f.Path, ID: f.Doc.DocID(), Role: f.Role}
		result.Issues = append(result.Issues, Document(f.Doc)...)
		result.Issues = append(result.Issues, resolutionIssues(c, f.Doc)...)
		rep.Results = append(rep.Results, result)
	}
	for _, f := range c.Failures {
		detail := f.Path
		if f.Err != nil {
			detail = f.Err.Error()
		}
		rep.ParseFailures = append(rep.ParseFailures, detail)
	}
	return rep
}
