package query

import (
	"strings"
	"unicode"

	aho_corasick "github.com/petar-dambovaliev/aho-corasick"
)

// ClauseType distinguishes bare terms from quoted phrases.
type ClauseType int

const (
	TermClause ClauseType = iota
	PhraseClause
)

// Clause is one normalized unit of a free-text query.
type Clause struct {
	Pattern  string // normalized pattern text
	Type     ClauseType
	RawInput string // original pre-normalization
}

// normalizeText applies the matching normalization: lowercasing only.
func normalizeText(s string) string {
	return strings.ToLower(s)
}

// ParseClauses splits user input into clauses. Double quotes delimit
// phrases that match as one unit, spaces included. Unclosed quotes fall
// back to term clauses.
func ParseClauses(input string) []Clause {
	var clauses []Clause
	var current strings.Builder
	inQuote := false

	addTerm := func() {
		if current.Len() > 0 {
			raw := current.String()
			clauses = append(clauses, Clause{
				Pattern:  normalizeText(raw),
				Type:     TermClause,
				RawInput: raw,
			})
			current.Reset()
		}
	}

	for _, r := range input {
		if r == '"' {
			if inQuote {
				raw := current.String()
				if len(raw) > 0 {
					clauses = append(clauses, Clause{
						Pattern:  normalizeText(raw),
						Type:     PhraseClause,
						RawInput: raw,
					})
				}
				current.Reset()
				inQuote = false
			} else {
				addTerm() // flush any preceding term
				inQuote = true
			}
		} else if unicode.IsSpace(r) && !inQuote {
			addTerm()
		} else {
			current.WriteRune(r)
		}
	}

	addTerm()
	return clauses
}

// TextFilter matches every clause of a query against an entity's name,
// description, and code in one automaton pass per field. A single
// unquoted word degenerates to a plain case-insensitive substring test.
type TextFilter struct {
	clauses []Clause
	ac      aho_corasick.AhoCorasick
}

// NewTextFilter compiles a query. Empty or all-space input produces an
// inactive filter that matches everything. Clauses with duplicate
// patterns collapse to one, since the automaton reports one pattern index
// per unique pattern.
func NewTextFilter(queryText string) *TextFilter {
	clauses := ParseClauses(queryText)
	if len(clauses) == 0 {
		return &TextFilter{}
	}

	seen := make(map[string]bool, len(clauses))
	uniq := make([]Clause, 0, len(clauses))
	for _, c := range clauses {
		if seen[c.Pattern] {
			continue
		}
		seen[c.Pattern] = true
		uniq = append(uniq, c)
	}

	pats := make([]string, len(uniq))
	for i, c := range uniq {
		pats[i] = c.Pattern
	}

	b := aho_corasick.NewAhoCorasickBuilder(aho_corasick.Opts{
		AsciiCaseInsensitive: false,                      // patterns and fields are lowercased here
		MatchOnlyWholeWords:  false,                      // substring semantics
		MatchKind:            aho_corasick.StandardMatch, // required for IterOverlapping
		DFA:                  false,
	})
	return &TextFilter{clauses: uniq, ac: b.Build(pats)}
}

// Active reports whether the filter constrains anything.
func (f *TextFilter) Active() bool {
	return len(f.clauses) > 0
}

// Clauses returns the compiled clause list.
func (f *TextFilter) Clauses() []Clause {
	return f.clauses
}

// MatchesEntity reports whether every clause hits at least one of the
// entity's text fields.
func (f *TextFilter) MatchesEntity(e Entity) bool {
	return f.MatchesFields(e.Name, e.Description, e.Code)
}

// MatchesFields streams the automaton over each field, stopping as soon
// as every clause is covered.
func (f *TextFilter) MatchesFields(fields ...string) bool {
	if !f.Active() {
		return true
	}

	hit := make([]bool, len(f.clauses))
	remaining := len(f.clauses)

	for _, field := range fields {
		if field == "" {
			continue
		}
		iter := f.ac.IterOverlapping(normalizeText(field))
		for {
			m := iter.Next()
			if m == nil {
				break
			}
			pi := m.Pattern()
			if pi < len(hit) && !hit[pi] {
				hit[pi] = true
				remaining--
				if remaining == 0 {
					return true
				}
			}
		}
	}
	return false
}
