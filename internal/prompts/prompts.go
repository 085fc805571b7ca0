// Package prompts holds the catalog of named prompt templates. The
// catalog is built once at startup (built-in templates, optionally
// overridden from a YAML directory) and is read-only afterwards, so it
// is safe to share across concurrent calls.
package prompts

import (
	"errors"
	"fmt"
	"strings"
	"text/template"
)

// Mode names the requested output shape.
type Mode string

const (
	ModeComprehensive Mode = "comprehensive"
	ModeQuick         Mode = "quick"
	ModeCitations     Mode = "citations"
)

// ErrUnknownMode is returned when a mode outside the closed set is
// requested. This is a configuration error, not a runtime condition.
var ErrUnknownMode = errors.New("unknown prompt mode")

// ParseMode maps a caller-supplied mode string onto the closed mode
// set. The empty string selects the comprehensive default.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeComprehensive:
		return ModeComprehensive, nil
	case ModeQuick:
		return ModeQuick, nil
	case ModeCitations:
		return ModeCitations, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// VarContent and VarQuery are the variable names templates may require.
const (
	VarContent = "content"
	VarQuery   = "query"
)

// Entry is one named template together with the variables it requires.
type Entry struct {
	Mode     Mode
	Required []string
	tpl      *template.Template
}

// Catalog is the fixed set of prompt templates.
type Catalog struct {
	entries map[Mode]*Entry
}

// NewCatalog builds a catalog containing the three built-in modes.
func NewCatalog() *Catalog {
	c := &Catalog{entries: make(map[Mode]*Entry)}
	// Built-ins cannot fail to parse; a panic here is a programming
	// error caught by the package tests.
	mustRegister(c, ModeComprehensive, []string{VarContent, VarQuery}, comprehensiveTemplate)
	mustRegister(c, ModeQuick, []string{VarContent, VarQuery}, quickTemplate)
	mustRegister(c, ModeCitations, []string{VarContent}, citationsTemplate)
	return c
}

func mustRegister(c *Catalog, mode Mode, required []string, text string) {
	if err := c.register(mode, required, text); err != nil {
		panic(fmt.Sprintf("prompts: built-in template %s: %v", mode, err))
	}
}

func (c *Catalog) register(mode Mode, required []string, text string) error {
	tpl, err := template.New(string(mode)).Option("missingkey=error").Parse(text)
	if err != nil {
		return fmt.Errorf("parse template %s: %w", mode, err)
	}
	c.entries[mode] = &Entry{Mode: mode, Required: required, tpl: tpl}
	return nil
}

// Render substitutes vars into the template bound to mode. Unknown
// modes and missing required variables are configuration errors.
func (c *Catalog) Render(mode Mode, vars map[string]string) (string, error) {
	entry, ok := c.entries[mode]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
	for _, name := range entry.Required {
		if _, ok := vars[name]; !ok {
			return "", fmt.Errorf("template %s: missing required variable %q", mode, name)
		}
	}
	var b strings.Builder
	if err := entry.tpl.Execute(&b, vars); err != nil {
		return "", fmt.Errorf("render template %s: %w", mode, err)
	}
	return b.String(), nil
}

// Modes lists the registered mode names.
func (c *Catalog) Modes() []Mode {
	out := make([]Mode, 0, len(c.entries))
	for m := range c.entries {
		out = append(out, m)
	}
	return out
}

const comprehensiveTemplate = `You are a legal expert specializing in Canadian law. Analyze the provided legal content and create a comprehensive summary.

CONTENT TO ANALYZE:
{{.content}}

ORIGINAL QUERY: {{.query}}

Please provide a structured summary that includes:

1. **DIRECT ANSWER**: A clear, concise answer to the specific legal question asked.

2. **KEY LEGAL CONCEPTS**: Explain the main legal principles involved.

3. **CANADIAN LEGAL CONTEXT**: How these concepts apply specifically in Canadian law, including relevant provinces if applicable.

4. **PRACTICAL IMPLICATIONS**: What this means in real-world legal scenarios.

5. **SOURCES**: Reference any specific statutes, cases, or legal authorities mentioned.

Format your response in clear sections. Be precise, accurate, and focus on Canadian legal precedents.
Do not provide legal advice - only educational information about legal concepts.

SUMMARY:
`

const quickTemplate = `Based on the legal content provided, give a concise but complete answer to this question: {{.query}}

LEGAL CONTENT:
{{.content}}

Provide a focused answer that:
- Directly addresses the question
- Uses proper legal terminology
- Mentions Canadian law context
- Is clear and understandable

ANSWER:
`

const citationsTemplate = `Extract and format legal citations from this content. Focus on Canadian legal sources.

CONTENT:
{{.content}}

List all legal sources mentioned including:
- Statutes and acts
- Case law (court decisions)
- Legal authorities
- Government sources

Format as a numbered list with proper legal citation format.

CITATIONS:
`
