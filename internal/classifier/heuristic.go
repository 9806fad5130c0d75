package classifier

import (
	"context"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gtext "github.com/yuin/goldmark/text"

	"github.com/promptvault/promptvault/internal/trait"
)

// RuleClassifier detects traits with deterministic surface heuristics.
// It needs no network, never fails, and always returns a complete
// verdict set. Each trait's predicate is independent of the others.
type RuleClassifier struct {
	md goldmark.Markdown
}

// NewRuleClassifier creates the rule-based classifier.
func NewRuleClassifier() *RuleClassifier {
	return &RuleClassifier{md: goldmark.New()}
}

// Provenance reports rule-based origin.
func (c *RuleClassifier) Provenance() trait.Provenance { return trait.ProvenanceRule }

var (
	// Path-like tokens: something/with.ext, dotted source files, or
	// backtick-quoted identifiers.
	pathPattern     = regexp.MustCompile(`(?i)\b[\w./-]+\.(go|py|js|jsx|ts|tsx|css|html|json|yaml|yml|sql|rs|java|rb|sh|md)\b`)
	backtickPattern = regexp.MustCompile("`[^`\\s][^`]*`")

	// Error-like tokens: runtime error names, stack trace markers.
	errorPattern = regexp.MustCompile(`(?i)\b(\w*(error|exception)\b|panic:|traceback|stack trace|segfault)`)

	// Numbered step markers at the start of a line.
	stepPattern = regexp.MustCompile(`(?m)^\s*\d+[.)]\s`)
)

var (
	goalWords       = []string{"add ", "create", "build", "fix", "make ", "implement", "want", "refactor", "write "}
	contextWords    = []string{"using", "project", "app", "this is", "we have", "i have", "our ", "codebase"}
	fileWords       = []string{"component", "file", "function", "module", "class "}
	errorWords      = []string{"error", "exception", "failed", "crash", "bug", "traceback", "panic"}
	behaviorWords   = []string{"should", "when", "if clicked", "displays", "shows", "returns", "behave", "expected"}
	constraintWords = []string{"simple", "only", "don't use", "without", "keep it", "no external", "limit", "must "}
	stepWords       = []string{"first", "then", "step", "finally", "after that", "next,"}
	exampleWords    = []string{"example", "like this", "such as", "e.g.", "for instance"}
	reasonWords     = []string{"because", "since", "reason", "so that", "in order to", "need to"}
	negativeWords   = []string{"don't", "do not", "avoid", "never", "without", "not include", "skip"}
)

// Classify evaluates every trait predicate against the text. The error
// is always nil; it exists to satisfy the Classifier contract.
func (c *RuleClassifier) Classify(_ context.Context, text string) (trait.Verdicts, error) {
	lower := strings.ToLower(text)
	structure := c.parseStructure(text)

	var v trait.Verdicts
	v[trait.ClearGoal] = containsAny(lower, goalWords)
	v[trait.GivesContext] = containsAny(lower, contextWords)
	v[trait.ReferencesFiles] = pathPattern.MatchString(text) ||
		backtickPattern.MatchString(text) ||
		containsAny(lower, fileWords)
	v[trait.ShowsError] = errorPattern.MatchString(text) || containsAny(lower, errorWords)
	v[trait.DescribesBehavior] = containsAny(lower, behaviorWords)
	v[trait.SetsConstraints] = containsAny(lower, constraintWords)
	v[trait.BreaksDownTask] = structure.orderedList ||
		stepPattern.MatchString(text) ||
		containsAny(lower, stepWords)
	v[trait.ShowsExample] = structure.codeBlock || containsAny(lower, exampleWords)
	v[trait.ExplainsWhy] = containsAny(lower, reasonWords)
	v[trait.SpecifiesNegative] = containsAny(lower, negativeWords)

	return v, nil
}

// promptStructure holds the markdown-level signals extracted once per
// classification.
type promptStructure struct {
	orderedList bool
	codeBlock   bool
}

// parseStructure walks the markdown AST of the prompt looking for
// ordered lists and code blocks. Prompts are frequently written in
// markdown even when not labelled as such.
func (c *RuleClassifier) parseStructure(text string) promptStructure {
	var s promptStructure

	doc := c.md.Parser().Parse(gtext.NewReader([]byte(text)))
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.List:
			if node.IsOrdered() {
				s.orderedList = true
			}
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			s.codeBlock = true
		}
		return ast.WalkContinue, nil
	})

	return s
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
