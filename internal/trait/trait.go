// Package trait defines the fixed taxonomy of structural prompt traits.
//
// The taxonomy is closed: exactly ten traits, in a stable order, never
// created or removed at runtime. Verdicts are stored as a fixed-size
// array so that a verdict set is always total by construction.
package trait

// Trait identifies one structural property a prompt may exhibit.
type Trait int

const (
	ClearGoal Trait = iota
	GivesContext
	ReferencesFiles
	ShowsError
	DescribesBehavior
	SetsConstraints
	BreaksDownTask
	ShowsExample
	ExplainsWhy
	SpecifiesNegative
)

// Count is the number of traits in the taxonomy.
const Count = 10

var keys = [Count]string{
	"clear_goal",
	"gives_context",
	"references_files",
	"shows_error",
	"describes_behavior",
	"sets_constraints",
	"breaks_down_task",
	"shows_example",
	"explains_why",
	"specifies_negative",
}

var labels = [Count]string{
	"Clear Goal",
	"Gives Context",
	"References Files",
	"Shows Error",
	"Describes Behavior",
	"Sets Constraints",
	"Breaks Down Task",
	"Shows Example",
	"Explains Why",
	"Specifies Negative",
}

var descriptions = [Count]string{
	"States what you want built or fixed",
	"Explains the project or situation",
	"Points to specific files or functions",
	"Includes error message or logs",
	"Explains what should happen",
	"Limits scope or style",
	"Splits into steps or parts",
	"Provides sample input/output",
	"Gives reasoning or motivation",
	"Says what NOT to do",
}

// All returns every trait in taxonomy order.
func All() []Trait {
	traits := make([]Trait, Count)
	for i := range traits {
		traits[i] = Trait(i)
	}
	return traits
}

// Key returns the stable identifier for this trait (e.g. "shows_error").
func (t Trait) Key() string {
	if t < 0 || t >= Count {
		return "unknown"
	}
	return keys[t]
}

// Label returns the human-readable name for this trait.
func (t Trait) Label() string {
	if t < 0 || t >= Count {
		return "Unknown"
	}
	return labels[t]
}

// Description returns the one-line semantic description for this trait.
func (t Trait) Description() string {
	if t < 0 || t >= Count {
		return ""
	}
	return descriptions[t]
}

func (t Trait) String() string {
	return t.Key()
}

// FromKey resolves a trait identifier. The second return value reports
// whether the key names a taxonomy trait.
func FromKey(key string) (Trait, bool) {
	for i, k := range keys {
		if k == key {
			return Trait(i), true
		}
	}
	return 0, false
}

// Verdicts is a complete trait verdict set for one prompt. The fixed
// size guarantees a verdict exists for every taxonomy trait; there is
// no partial state to validate.
type Verdicts [Count]bool

// Present returns the traits marked true, in taxonomy order.
func (v Verdicts) Present() []Trait {
	var present []Trait
	for i, detected := range v {
		if detected {
			present = append(present, Trait(i))
		}
	}
	return present
}

// Absent returns the traits marked false, in taxonomy order.
func (v Verdicts) Absent() []Trait {
	var absent []Trait
	for i, detected := range v {
		if !detected {
			absent = append(absent, Trait(i))
		}
	}
	return absent
}

// NumPresent returns how many traits are marked true.
func (v Verdicts) NumPresent() int {
	n := 0
	for _, detected := range v {
		if detected {
			n++
		}
	}
	return n
}

// Provenance records which classifier produced a verdict set.
type Provenance int

const (
	// ProvenanceRule marks verdicts from the deterministic rule-based classifier.
	ProvenanceRule Provenance = iota
	// ProvenanceLLM marks verdicts from the language-model classifier.
	ProvenanceLLM
)

func (p Provenance) String() string {
	switch p {
	case ProvenanceRule:
		return "rule-based"
	case ProvenanceLLM:
		return "llm"
	default:
		return "unknown"
	}
}

// ProvenanceFromString resolves a stored provenance tag, defaulting to
// rule-based for unrecognized values.
func ProvenanceFromString(s string) Provenance {
	if s == "llm" {
		return ProvenanceLLM
	}
	return ProvenanceRule
}
