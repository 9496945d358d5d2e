package ted

import (
	"fmt"
	"strings"
)

// Attr is an optional label attribute. The zero value is absent.
// An absent attribute never equals a present one, even if the present value is empty.
type Attr struct {
	value string
	valid bool
}

// Some returns a present attribute holding value.
func Some(value string) Attr {
	return Attr{value: value, valid: true}
}

// None returns an absent attribute.
func None() Attr {
	return Attr{}
}

// Value returns the attribute value and whether it is present.
func (a Attr) Value() (string, bool) {
	return a.value, a.valid
}

// IsSet reports whether the attribute is present.
func (a Attr) IsSet() bool {
	return a.valid
}

// String returns the value, or "_" when absent (the CoNLL-U placeholder).
func (a Attr) String() string {
	if !a.valid {
		return "_"
	}
	return a.value
}

// key encodes the attribute so that absent and empty values differ.
func (a Attr) key() string {
	if !a.valid {
		return "\x00"
	}
	return "=" + a.value
}

// Label holds the per-node attributes consumed by cost models.
// Labels are comparable with == and only built through NewLabel or LabelOf,
// which reduce the dependency relation to its universal part.
type Label struct {
	form   Attr
	deprel Attr
	upos   Attr
}

// NewLabel builds a label from plain strings. Empty strings are treated as absent.
func NewLabel(form, deprel, upos string) Label {
	return LabelOf(optional(form), optional(deprel), optional(upos))
}

// LabelOf builds a label from optional attributes.
func LabelOf(form, deprel, upos Attr) Label {
	if v, ok := deprel.Value(); ok {
		deprel = Some(CoarseRelation(v))
	}
	return Label{form: form, deprel: deprel, upos: upos}
}

// CoarseRelation strips the language-specific subtype from a dependency
// relation: "nsubj:pass" becomes "nsubj".
func CoarseRelation(deprel string) string {
	if idx := strings.IndexByte(deprel, ':'); idx >= 0 {
		return deprel[:idx]
	}
	return deprel
}

func optional(s string) Attr {
	if s == "" {
		return None()
	}
	return Some(s)
}

// Form returns the word form attribute.
func (l Label) Form() Attr { return l.form }

// Deprel returns the coarse dependency relation attribute.
func (l Label) Deprel() Attr { return l.deprel }

// UPOS returns the universal part-of-speech attribute.
func (l Label) UPOS() Attr { return l.upos }

// String returns a compact representation of the label
func (l Label) String() string {
	return fmt.Sprintf("%s/%s/%s", l.form, l.deprel, l.upos)
}
