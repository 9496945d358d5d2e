package ted

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoarseRelation(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"nsubj", "nsubj"},
		{"nsubj:pass", "nsubj"},
		{"nsubj:xsubj", "nsubj"},
		{"obl:tmod:extra", "obl"},
		{":odd", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, CoarseRelation(tt.in))
		})
	}
}

func TestNewLabel_ReducesRelation(t *testing.T) {
	a := NewLabel("was", "nsubj:pass", "AUX")
	b := NewLabel("was", "nsubj:xsubj", "AUX")

	v, ok := a.Deprel().Value()
	assert.True(t, ok)
	assert.Equal(t, "nsubj", v)
	assert.Equal(t, a, b, "labels differing only in relation subtype are equal")
}

func TestLabel_AbsentNeverEqualsPresent(t *testing.T) {
	absent := LabelOf(None(), None(), None())
	empty := LabelOf(Some(""), Some(""), Some(""))

	assert.NotEqual(t, absent, empty)
	assert.False(t, absent.Form().IsSet())
	assert.True(t, empty.Form().IsSet())
	assert.Equal(t, "_", absent.UPOS().String())

	// NewLabel treats empty strings as absent
	assert.Equal(t, absent, NewLabel("", "", ""))
}

func TestLabel_String(t *testing.T) {
	assert.Equal(t, "cat/nsubj/NOUN", NewLabel("cat", "nsubj", "NOUN").String())
	assert.Equal(t, "cat/_/_", NewLabel("cat", "", "").String())
}
