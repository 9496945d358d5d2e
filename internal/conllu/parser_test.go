package conllu

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/breaklikeafish/UD-TED/internal/ted"
)

const sample = `# newdoc id = test
# sent_id = s1
# text = The dog barked.
1	The	the	DET	DT	Definite=Def	2	det	_	_
2	dog	dog	NOUN	NN	Number=Sing	3	nsubj	_	_
3	barked	bark	VERB	VBD	Tense=Past	0	root	_	SpaceAfter=No
4	.	.	PUNCT	.	_	3	punct	_	_

# sent_id = s2
# text = Don't go
1-2	Don't	_	_	_	_	_	_	_	_
1	Do	do	AUX	VBP	_	3	aux	_	_
2	n't	not	PART	RB	_	3	advmod	_	_
3	go	go	VERB	VB	_	0	root	_	_
3.1	went	go	VERB	VBD	_	_	_	3:conj	_

# sent_id = s3
1	was	be	AUX	VBD	_	0	root	_	_
2	taken	take	VERB	VBN	_	1	nsubj:pass	_	_
`

func TestParser_Parse(t *testing.T) {
	sentences, err := New().Parse([]byte(sample))
	require.NoError(t, err)
	require.Len(t, sentences, 3)

	s1 := sentences[0]
	assert.Equal(t, "s1", s1.ID)
	assert.Equal(t, "The dog barked.", s1.Text)
	assert.Len(t, s1.Comments, 3)
	assert.Equal(t, 4, s1.Len())
	assert.Equal(t, 1, s1.Line)
	assert.Equal(t, "Definite=Def", s1.Tokens[0].Feats)
	assert.Equal(t, "SpaceAfter=No", s1.Tokens[2].Misc)
	assert.Equal(t, "", s1.Tokens[3].Deps)

	s2 := sentences[1]
	assert.Equal(t, "s2", s2.ID)
	assert.Equal(t, 3, s2.Len(), "range and empty node rows are skipped")
	assert.Equal(t, []string{"Do", "n't", "go"}, forms(s2.Tokens))

	s3 := sentences[2]
	assert.Equal(t, "", s3.Text)
	assert.Equal(t, "nsubj:pass", s3.Tokens[1].Deprel)
}

func TestSentence_Roots(t *testing.T) {
	sentences, err := New().Parse([]byte(sample))
	require.NoError(t, err)

	roots := sentences[0].Roots()
	require.Len(t, roots, 1)
	v, _ := roots[0].Label().Form().Value()
	assert.Equal(t, "barked", v)

	kids := roots[0].Children()
	require.Len(t, kids, 2)
	first, _ := kids[0].Label().Form().Value()
	second, _ := kids[1].Label().Form().Value()
	assert.Equal(t, "dog", first)
	assert.Equal(t, ".", second)

	f, err := sentences[0].Forest()
	require.NoError(t, err)
	assert.Equal(t, 4, f.Size())
	assert.Equal(t, 3, f.EdgeCount())

	// deprel subtype is dropped by the label
	rel, _ := sentences[2].Tokens[1].Label().Deprel().Value()
	assert.Equal(t, "nsubj", rel)
}

func TestSentence_MultipleRootsFormForest(t *testing.T) {
	src := "1\ta\t_\tX\t_\t_\t0\troot\t_\t_\n" +
		"2\tb\t_\tX\t_\t_\t0\troot\t_\t_\n" +
		"3\tc\t_\tX\t_\t_\t2\tdep\t_\t_\n"
	sentences, err := New().Parse([]byte(src))
	require.NoError(t, err)
	require.Len(t, sentences, 1)

	f, err := sentences[0].Forest()
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, f.Roots())
	assert.Equal(t, 1, f.Parent(2))
	assert.Equal(t, []int{2}, f.Children(1))
	assert.Empty(t, f.Children(0))
	assert.Equal(t, "at line 1", sentences[0].Name())
}

func TestParser_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "wrong field count",
			input: "1\tdog\tNOUN\n",
			want:  "expected 10 fields",
		},
		{
			name:  "bad id",
			input: "x\tdog\t_\tNOUN\t_\t_\t0\troot\t_\t_\n",
			want:  "ID field",
		},
		{
			name:  "missing head",
			input: "1\tdog\t_\tNOUN\t_\t_\t_\troot\t_\t_\n",
			want:  "HEAD field",
		},
		{
			name:  "head out of range",
			input: "1\tdog\t_\tNOUN\t_\t_\t5\troot\t_\t_\n",
			want:  "outside",
		},
		{
			name: "cycle",
			input: "1\ta\t_\tX\t_\t_\t2\tdep\t_\t_\n" +
				"2\tb\t_\tX\t_\t_\t1\tdep\t_\t_\n",
			want: "no token has head 0",
		},
		{
			name: "detached cycle",
			input: "1\ta\t_\tX\t_\t_\t0\troot\t_\t_\n" +
				"2\tb\t_\tX\t_\t_\t3\tdep\t_\t_\n" +
				"3\tc\t_\tX\t_\t_\t2\tdep\t_\t_\n",
			want: "cycle",
		},
		{
			name: "gap in ids",
			input: "1\ta\t_\tX\t_\t_\t0\troot\t_\t_\n" +
				"3\tc\t_\tX\t_\t_\t1\tdep\t_\t_\n",
			want: "consecutive",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New().Parse([]byte(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)

			var perr *ParseError
			assert.ErrorAs(t, err, &perr)
		})
	}
}

func TestParser_WithLimit(t *testing.T) {
	sentences, err := New().WithLimit(2).Parse([]byte(sample))
	require.NoError(t, err)
	assert.Len(t, sentences, 2)
}

func TestParser_ReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.conllu")
	require.NoError(t, os.WriteFile(path, []byte(strings.ReplaceAll(sample, "\n", "\r\n")), 0o644))

	sentences, err := New().ReadFile(path)
	require.NoError(t, err)
	require.Len(t, sentences, 3)
	assert.Equal(t, "barked", sentences[0].Tokens[2].Form)

	empty := filepath.Join(dir, "empty.conllu")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	sentences, err = New().ReadFile(empty)
	require.NoError(t, err)
	assert.Empty(t, sentences)

	_, err = New().ReadFile(filepath.Join(dir, "missing.conllu"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = New().ReadFile(dir)
	assert.Error(t, err)
}

func TestSentences_Distance(t *testing.T) {
	gold := "1\tA\t_\tX\t_\t_\t0\troot\t_\t_\n2\tB\t_\tX\t_\t_\t1\tdep\t_\t_\n"
	pred := "1\tA\t_\tX\t_\t_\t0\troot\t_\t_\n"

	g, err := New().Parse([]byte(gold))
	require.NoError(t, err)
	p, err := New().Parse([]byte(pred))
	require.NoError(t, err)

	gf, err := g[0].Forest()
	require.NoError(t, err)
	pf, err := p[0].Forest()
	require.NoError(t, err)

	res, err := ted.Distance(context.Background(), gf, pf, ted.StructuralCostModel{})
	require.NoError(t, err)
	assert.Equal(t, 1.0, res.Distance)
}

func TestToken_String(t *testing.T) {
	tok := Token{ID: 2, Form: "dog", UPOS: "NOUN", Head: 3, Deprel: "nsubj"}
	assert.Equal(t, "2\tdog\t_\tNOUN\t_\t_\t3\tnsubj\t_\t_", tok.String())
}

func forms(tokens []Token) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Form
	}
	return out
}
