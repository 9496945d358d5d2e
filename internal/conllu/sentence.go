package conllu

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/breaklikeafish/UD-TED/internal/ted"
)

// Token is a single syntactic word row.
// Underscore fields are stored as empty strings.
type Token struct {
	ID     int
	Form   string
	Lemma  string
	UPOS   string
	XPOS   string
	Feats  string
	Head   int
	Deprel string
	Deps   string
	Misc   string
}

// Label returns the engine label of the token.
func (t Token) Label() ted.Label {
	return ted.NewLabel(t.Form, t.Deprel, t.UPOS)
}

// String renders the token back as a CoNLL-U row.
func (t Token) String() string {
	fields := []string{
		strconv.Itoa(t.ID),
		t.Form,
		t.Lemma,
		t.UPOS,
		t.XPOS,
		t.Feats,
		strconv.Itoa(t.Head),
		t.Deprel,
		t.Deps,
		t.Misc,
	}
	for i, f := range fields {
		if f == "" {
			fields[i] = "_"
		}
	}
	return strings.Join(fields, "\t")
}

// Sentence is one parsed sentence block.
type Sentence struct {
	ID       string   // value of the sent_id comment, may be empty
	Text     string   // value of the text comment, may be empty
	Comments []string // all comment lines, verbatim
	Tokens   []Token  // syntactic words in ID order
	Line     int      // 1-based line where the block starts

	children [][]int // children[k] lists token positions whose head is token k+1
	roots    []int
}

// Len returns the number of syntactic words in the sentence.
func (s *Sentence) Len() int {
	return len(s.Tokens)
}

// Roots returns the dependency trees of the sentence, one per token whose
// head is 0, in token order.
func (s *Sentence) Roots() []ted.Node {
	out := make([]ted.Node, len(s.roots))
	for k, pos := range s.roots {
		out[k] = &tokenNode{sentence: s, pos: pos}
	}
	return out
}

// Forest flattens the sentence into an engine forest.
func (s *Sentence) Forest() (*ted.Forest, error) {
	f, err := ted.BuildForest(s.Roots()...)
	if err != nil {
		return nil, fmt.Errorf("sentence %s: %w", s.Name(), err)
	}
	return f, nil
}

// Name identifies the sentence in messages: its sent_id or its start line.
func (s *Sentence) Name() string {
	if s.ID != "" {
		return s.ID
	}
	return fmt.Sprintf("at line %d", s.Line)
}

// link resolves head references into child lists and checks that every
// token hangs from a root.
func (s *Sentence) link() error {
	n := len(s.Tokens)
	if n == 0 {
		return fmt.Errorf("sentence has no tokens")
	}
	for pos, tok := range s.Tokens {
		if tok.ID != pos+1 {
			return fmt.Errorf("token %d found at position %d; IDs must be consecutive from 1", tok.ID, pos+1)
		}
	}

	s.children = make([][]int, n)
	s.roots = s.roots[:0]
	for pos, tok := range s.Tokens {
		switch {
		case tok.Head == 0:
			s.roots = append(s.roots, pos)
		case tok.Head < 0 || tok.Head > n:
			return fmt.Errorf("token %d has head %d outside 0..%d", tok.ID, tok.Head, n)
		case tok.Head == tok.ID:
			return fmt.Errorf("token %d is its own head", tok.ID)
		default:
			s.children[tok.Head-1] = append(s.children[tok.Head-1], pos)
		}
	}
	if len(s.roots) == 0 {
		return fmt.Errorf("no token has head 0")
	}

	reached := 0
	stack := append([]int(nil), s.roots...)
	for len(stack) > 0 {
		pos := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		reached++
		stack = append(stack, s.children[pos]...)
	}
	if reached != n {
		return fmt.Errorf("head references form a cycle (%d of %d tokens reachable from a root)", reached, n)
	}
	return nil
}

// tokenNode adapts a token of a sentence to ted.Node.
type tokenNode struct {
	sentence *Sentence
	pos      int
}

func (n *tokenNode) Label() ted.Label {
	return n.sentence.Tokens[n.pos].Label()
}

func (n *tokenNode) Children() []ted.Node {
	kids := n.sentence.children[n.pos]
	out := make([]ted.Node, len(kids))
	for k, c := range kids {
		out[k] = &tokenNode{sentence: n.sentence, pos: c}
	}
	return out
}
