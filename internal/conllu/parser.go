package conllu

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/edsrzf/mmap-go"
)

const (
	fieldSeparator = "\t"
	numFields      = 10
	maxLineSize    = 1 << 20
)

// ParseError reports a malformed line or sentence block.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parser reads CoNLL-U data.
type Parser struct {
	limit int
}

// New creates a Parser that reads every sentence.
func New() *Parser {
	return &Parser{}
}

// WithLimit stops reading after n sentences. Zero or negative reads all.
func (p *Parser) WithLimit(n int) *Parser {
	p.limit = n
	return p
}

// ReadFile memory-maps path and parses its sentences.
func (p *Parser) ReadFile(path string) ([]*Sentence, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	if info.Size() == 0 {
		return nil, nil
	}

	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to map %s: %w", path, err)
	}
	defer data.Unmap()

	return p.Parse(data)
}

// Parse parses CoNLL-U source held in memory. The returned sentences do not
// alias source.
func (p *Parser) Parse(source []byte) ([]*Sentence, error) {
	return p.ParseReader(bytes.NewReader(source))
}

// ParseReader parses CoNLL-U data from r.
func (p *Parser) ParseReader(r io.Reader) ([]*Sentence, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var (
		sentences []*Sentence
		current   *Sentence
		line      int
	)
	flush := func() error {
		if current == nil {
			return nil
		}
		if len(current.Tokens) > 0 {
			if err := current.link(); err != nil {
				return &ParseError{Line: current.Line, Err: fmt.Errorf("sentence %s: %w", current.Name(), err)}
			}
			sentences = append(sentences, current)
		}
		current = nil
		return nil
	}

	for scanner.Scan() {
		line++
		text := strings.TrimRight(scanner.Text(), "\r")

		if strings.TrimSpace(text) == "" {
			if err := flush(); err != nil {
				return nil, err
			}
			if p.limit > 0 && len(sentences) >= p.limit {
				return sentences, nil
			}
			continue
		}
		if current == nil {
			current = &Sentence{Line: line}
		}

		if strings.HasPrefix(text, "#") {
			current.Comments = append(current.Comments, text)
			key, value, ok := parseComment(text)
			if ok {
				switch key {
				case "sent_id":
					current.ID = value
				case "text":
					current.Text = value
				}
			}
			continue
		}

		record := strings.Split(text, fieldSeparator)
		if len(record) != numFields {
			return nil, &ParseError{Line: line, Err: fmt.Errorf("expected %d fields, found %d", numFields, len(record))}
		}
		if strings.Contains(record[0], "-") || strings.Contains(record[0], ".") {
			continue
		}
		tok, err := ParseRow(record)
		if err != nil {
			return nil, &ParseError{Line: line, Err: err}
		}
		current.Tokens = append(current.Tokens, tok)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read CoNLL-U data: %w", err)
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return sentences, nil
}

// parseComment splits "# key = value" comments.
func parseComment(text string) (string, string, bool) {
	body := strings.TrimSpace(strings.TrimPrefix(text, "#"))
	key, value, ok := strings.Cut(body, "=")
	if !ok {
		return "", "", false
	}
	return strings.TrimSpace(key), strings.TrimSpace(value), true
}

// ParseRow converts the ten fields of a syntactic word row into a Token.
func ParseRow(record []string) (Token, error) {
	var tok Token
	if len(record) != numFields {
		return tok, fmt.Errorf("expected %d fields, found %d", numFields, len(record))
	}

	id, err := parseInt(record[0])
	if err != nil {
		return tok, fmt.Errorf("error parsing ID field (%s): %w", record[0], err)
	}
	if id <= 0 {
		return tok, fmt.Errorf("error parsing ID field (%s): must be positive", record[0])
	}
	tok.ID = id

	head, err := parseInt(record[6])
	if err != nil {
		return tok, fmt.Errorf("error parsing HEAD field (%s): %w", record[6], err)
	}
	tok.Head = head

	tok.UPOS = parseString(record[3])
	if tok.UPOS == "PUNCT" || tok.UPOS == "SYM" {
		// symbols are taken as is, "_" included
		tok.Form = record[1]
	} else {
		tok.Form = parseString(record[1])
	}
	tok.Lemma = parseString(record[2])
	tok.XPOS = parseString(record[4])
	tok.Feats = parseString(record[5])
	tok.Deprel = parseString(record[7])
	tok.Deps = parseString(record[8])
	tok.Misc = parseString(record[9])
	return tok, nil
}

var errMissingValue = errors.New("missing value")

func parseInt(value string) (int, error) {
	if value == "_" || value == "" {
		return 0, errMissingValue
	}
	return strconv.Atoi(value)
}

func parseString(value string) string {
	if value == "_" {
		return ""
	}
	return value
}
