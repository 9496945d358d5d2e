package service

import (
	"fmt"
	"io/fs"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/breaklikeafish/UD-TED/domain"
	"github.com/breaklikeafish/UD-TED/internal/conllu"
)

// SentenceReaderImpl implements the SentenceReader interface on top of the
// CoNLL-U parser.
type SentenceReaderImpl struct {
	parser *conllu.Parser
}

// NewSentenceReader creates a new sentence reader
func NewSentenceReader() *SentenceReaderImpl {
	return &SentenceReaderImpl{parser: conllu.New()}
}

// ReadSentences loads every sentence of source
func (r *SentenceReaderImpl) ReadSentences(source domain.SentenceSource) ([]*conllu.Sentence, error) {
	if source.IsInline() {
		sentences, err := r.parser.Parse([]byte(source.Content))
		if err != nil {
			return nil, domain.NewParseError(source.String(), err)
		}
		return sentences, nil
	}

	files, err := r.ResolvePaths(source.Path)
	if err != nil {
		return nil, err
	}

	return PopulateParseCache(r.parser, files, 0).Sentences(files)
}

// ResolvePaths expands a glob pattern into the matching files in lexical
// order. A plain path is returned unchanged.
func (r *SentenceReaderImpl) ResolvePaths(pattern string) ([]string, error) {
	if !hasGlobMeta(pattern) {
		return []string{pattern}, nil
	}

	if !doublestar.ValidatePattern(pattern) {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("invalid glob pattern: %s", pattern), doublestar.ErrBadPattern)
	}

	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("invalid glob pattern: %s", pattern), err)
	}
	if len(matches) == 0 {
		return nil, domain.NewFileAccessError(pattern, fmt.Errorf("no files match: %w", fs.ErrNotExist))
	}

	sort.Strings(matches)
	return matches, nil
}

func hasGlobMeta(path string) bool {
	for i := 0; i < len(path); i++ {
		switch path[i] {
		case '*', '?', '[', '{':
			return true
		}
	}
	return false
}
