package service

import (
	"errors"
	"runtime"
	"sync"

	"github.com/breaklikeafish/UD-TED/domain"
	"github.com/breaklikeafish/UD-TED/internal/conllu"
)

// FileParseResult holds the cached parse result for a single corpus file.
type FileParseResult struct {
	Sentences []*conllu.Sentence
	Err       error
}

// ParseCache stores parsed corpus files. After Seal() is called the cache is
// read-only and safe for concurrent access without locks.
type ParseCache struct {
	results map[string]*FileParseResult
	sealed  bool
}

// NewParseCache creates a new empty ParseCache.
func NewParseCache() *ParseCache {
	return &ParseCache{
		results: make(map[string]*FileParseResult),
	}
}

// Put stores a parse result. Must be called before Seal().
func (c *ParseCache) Put(filePath string, result *FileParseResult) {
	if c.sealed {
		return
	}
	c.results[filePath] = result
}

// Seal marks the cache as read-only.
func (c *ParseCache) Seal() {
	c.sealed = true
}

// Get retrieves a cached parse result. Returns (result, true) on hit.
func (c *ParseCache) Get(filePath string) (*FileParseResult, bool) {
	r, ok := c.results[filePath]
	return r, ok
}

// Len returns the number of entries in the cache.
func (c *ParseCache) Len() int {
	return len(c.results)
}

// Sentences concatenates the sentences of files in the given order. The
// first file that failed to parse aborts the concatenation.
func (c *ParseCache) Sentences(files []string) ([]*conllu.Sentence, error) {
	var sentences []*conllu.Sentence
	for _, path := range files {
		r, ok := c.Get(path)
		if !ok {
			return nil, domain.NewFileAccessError(path, errors.New("file was not read"))
		}
		if r.Err != nil {
			return nil, r.Err
		}
		sentences = append(sentences, r.Sentences...)
	}
	return sentences, nil
}

// PopulateParseCache reads and parses all files in parallel with at most
// concurrency files open at once (0 means runtime.GOMAXPROCS(0)) and
// returns a sealed cache. Errors are stored per file as domain errors.
func PopulateParseCache(parser *conllu.Parser, files []string, concurrency int) *ParseCache {
	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}

	results := make([]*FileParseResult, len(files))

	var wg sync.WaitGroup
	sem := make(chan struct{}, concurrency)

	for i, filePath := range files {
		wg.Add(1)
		go func(idx int, fp string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			sentences, err := parser.ReadFile(fp)
			results[idx] = &FileParseResult{Sentences: sentences, Err: fileError(fp, err)}
		}(i, filePath)
	}

	wg.Wait()

	// Populate cache from collected results (single-threaded, no lock needed)
	cache := NewParseCache()
	for i, r := range results {
		cache.Put(files[i], r)
	}
	cache.Seal()

	return cache
}

// fileError classifies a read failure of path
func fileError(path string, err error) error {
	if err == nil {
		return nil
	}
	var parseErr *conllu.ParseError
	if errors.As(err, &parseErr) {
		return domain.NewParseError(path, err)
	}
	return domain.NewFileAccessError(path, err)
}
