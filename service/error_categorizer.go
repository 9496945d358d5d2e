package service

import (
	"strings"

	"github.com/breaklikeafish/UD-TED/domain"
)

// ErrorCategorizerImpl implements the ErrorCategorizer interface
type ErrorCategorizerImpl struct {
	patterns []categoryPatterns
}

type categoryPatterns struct {
	category domain.ErrorCategory
	patterns []string
}

// NewErrorCategorizer creates a new error categorizer
func NewErrorCategorizer() domain.ErrorCategorizer {
	return &ErrorCategorizerImpl{
		patterns: initializeErrorPatterns(),
	}
}

// codeCategories maps domain error codes onto categories. Codes are checked
// before message patterns.
var codeCategories = []struct {
	code     string
	category domain.ErrorCategory
}{
	{domain.ErrCodeResourceExhausted, domain.ErrorCategoryTimeout},
	{domain.ErrCodeNotFound, domain.ErrorCategoryNotFound},
	{domain.ErrCodeConfigError, domain.ErrorCategoryConfig},
	{domain.ErrCodeParseError, domain.ErrorCategoryProcessing},
	{domain.ErrCodeFileAccess, domain.ErrorCategoryInput},
	{domain.ErrCodeOutputError, domain.ErrorCategoryOutput},
	{domain.ErrCodeUnsupportedFormat, domain.ErrorCategoryOutput},
	{domain.ErrCodeInvalidInput, domain.ErrorCategoryInput},
}

// initializeErrorPatterns initializes error pattern mappings, in match order
func initializeErrorPatterns() []categoryPatterns {
	return []categoryPatterns{
		{domain.ErrorCategoryTimeout, []string{
			"timeout",
			"deadline",
			"context canceled",
			"budget exceeded",
		}},
		{domain.ErrorCategoryConfig, []string{
			"config",
			"configuration",
			"toml",
		}},
		{domain.ErrorCategoryNotFound, []string{
			"no sentence",
			"out of range",
		}},
		{domain.ErrorCategoryInput, []string{
			"invalid input",
			"no files match",
			"no such file",
			"is a directory",
			"permission denied",
		}},
		{domain.ErrorCategoryOutput, []string{
			"write",
			"output",
			"cannot create",
		}},
		{domain.ErrorCategoryProcessing, []string{
			"parse",
			"line ",
			"head",
		}},
	}
}

// Categorize determines the category of an error
func (ec *ErrorCategorizerImpl) Categorize(err error) *domain.CategorizedError {
	if err == nil {
		return nil
	}

	for _, cc := range codeCategories {
		if domain.HasCode(err, cc.code) {
			return ec.categorized(cc.category, err)
		}
	}

	errMsg := strings.ToLower(err.Error())
	for _, cp := range ec.patterns {
		if containsAnyPattern(errMsg, cp.patterns) {
			return ec.categorized(cp.category, err)
		}
	}

	return &domain.CategorizedError{
		Category: domain.ErrorCategoryUnknown,
		Message:  err.Error(),
		Original: err,
	}
}

func (ec *ErrorCategorizerImpl) categorized(category domain.ErrorCategory, err error) *domain.CategorizedError {
	return &domain.CategorizedError{
		Category: category,
		Message:  ec.getCategoryMessage(category),
		Original: err,
	}
}

// GetRecoverySuggestions returns recovery suggestions for an error category
func (ec *ErrorCategorizerImpl) GetRecoverySuggestions(category domain.ErrorCategory) []string {
	suggestions := map[domain.ErrorCategory][]string{
		domain.ErrorCategoryInput: {
			"Check that both CoNLL-U files exist and are readable",
			"Quote glob patterns so that the shell does not expand them",
			"Use --ids or --index, not both, and never together with --batch",
		},
		domain.ErrorCategoryNotFound: {
			"Check the sent_id comments of both files",
			"Sentence indices are zero-based",
		},
		domain.ErrorCategoryConfig: {
			"Verify configuration file format and values",
			"Try: udted init to generate a valid config file",
			"Check UDTED_* environment variables",
		},
		domain.ErrorCategoryTimeout: {
			"Raise --max-expanded or --timeout, or set them to 0 for no limit",
			"Use --algorithm dp when no alignment is needed",
			"Compare smaller sentences, see --warn-nodes",
		},
		domain.ErrorCategoryOutput: {
			"Check write permissions and output format validity",
			"Ensure output directory exists and is writable",
		},
		domain.ErrorCategoryProcessing: {
			"Check that every token row has 10 tab separated fields",
			"Check that HEAD values reference tokens of the same sentence",
		},
		domain.ErrorCategoryUnknown: {
			"Run with --verbose for detailed information",
			"Report the issue if it persists",
		},
	}

	if sug, ok := suggestions[category]; ok {
		return sug
	}
	return []string{"Check the error message for more details"}
}

// getCategoryMessage returns a user-friendly message for an error category
func (ec *ErrorCategorizerImpl) getCategoryMessage(category domain.ErrorCategory) string {
	messages := map[domain.ErrorCategory]string{
		domain.ErrorCategoryInput:      "Failed to read input files",
		domain.ErrorCategoryNotFound:   "Requested sentence not found",
		domain.ErrorCategoryConfig:     "Configuration file or settings error",
		domain.ErrorCategoryTimeout:    "Search budget exhausted",
		domain.ErrorCategoryOutput:     "Failed to generate or write output",
		domain.ErrorCategoryProcessing: "Malformed CoNLL-U input",
		domain.ErrorCategoryUnknown:    "An unexpected error occurred",
	}

	if msg, ok := messages[category]; ok {
		return msg
	}
	return "An error occurred"
}

// containsAnyPattern checks if a string contains any of the given patterns
func containsAnyPattern(str string, patterns []string) bool {
	for _, pattern := range patterns {
		if strings.Contains(str, pattern) {
			return true
		}
	}
	return false
}
