package mcp

import (
	"github.com/breaklikeafish/UD-TED/domain"
)

// NewTestDependencies builds dependencies with an injected reader and a
// fixed configuration discovery directory.
func NewTestDependencies(reader domain.SentenceReader, configPath, startDir string) *Dependencies {
	return &Dependencies{
		reader:     reader,
		configPath: configPath,
		startDir:   startDir,
	}
}
