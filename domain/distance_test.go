package domain

import (
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSentenceSource(t *testing.T) {
	assert.Equal(t, "gold.conllu", SentenceSource{Path: "gold.conllu"}.String())
	assert.Equal(t, "<inline>", SentenceSource{Content: "1\tx"}.String())
	assert.True(t, SentenceSource{Path: "a", Content: "b"}.IsInline())
}

func TestSentenceSelector(t *testing.T) {
	assert.Equal(t, `sent_id "s1"`, SentenceSelector{ID: "s1", Index: 4}.String())
	assert.Equal(t, "index 4", SentenceSelector{Index: 4}.String())
}

func TestEngineSettingsValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*EngineSettings)
		wantErr bool
	}{
		{"defaults", func(*EngineSettings) {}, false},
		{"empty algorithm", func(s *EngineSettings) { s.Algorithm = "" }, false},
		{"dp", func(s *EngineSettings) { s.Algorithm = "dp" }, false},
		{"unknown algorithm", func(s *EngineSettings) { s.Algorithm = "greedy" }, true},
		{"negative budget", func(s *EngineSettings) { s.MaxExpanded = -1 }, true},
		{"negative timeout", func(s *EngineSettings) { s.Timeout = -time.Second }, true},
		{"negative warn nodes", func(s *EngineSettings) { s.WarnNodes = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultEngineSettings()
			tt.modify(&s)
			err := s.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCompareRequestValidate(t *testing.T) {
	valid := func() CompareRequest {
		return CompareRequest{
			Source:       SentenceSource{Path: "a.conllu"},
			Target:       SentenceSource{Content: "1\tx"},
			Engine:       DefaultEngineSettings(),
			OutputWriter: io.Discard,
		}
	}

	req := valid()
	assert.NoError(t, req.Validate())

	req = valid()
	req.Source = SentenceSource{}
	assert.Error(t, req.Validate())

	req = valid()
	req.TargetSentence.Index = -1
	assert.Error(t, req.Validate())

	req = valid()
	req.TargetSentence = SentenceSelector{ID: "s1", Index: -1}
	assert.NoError(t, req.Validate(), "an id makes the index irrelevant")

	req = valid()
	req.OutputFormat = "html"
	assert.True(t, HasCode(req.Validate(), ErrCodeUnsupportedFormat))
}

func TestBatchRequestValidate(t *testing.T) {
	req := BatchRequest{
		Source: SentenceSource{Path: "a"},
		Target: SentenceSource{Path: "b"},
		Engine: DefaultEngineSettings(),
	}
	assert.NoError(t, req.Validate())

	req.Workers = -2
	assert.Error(t, req.Validate())

	req.Workers = 0
	req.Target = SentenceSource{}
	assert.Error(t, req.Validate())
}

func TestParseOutputFormat(t *testing.T) {
	for _, name := range []string{"", "text", "json", "yaml", "csv"} {
		_, err := ParseOutputFormat(name)
		assert.NoError(t, err, name)
	}
	_, err := ParseOutputFormat("xml")
	assert.True(t, HasCode(err, ErrCodeUnsupportedFormat))
}

func TestHasCode(t *testing.T) {
	cause := errors.New("boom")
	inner := NewFileAccessError("gold.conllu", cause)
	outer := NewInvalidInputError("invalid request", inner)
	wrapped := fmt.Errorf("comparison failed: %w", outer)

	assert.True(t, HasCode(wrapped, ErrCodeInvalidInput))
	assert.True(t, HasCode(wrapped, ErrCodeFileAccess))
	assert.False(t, HasCode(wrapped, ErrCodeNotFound))
	assert.False(t, HasCode(cause, ErrCodeFileAccess))
	assert.ErrorIs(t, wrapped, cause)
}
