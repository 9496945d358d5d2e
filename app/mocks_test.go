package app

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/breaklikeafish/UD-TED/domain"
	"github.com/breaklikeafish/UD-TED/internal/conllu"
)

type mockDistanceService struct {
	mock.Mock
}

func (m *mockDistanceService) ComparePair(ctx context.Context, req domain.CompareRequest) (*domain.CompareResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CompareResponse), args.Error(1)
}

type mockBatchService struct {
	mock.Mock
}

func (m *mockBatchService) Evaluate(ctx context.Context, left, right []*conllu.Sentence, req domain.BatchRequest) (*domain.BatchResponse, error) {
	args := m.Called(ctx, left, right, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BatchResponse), args.Error(1)
}

type mockSentenceReader struct {
	mock.Mock
}

func (m *mockSentenceReader) ReadSentences(source domain.SentenceSource) ([]*conllu.Sentence, error) {
	args := m.Called(source)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*conllu.Sentence), args.Error(1)
}

type mockFormatter struct {
	mock.Mock
}

func (m *mockFormatter) WriteCompare(response *domain.CompareResponse, format domain.OutputFormat, writer io.Writer) error {
	args := m.Called(response, format, writer)
	return args.Error(0)
}

func (m *mockFormatter) WriteBatch(response *domain.BatchResponse, format domain.OutputFormat, writer io.Writer) error {
	args := m.Called(response, format, writer)
	return args.Error(0)
}

type mockConfigLoader struct {
	mock.Mock
}

func (m *mockConfigLoader) LoadSettings(configPath string) (*domain.Settings, error) {
	args := m.Called(configPath)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Settings), args.Error(1)
}

type mockMetrics struct {
	mock.Mock
}

func (m *mockMetrics) WriteTextfile(path string) error {
	return m.Called(path).Error(0)
}

// passthroughWriter hands the caller's writer straight to writeFunc
type passthroughWriter struct {
	paths []string
}

func (p *passthroughWriter) Write(writer io.Writer, outputPath string, format domain.OutputFormat, writeFunc func(io.Writer) error) error {
	p.paths = append(p.paths, outputPath)
	return writeFunc(writer)
}
