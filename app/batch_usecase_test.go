package app

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/breaklikeafish/UD-TED/domain"
	"github.com/breaklikeafish/UD-TED/internal/conllu"
)

func validBatchRequest(out *bytes.Buffer) domain.BatchRequest {
	return domain.BatchRequest{
		Source:       domain.SentenceSource{Path: "left/*.conllu"},
		Target:       domain.SentenceSource{Path: "right/*.conllu"},
		Engine:       domain.DefaultEngineSettings(),
		OutputFormat: domain.OutputFormatText,
		OutputWriter: out,
	}
}

func TestBatchUseCase_Execute(t *testing.T) {
	var out bytes.Buffer
	reader := &mockSentenceReader{}
	service := &mockBatchService{}
	formatter := &mockFormatter{}
	writer := &passthroughWriter{}

	left := []*conllu.Sentence{{ID: "l1"}}
	right := []*conllu.Sentence{{ID: "r1"}, {ID: "r2"}}
	response := &domain.BatchResponse{Summary: domain.BatchSummary{Compared: 1, Unpaired: 1}}

	req := validBatchRequest(&out)
	reader.On("ReadSentences", req.Source).Return(left, nil)
	reader.On("ReadSentences", req.Target).Return(right, nil)
	service.On("Evaluate", mock.Anything, left, right, req).Return(response, nil)
	formatter.On("WriteBatch", response, domain.OutputFormatText, &out).Return(nil)

	uc, err := NewBatchUseCaseBuilder().
		WithReader(reader).
		WithService(service).
		WithFormatter(formatter).
		WithOutputWriter(writer).
		Build()
	require.NoError(t, err)

	got, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Same(t, response, got)
	assert.Equal(t, []string{""}, writer.paths)
	reader.AssertExpectations(t)
	service.AssertExpectations(t)
	formatter.AssertExpectations(t)
}

func TestBatchUseCase_SettingsApplied(t *testing.T) {
	var out bytes.Buffer
	reader := &mockSentenceReader{}
	service := &mockBatchService{}
	formatter := &mockFormatter{}
	loader := &mockConfigLoader{}

	settings := &domain.Settings{
		Engine:       domain.DefaultEngineSettings(),
		Workers:      3,
		ShowProgress: false,
		OutputFormat: domain.OutputFormatCSV,
	}
	settings.Engine.CompareUPOS = true
	loader.On("LoadSettings", "").Return(settings, nil)

	reader.On("ReadSentences", mock.Anything).Return([]*conllu.Sentence{}, nil)
	service.On("Evaluate", mock.Anything, mock.Anything, mock.Anything, mock.MatchedBy(func(r domain.BatchRequest) bool {
		return r.Workers == 3 && r.Engine.CompareUPOS && r.OutputFormat == domain.OutputFormatCSV && !r.ShowProgress
	})).Return(&domain.BatchResponse{}, nil)
	formatter.On("WriteBatch", mock.Anything, domain.OutputFormatCSV, mock.Anything).Return(nil)

	uc, err := NewBatchUseCaseBuilder().
		WithReader(reader).
		WithService(service).
		WithFormatter(formatter).
		WithOutputWriter(&passthroughWriter{}).
		WithConfigLoader(loader).
		Build()
	require.NoError(t, err)

	req := validBatchRequest(&out)
	req.ShowProgress = true
	_, err = uc.Execute(context.Background(), req)
	require.NoError(t, err)
	service.AssertExpectations(t)
}

func TestBatchUseCase_ReaderErrorStops(t *testing.T) {
	var out bytes.Buffer
	reader := &mockSentenceReader{}
	service := &mockBatchService{}

	req := validBatchRequest(&out)
	reader.On("ReadSentences", req.Source).Return(nil, domain.NewFileAccessError("left/*.conllu", nil))

	uc := &BatchUseCase{reader: reader, service: service, formatter: &mockFormatter{}, output: &passthroughWriter{}}
	_, err := uc.Execute(context.Background(), req)
	assert.True(t, domain.HasCode(err, domain.ErrCodeFileAccess))
	service.AssertNotCalled(t, "Evaluate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBatchUseCase_InvalidWorkers(t *testing.T) {
	var out bytes.Buffer
	req := validBatchRequest(&out)
	req.Workers = -1

	uc := &BatchUseCase{reader: &mockSentenceReader{}, service: &mockBatchService{}, formatter: &mockFormatter{}, output: &passthroughWriter{}}
	_, err := uc.Execute(context.Background(), req)
	assert.True(t, domain.HasCode(err, domain.ErrCodeInvalidInput))
}

func TestBatchUseCaseBuilder_RequiresDependencies(t *testing.T) {
	_, err := NewBatchUseCaseBuilder().Build()
	assert.EqualError(t, err, "sentence reader is required")

	_, err = NewBatchUseCaseBuilder().WithReader(&mockSentenceReader{}).WithService(&mockBatchService{}).Build()
	assert.EqualError(t, err, "output formatter is required")
}
