package integration

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/breaklikeafish/UD-TED/app"
	"github.com/breaklikeafish/UD-TED/domain"
	"github.com/breaklikeafish/UD-TED/internal/config"
	"github.com/breaklikeafish/UD-TED/service"
)

const goldCorpus = `# sent_id = s1
# text = The cat sleeps
1	The	the	DET	_	_	2	det	_	_
2	cat	cat	NOUN	_	_	3	nsubj	_	_
3	sleeps	sleep	VERB	_	_	0	root	_	_

# sent_id = s2
# text = Dogs bark
1	Dogs	dog	NOUN	_	_	2	nsubj	_	_
2	bark	bark	VERB	_	_	0	root	_	_

# sent_id = s3
# text = Unpaired
1	Unpaired	unpaired	ADJ	_	_	0	root	_	_

`

const systemCorpus = `# sent_id = s1
# text = The cat sleeps
1	The	the	DET	_	_	2	det	_	_
2	cat	cat	NOUN	_	_	3	obj	_	_
3	sleeps	sleep	VERB	_	_	0	root	_	_

# sent_id = s2
# text = Dogs bark loudly
1	Dogs	dog	NOUN	_	_	2	nsubj	_	_
2	bark	bark	VERB	_	_	0	root	_	_
3	loudly	loudly	ADV	_	_	2	advmod	_	_

`

func writeCorpora(t *testing.T) (string, string, string) {
	t.Helper()
	dir := t.TempDir()
	gold := filepath.Join(dir, "gold.conllu")
	system := filepath.Join(dir, "system.conllu")
	require.NoError(t, os.WriteFile(gold, []byte(goldCorpus), 0o644))
	require.NoError(t, os.WriteFile(system, []byte(systemCorpus), 0o644))
	return dir, gold, system
}

// TestCompareIntegration tests the complete single pair workflow
func TestCompareIntegration(t *testing.T) {
	dir, gold, system := writeCorpora(t)

	explicit := config.ExplicitFlags{config.FlagDeprel: true, config.FlagAlignment: true}
	loader := service.NewConfigurationLoaderWithFlags(config.FlagOverrides{Deprel: true, ShowAlignment: true}, explicit).
		WithStartDir(dir)

	useCase, err := app.NewCompareUseCaseBuilder().
		WithService(service.NewDistanceService(service.NewSentenceReader())).
		WithFormatter(service.NewDistanceFormatter()).
		WithOutputWriter(service.NewFileOutputWriter(&bytes.Buffer{})).
		WithConfigLoader(loader).
		Build()
	require.NoError(t, err, "Should create use case successfully")

	var out bytes.Buffer
	response, err := useCase.Execute(context.Background(), domain.CompareRequest{
		Source:         domain.SentenceSource{Path: gold},
		Target:         domain.SentenceSource{Path: system},
		SourceSentence: domain.SentenceSelector{ID: "s1"},
		TargetSentence: domain.SentenceSelector{ID: "s1"},
		OutputWriter:   &out,
	})
	require.NoError(t, err)

	// nsubj against obj is the only difference
	assert.Equal(t, 1.0, response.Distance)
	assert.Equal(t, "deprel", response.CostModel)
	require.Len(t, response.Alignment, 3)

	substitutions := 0
	for _, step := range response.Alignment {
		if step.Op == domain.AlignmentSubstitute {
			substitutions++
			assert.Equal(t, "cat/nsubj/NOUN", step.SourceLabel)
			assert.Equal(t, "cat/obj/NOUN", step.TargetLabel)
		}
	}
	assert.Equal(t, 1, substitutions)

	text := out.String()
	assert.True(t, strings.HasPrefix(text, "Tree edit distance: 1\n"))
	assert.Contains(t, text, "substitute")
}

// TestBatchIntegration tests the complete corpus workflow with YAML output
func TestBatchIntegration(t *testing.T) {
	dir, gold, system := writeCorpora(t)

	loader := service.NewConfigurationLoaderWithFlags(
		config.FlagOverrides{Format: "yaml", Workers: 2, NoProgress: true},
		config.ExplicitFlags{config.FlagFormat: true, config.FlagWorkers: true, config.FlagNoProgress: true},
	).WithStartDir(dir)

	useCase, err := app.NewBatchUseCaseBuilder().
		WithReader(service.NewSentenceReader()).
		WithService(service.NewBatchEvaluator(service.NewProgressManager())).
		WithFormatter(service.NewDistanceFormatter()).
		WithOutputWriter(service.NewFileOutputWriter(&bytes.Buffer{})).
		WithConfigLoader(loader).
		Build()
	require.NoError(t, err)

	var out bytes.Buffer
	response, err := useCase.Execute(context.Background(), domain.BatchRequest{
		Source:       domain.SentenceSource{Path: gold},
		Target:       domain.SentenceSource{Path: system},
		OutputWriter: &out,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, response.Summary.Compared)
	assert.Equal(t, 1, response.Summary.Unpaired)
	require.NotNil(t, response.Summary.Mean)
	assert.Equal(t, 0.5, *response.Summary.Mean)

	var report struct {
		Pairs []struct {
			ID       string  `yaml:"id"`
			Distance float64 `yaml:"distance"`
		} `yaml:"pairs"`
		Summary struct {
			Compared int     `yaml:"compared"`
			Unpaired int     `yaml:"unpaired"`
			Mean     float64 `yaml:"mean"`
		} `yaml:"summary"`
	}
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &report))
	require.Len(t, report.Pairs, 2)
	assert.Equal(t, "s1", report.Pairs[0].ID)
	assert.Equal(t, 0.0, report.Pairs[0].Distance)
	assert.Equal(t, 1.0, report.Pairs[1].Distance)
	assert.Equal(t, 1, report.Summary.Unpaired)
	assert.Equal(t, 0.5, report.Summary.Mean)
}

// TestConfigFileIntegration tests that a discovered .udted.toml drives the run
func TestConfigFileIntegration(t *testing.T) {
	dir, gold, system := writeCorpora(t)
	configContent := "[compare]\ndeprel = true\n\n[output]\nformat = \"csv\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, domain.ConfigFileName), []byte(configContent), 0o644))

	useCase, err := app.NewCompareUseCaseBuilder().
		WithService(service.NewDistanceService(nil)).
		WithFormatter(service.NewDistanceFormatter()).
		WithOutputWriter(service.NewFileOutputWriter(&bytes.Buffer{})).
		WithConfigLoader(service.NewConfigurationLoader().WithStartDir(dir)).
		Build()
	require.NoError(t, err)

	var out bytes.Buffer
	response, err := useCase.Execute(context.Background(), domain.CompareRequest{
		Source:       domain.SentenceSource{Path: gold},
		Target:       domain.SentenceSource{Path: system},
		OutputWriter: &out,
	})
	require.NoError(t, err)

	assert.Equal(t, 1.0, response.Distance, "relation mismatch counts under the configured deprel model")
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "source_id,"))
	assert.True(t, strings.HasPrefix(lines[1], "s1,0,s1,0,deprel,"))
}
