package service

import (
	"fmt"

	"github.com/breaklikeafish/UD-TED/domain"
)

// OutputFormatResolver resolves output format and file extension from flags.
type OutputFormatResolver struct{}

func NewOutputFormatResolver() *OutputFormatResolver { return &OutputFormatResolver{} }

// Determine evaluates format flags and returns the selected format and extension.
// At most one of json/yaml/csv may be true; if none are, fallback is used
// (an empty fallback means text).
func (r *OutputFormatResolver) Determine(json, yaml, csv bool, fallback string) (domain.OutputFormat, string, error) {
	formatCount := 0
	var format domain.OutputFormat
	var ext string

	if json {
		formatCount++
		format = domain.OutputFormatJSON
		ext = "json"
	}
	if yaml {
		formatCount++
		format = domain.OutputFormatYAML
		ext = "yaml"
	}
	if csv {
		formatCount++
		format = domain.OutputFormatCSV
		ext = "csv"
	}

	if formatCount > 1 {
		return "", "", fmt.Errorf("only one output format flag can be specified")
	}
	if formatCount == 1 {
		return format, ext, nil
	}

	format, err := domain.ParseOutputFormat(fallback)
	if err != nil {
		return "", "", err
	}
	if format == domain.OutputFormatText {
		return format, "", nil
	}
	return format, string(format), nil
}
