package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/breaklikeafish/UD-TED/domain"
)

// DistanceFormatterImpl implements the DistanceOutputFormatter interface
type DistanceFormatterImpl struct {
	utils *FormatUtils
}

// NewDistanceFormatter creates a new distance output formatter
func NewDistanceFormatter() *DistanceFormatterImpl {
	return &DistanceFormatterImpl{utils: NewFormatUtils()}
}

// WriteCompare writes a single comparison in the requested format
func (f *DistanceFormatterImpl) WriteCompare(response *domain.CompareResponse, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatText, "":
		return writeString(writer, f.formatCompareText(response))
	case domain.OutputFormatJSON:
		return WriteJSON(writer, response)
	case domain.OutputFormatYAML:
		return WriteYAML(writer, response)
	case domain.OutputFormatCSV:
		return f.writeCompareCSV(response, writer)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

// WriteBatch writes a corpus comparison in the requested format
func (f *DistanceFormatterImpl) WriteBatch(response *domain.BatchResponse, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatText, "":
		return writeString(writer, f.formatBatchText(response))
	case domain.OutputFormatJSON:
		return WriteJSON(writer, response)
	case domain.OutputFormatYAML:
		return WriteYAML(writer, response)
	case domain.OutputFormatCSV:
		return f.writeBatchCSV(response, writer)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

func (f *DistanceFormatterImpl) formatCompareText(response *domain.CompareResponse) string {
	var builder strings.Builder

	if response.Warning != "" {
		fmt.Fprintf(&builder, "Warning: %s\n", response.Warning)
	}
	fmt.Fprintf(&builder, "Tree edit distance: %s\n", f.utils.FormatDistance(response.Distance))

	if len(response.Alignment) == 0 {
		return builder.String()
	}

	builder.WriteString("\n")
	builder.WriteString(f.utils.FormatSectionHeader("Alignment"))
	for _, step := range response.Alignment {
		fmt.Fprintf(&builder, "%s%-10s %s -> %s  (%s)\n",
			strings.Repeat(" ", ItemPadding),
			step.Op,
			alignmentSide(step.SourceIndex, step.SourceLabel),
			alignmentSide(step.TargetIndex, step.TargetLabel),
			f.utils.FormatDistance(step.Cost))
	}
	return builder.String()
}

func alignmentSide(index int, label string) string {
	if index < 0 {
		return "ε"
	}
	return fmt.Sprintf("%d:%s", index, label)
}

func (f *DistanceFormatterImpl) formatBatchText(response *domain.BatchResponse) string {
	var builder strings.Builder
	utils := f.utils

	builder.WriteString(utils.FormatMainHeader("Corpus Tree Edit Distance"))

	builder.WriteString(utils.FormatSectionHeader("Pairs"))
	for _, pair := range response.Pairs {
		name := pair.ID
		if name == "" {
			name = "-"
		}
		if pair.Failed() {
			fmt.Fprintf(&builder, "%s[%d] %s  failed: %s\n", strings.Repeat(" ", ItemPadding), pair.Index, name, pair.Error)
			continue
		}
		fmt.Fprintf(&builder, "%s[%d] %s  distance=%s  nodes=%d  elapsed=%s\n",
			strings.Repeat(" ", ItemPadding), pair.Index, name,
			utils.FormatDistance(pair.Distance), pair.MaxNodes, utils.FormatDuration(pair.Elapsed))
		if pair.Warning != "" {
			fmt.Fprintf(&builder, "%swarning: %s\n", strings.Repeat(" ", 2*ItemPadding), pair.Warning)
		}
	}
	builder.WriteString("\n")

	summary := response.Summary
	builder.WriteString(utils.FormatSectionHeader("Summary"))
	builder.WriteString(utils.FormatLabel("Cost model", response.CostModel))
	builder.WriteString(utils.FormatLabel("Compared", summary.Compared))
	builder.WriteString(utils.FormatLabel("Failed", summary.Failed))
	if summary.Unpaired > 0 {
		builder.WriteString(utils.FormatLabel("Unpaired", summary.Unpaired))
	}
	builder.WriteString(utils.FormatLabel("Mean distance", formatMean(summary.Mean)))
	builder.WriteString(utils.FormatLabel("Total time", utils.FormatDuration(summary.TotalElapsed)))

	return builder.String()
}

func formatMean(mean *float64) string {
	if mean == nil {
		return "n/a"
	}
	return strconv.FormatFloat(*mean, 'f', 4, 64)
}

func (f *DistanceFormatterImpl) writeCompareCSV(response *domain.CompareResponse, writer io.Writer) error {
	w := csv.NewWriter(writer)

	header := []string{"source_id", "source_index", "target_id", "target_index", "cost_model", "algorithm", "distance", "expanded", "elapsed_ns"}
	if err := w.Write(header); err != nil {
		return domain.NewOutputError("failed to write CSV header", err)
	}

	row := []string{
		response.Source.ID,
		strconv.Itoa(response.Source.Index),
		response.Target.ID,
		strconv.Itoa(response.Target.Index),
		response.CostModel,
		response.Algorithm,
		f.utils.FormatDistance(response.Distance),
		strconv.Itoa(response.Expanded),
		strconv.FormatInt(response.Elapsed.Nanoseconds(), 10),
	}
	if err := w.Write(row); err != nil {
		return domain.NewOutputError("failed to write CSV row", err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return domain.NewOutputError("CSV writer error", err)
	}
	return nil
}

func (f *DistanceFormatterImpl) writeBatchCSV(response *domain.BatchResponse, writer io.Writer) error {
	w := csv.NewWriter(writer)

	header := []string{"index", "id", "distance", "max_nodes", "expanded", "elapsed_ns", "warning", "error"}
	if err := w.Write(header); err != nil {
		return domain.NewOutputError("failed to write CSV header", err)
	}

	for _, pair := range response.Pairs {
		distance := ""
		if !pair.Failed() {
			distance = f.utils.FormatDistance(pair.Distance)
		}
		row := []string{
			strconv.Itoa(pair.Index),
			pair.ID,
			distance,
			strconv.Itoa(pair.MaxNodes),
			strconv.Itoa(pair.Expanded),
			strconv.FormatInt(pair.Elapsed.Nanoseconds(), 10),
			pair.Warning,
			pair.Error,
		}
		if err := w.Write(row); err != nil {
			return domain.NewOutputError("failed to write CSV row", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return domain.NewOutputError("CSV writer error", err)
	}
	return nil
}

func writeString(writer io.Writer, s string) error {
	if _, err := io.WriteString(writer, s); err != nil {
		return domain.NewOutputError("failed to write output", err)
	}
	return nil
}
