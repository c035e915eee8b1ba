package compare

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/prometheus/client_golang/prometheus"
	"gopkg.in/yaml.v3"

	"github.com/cavemanloverboy/versioned-tx-simd/metrics"
)

// Report formats.
const (
	FormatTable      = "table"
	FormatJSON       = "json"
	FormatYAML       = "yaml"
	FormatPrometheus = "prometheus"
)

// Formats lists every format accepted by NewReportWriter.
var Formats = []string{FormatTable, FormatJSON, FormatYAML, FormatPrometheus}

// NewReportWriter returns the writer for format. Color only affects the table.
func NewReportWriter(format string, colored bool) (ReportWriter, error) {
	switch format {
	case "", FormatTable:
		return TableWriter{Color: colored}, nil
	case FormatJSON:
		return JSONWriter{}, nil
	case FormatYAML:
		return YAMLWriter{}, nil
	case FormatPrometheus:
		return PrometheusWriter{}, nil
	}
	return nil, fmt.Errorf("unknown report format %q (want one of %s)", format, strings.Join(Formats, ", "))
}

// TableWriter renders one row per scenario and one column per generation.
// The smallest size of a row is highlighted when Color is set.
type TableWriter struct {
	Color bool
}

const (
	nameWidth = 12
	sizeWidth = 6
)

func (t TableWriter) WriteReport(w io.Writer, r *Report) error {
	bold := color.New(color.Bold)
	best := color.New(color.FgGreen, color.Bold)
	for _, c := range []*color.Color{bold, best} {
		if t.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	var sb strings.Builder
	sb.WriteString(bold.Sprint(fmt.Sprintf("%-*s", nameWidth, "scenario")))
	for _, g := range Generations {
		sb.WriteString(bold.Sprint(fmt.Sprintf("%*s", sizeWidth, g)))
	}
	sb.WriteByte('\n')
	for _, name := range r.ScenarioNames() {
		smallest := -1
		for _, g := range Generations {
			if size, ok := r.Size(g, name); ok && (smallest < 0 || size < smallest) {
				smallest = size
			}
		}
		sb.WriteString(fmt.Sprintf("%-*s", nameWidth, name))
		for _, g := range Generations {
			size, ok := r.Size(g, name)
			switch {
			case !ok:
				sb.WriteString(fmt.Sprintf("%*s", sizeWidth, "-"))
			case size == smallest:
				sb.WriteString(best.Sprint(fmt.Sprintf("%*d", sizeWidth, size)))
			default:
				sb.WriteString(fmt.Sprintf("%*d", sizeWidth, size))
			}
		}
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// JSONWriter writes the report as indented json.
type JSONWriter struct{}

func (JSONWriter) WriteReport(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// YAMLWriter writes the report as a yaml document.
type YAMLWriter struct{}

func (YAMLWriter) WriteReport(w io.Writer, r *Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return err
	}
	return enc.Close()
}

// PrometheusWriter writes the sizes in the prometheus text exposition format.
type PrometheusWriter struct{}

func (PrometheusWriter) WriteReport(w io.Writer, r *Report) error {
	reg := prometheus.NewRegistry()
	sizes := metrics.NewGauge(reg, "encoded_size_bytes", "compare",
		"Encoded size of a sample envelope", []string{"generation", "scenario"})
	for _, c := range r.Cells {
		sizes.WithLabelValues(string(c.Generation), c.Scenario).Set(float64(c.Size))
	}
	return metrics.WriteText(w, reg)
}
