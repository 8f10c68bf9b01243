package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/maksimkurb/bigip-sd/src/internal/classifier"
	"github.com/maksimkurb/bigip-sd/src/internal/errors"
)

// Format is an output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts json, yaml and yml in any case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", errors.NewValidationError(fmt.Sprintf("unsupported export format %q", s), nil)
	}
}

// Record is one target group of a file_sd document.
type Record struct {
	Targets []string          `json:"targets" yaml:"targets"`
	Labels  map[string]string `json:"labels" yaml:"labels"`
}

// Build returns the matched record followed by the unmatched record.
func Build(targets classifier.Targets, matchedLabels, unmatchedLabels Labels) []Record {
	return []Record{
		newRecord(targets.Matched, matchedLabels),
		newRecord(targets.Unmatched, unmatchedLabels),
	}
}

func newRecord(urls []*url.URL, labels Labels) Record {
	record := Record{
		Targets: make([]string, 0, len(urls)),
		Labels:  labels.Map(),
	}
	for _, u := range urls {
		record.Targets = append(record.Targets, u.String())
	}
	return record
}

// Encode serializes records with two-space indentation and a trailing newline.
func Encode(records []Record, format Format) ([]byte, error) {
	var buf bytes.Buffer

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(records); err != nil {
			return nil, errors.NewExportError("failed to encode JSON", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return nil, errors.NewExportError("failed to encode YAML", err)
		}
		if err := enc.Close(); err != nil {
			return nil, errors.NewExportError("failed to encode YAML", err)
		}
	default:
		return nil, errors.NewExportError(fmt.Sprintf("unsupported export format %q", format), nil)
	}

	return buf.Bytes(), nil
}
