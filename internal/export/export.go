// Package export streams OpenCRM records into JSON Lines, a YAML document,
// a SQLite table or a NATS subject.
package export

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/opencrm-client/internal/constants"
	"github.com/fivetwenty-io/opencrm-client/pkg/opencrm"
)

// Export formats.
const (
	FormatJSONL  = "jsonl"
	FormatYAML   = "yaml"
	FormatSQLite = "sqlite"
	FormatNATS   = "nats"
)

// ErrUnsupportedFormat is returned for an unknown export format.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// ErrMissingCRMID is returned when a record to be stored has no usable id.
var ErrMissingCRMID = errors.New("record has no crmid")

// Writer receives exported records.
type Writer interface {
	Write(ctx context.Context, record opencrm.Record) error
	Count() int
	Close() error
}

// Formats lists the supported export formats.
func Formats() []string {
	return []string{FormatJSONL, FormatYAML, FormatSQLite, FormatNATS}
}

// JSONLWriter writes one JSON object per line.
type JSONLWriter struct {
	encoder *json.Encoder
	count   int
}

// NewJSONLWriter writes to out.
func NewJSONLWriter(out io.Writer) *JSONLWriter {
	return &JSONLWriter{encoder: json.NewEncoder(out)}
}

// Write encodes one record.
func (w *JSONLWriter) Write(ctx context.Context, record opencrm.Record) error {
	err := w.encoder.Encode(record)
	if err != nil {
		return fmt.Errorf("encoding record %d: %w", record.CRMID(), err)
	}

	w.count++

	return nil
}

// Count returns the number of records written.
func (w *JSONLWriter) Count() int { return w.count }

// Close is a no-op; the caller owns out.
func (w *JSONLWriter) Close() error { return nil }

// YAMLWriter buffers records and writes them as one YAML sequence on Close.
type YAMLWriter struct {
	out     io.Writer
	records []opencrm.Record
}

// NewYAMLWriter writes to out.
func NewYAMLWriter(out io.Writer) *YAMLWriter {
	return &YAMLWriter{out: out}
}

// Write buffers one record.
func (w *YAMLWriter) Write(ctx context.Context, record opencrm.Record) error {
	w.records = append(w.records, yamlSafe(record))

	return nil
}

// Count returns the number of records written.
func (w *YAMLWriter) Count() int { return len(w.records) }

// Close encodes the buffered records.
func (w *YAMLWriter) Close() error {
	records := w.records
	if records == nil {
		records = []opencrm.Record{}
	}

	encoder := yaml.NewEncoder(w.out)
	encoder.SetIndent(constants.YAMLIndentSize)

	err := encoder.Encode(records)
	if err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}

	return encoder.Close()
}

// yamlSafe renders json.Number values as plain strings so YAML output does
// not depend on the number type.
func yamlSafe(record opencrm.Record) opencrm.Record {
	out := make(opencrm.Record, len(record))

	for key, value := range record {
		if number, ok := value.(json.Number); ok {
			out[key] = number.String()

			continue
		}

		out[key] = value
	}

	return out
}

// Target says where a writer sends records.
type Target struct {
	// Out receives jsonl and yaml output.
	Out io.Writer
	// Path is the SQLite database file.
	Path string
	// NATSURL is the server to publish to; empty means nats.DefaultURL.
	NATSURL string
	// Subject overrides the NATS subject.
	Subject string
}

// NewWriter returns a writer for format sending to target.
func NewWriter(ctx context.Context, format string, target Target, module opencrm.Module) (Writer, error) {
	switch strings.ToLower(format) {
	case FormatJSONL, "json":
		return NewJSONLWriter(target.Out), nil
	case FormatYAML, "yml":
		return NewYAMLWriter(target.Out), nil
	case FormatSQLite:
		if target.Path == "" {
			return nil, fmt.Errorf("%w: sqlite export needs an output file", ErrUnsupportedFormat)
		}

		return NewSQLiteWriter(ctx, target.Path, module)
	case FormatNATS:
		return DialNATS(ctx, target.NATSURL, target.Subject, module)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// Run walks every record matching params through an iterator and writes
// it. It returns the number of records written. The writer is closed on
// every path, so records written before a failure are kept.
func Run(ctx context.Context, client opencrm.ResourceClient[opencrm.Record], params *opencrm.ListParams, batchSize int, writer Writer) (int, error) {
	iterator := client.Iterate(ctx, params, batchSize)

	err := iterator.ForEach(func(record opencrm.Record) error {
		return writer.Write(ctx, record)
	})
	if err != nil {
		_ = writer.Close()

		return writer.Count(), fmt.Errorf("exporting %s: %w", client.Module().Name, err)
	}

	err = writer.Close()
	if err != nil {
		return writer.Count(), err
	}

	return writer.Count(), nil
}
