package export

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/fivetwenty-io/opencrm-client/internal/constants"
	"github.com/fivetwenty-io/opencrm-client/pkg/opencrm"
)

// Publisher is the part of *nats.Conn the NATS writer uses.
type Publisher interface {
	Publish(subject string, data []byte) error
	FlushTimeout(timeout time.Duration) error
	Close()
}

// NATSWriter publishes each record as one JSON message.
type NATSWriter struct {
	publisher Publisher
	subject   string
	count     int
}

// NATSSubject returns the default subject for module, opencrm.<slug>.records.
func NATSSubject(module opencrm.Module) string {
	return strings.Join([]string{constants.NATSSubjectPrefix, module.Slug, "records"}, ".")
}

// DialNATS connects to url and returns a writer publishing to subject, or
// to NATSSubject(module) when subject is empty.
func DialNATS(ctx context.Context, url, subject string, module opencrm.Module) (*NATSWriter, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if url == "" {
		url = nats.DefaultURL
	}

	timeout := constants.ShortTimeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = min(timeout, time.Until(deadline))
	}

	conn, err := nats.Connect(url,
		nats.Name(constants.NATSClientName),
		nats.Timeout(timeout),
		nats.NoReconnect(),
	)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", url, err)
	}

	if subject == "" {
		subject = NATSSubject(module)
	}

	return NewNATSWriter(conn, subject), nil
}

// NewNATSWriter publishes to subject through publisher. Close closes the
// publisher.
func NewNATSWriter(publisher Publisher, subject string) *NATSWriter {
	return &NATSWriter{publisher: publisher, subject: subject}
}

// Subject returns the subject records are published to.
func (w *NATSWriter) Subject() string { return w.subject }

// Write publishes one record.
func (w *NATSWriter) Write(ctx context.Context, record opencrm.Record) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encoding record %d: %w", record.CRMID(), err)
	}

	err = w.publisher.Publish(w.subject, data)
	if err != nil {
		return fmt.Errorf("publishing record %d: %w", record.CRMID(), err)
	}

	w.count++

	return nil
}

// Count returns the number of records published.
func (w *NATSWriter) Count() int { return w.count }

// Close flushes pending messages and closes the connection.
func (w *NATSWriter) Close() error {
	defer w.publisher.Close()

	err := w.publisher.FlushTimeout(constants.ShortTimeout)
	if err != nil {
		return fmt.Errorf("flushing %s: %w", w.subject, err)
	}

	return nil
}
