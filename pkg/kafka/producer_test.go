package kafka

import (
	"context"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestPublishEncodesJSON(t *testing.T) {
	w := &fakeWriter{}
	p := newProducer(w, "gzip")

	err := p.Publish(context.Background(), "reports", []byte("k"), map[string]int{"n": 1})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(w.msgs) != 1 {
		t.Fatalf("got %d messages", len(w.msgs))
	}
	m := w.msgs[0]
	if m.Topic != "reports" || string(m.Key) != "k" || string(m.Value) != `{"n":1}` {
		t.Fatalf("message %+v", m)
	}
}

func TestPublishPassesRawBytes(t *testing.T) {
	w := &fakeWriter{}
	p := newProducer(w, "gzip")
	_ = p.Publish(context.Background(), "t", nil, []byte("raw"))
	if string(w.msgs[0].Value) != "raw" {
		t.Fatalf("value %q", w.msgs[0].Value)
	}
}

func TestPublishError(t *testing.T) {
	boom := errors.New("boom")
	p := newProducer(&fakeWriter{err: boom}, "gzip")
	if err := p.Publish(context.Background(), "t", nil, "x"); !errors.Is(err, boom) {
		t.Fatalf("got %v", err)
	}
}

func TestNewProducerRequiresBrokers(t *testing.T) {
	if _, err := NewProducer(); err == nil {
		t.Fatalf("expected error")
	}
}

func TestParseCompression(t *testing.T) {
	if parseCompression("zstd") != kafka.Zstd || parseCompression("bogus") != kafka.Gzip {
		t.Fatalf("unexpected compression mapping")
	}
}
