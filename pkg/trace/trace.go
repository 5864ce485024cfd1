// Package trace records everything a session shows to a msgpack stream so a
// run can be inspected or replayed later.
package trace

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/opd-ai/go-spacerun/pkg/engine"
)

// Kind tags a record
type Kind string

// Record kinds
const (
	KindFrame    Kind = "frame"
	KindHUD      Kind = "hud"
	KindGameOver Kind = "game_over"
)

// ErrClosed is returned by a recorder after Close
var ErrClosed = errors.New("trace recorder closed")

// Record is one entry of a trace. Exactly one payload is set, matching Kind.
type Record struct {
	Kind    Kind            `msgpack:"kind"`
	Frame   *engine.Frame   `msgpack:"frame,omitempty"`
	HUD     *engine.HUD     `msgpack:"hud,omitempty"`
	Summary *engine.Summary `msgpack:"summary,omitempty"`
}

// Recorder is an engine.Sink writing every call as a Record
type Recorder struct {
	mu      sync.Mutex
	buf     *bufio.Writer
	enc     *msgpack.Encoder
	closer  io.Closer
	records int
	closed  bool
}

// NewRecorder writes records to w
func NewRecorder(w io.Writer) *Recorder {
	buf := bufio.NewWriter(w)
	r := &Recorder{buf: buf, enc: msgpack.NewEncoder(buf)}
	if c, ok := w.(io.Closer); ok {
		r.closer = c
	}
	return r
}

// Create records to a new file at path
func Create(path string) (*Recorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create trace: %w", err)
	}
	return NewRecorder(f), nil
}

// Frame implements engine.Sink
func (r *Recorder) Frame(frame engine.Frame) error {
	return r.write(Record{Kind: KindFrame, Frame: &frame})
}

// HUD implements engine.Sink
func (r *Recorder) HUD(hud engine.HUD) error {
	return r.write(Record{Kind: KindHUD, HUD: &hud})
}

// GameOver implements engine.Sink. The summary is flushed straight away so
// a finished session is on disk even if the process dies afterwards.
func (r *Recorder) GameOver(summary engine.Summary) error {
	if err := r.write(Record{Kind: KindGameOver, Summary: &summary}); err != nil {
		return err
	}
	return r.Flush()
}

// Records returns how many records were written
func (r *Recorder) Records() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.records
}

// Flush writes buffered records to the underlying writer
func (r *Recorder) Flush() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrClosed
	}
	if err := r.buf.Flush(); err != nil {
		return fmt.Errorf("flush trace: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying writer if it is a Closer
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true

	err := r.buf.Flush()
	if r.closer != nil {
		err = errors.Join(err, r.closer.Close())
	}
	if err != nil {
		return fmt.Errorf("close trace: %w", err)
	}
	return nil
}

func (r *Recorder) write(rec Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrClosed
	}
	if err := r.enc.Encode(&rec); err != nil {
		return fmt.Errorf("encode %s record: %w", rec.Kind, err)
	}
	r.records++
	return nil
}

// Reader decodes records written by a Recorder
type Reader struct {
	dec *msgpack.Decoder
}

// NewReader reads records from r
func NewReader(r io.Reader) *Reader {
	return &Reader{dec: msgpack.NewDecoder(bufio.NewReader(r))}
}

// Next returns the next record, or io.EOF after the last one
func (r *Reader) Next() (Record, error) {
	var rec Record
	if err := r.dec.Decode(&rec); err != nil {
		if errors.Is(err, io.EOF) {
			return Record{}, io.EOF
		}
		return Record{}, fmt.Errorf("decode record: %w", err)
	}
	return rec, nil
}

// ReadAll decodes every record in r
func ReadAll(r io.Reader) ([]Record, error) {
	reader := NewReader(r)
	var records []Record
	for {
		rec, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return records, err
		}
		records = append(records, rec)
	}
}

// Summaries returns the game over records of a trace in order
func Summaries(records []Record) []engine.Summary {
	var out []engine.Summary
	for _, rec := range records {
		if rec.Kind == KindGameOver && rec.Summary != nil {
			out = append(out, *rec.Summary)
		}
	}
	return out
}
