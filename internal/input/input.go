// Package input supplies user input lines to the orchestrator.
package input

import (
	"bufio"
	"context"
	"fmt"
	"io"
)

// Source yields input lines; NextLine returns io.EOF when exhausted.
type Source interface {
	NextLine(ctx context.Context) (string, error)
}

// Reader reads lines from an io.Reader (normally stdin). Reading happens on
// a goroutine feeding a channel so NextLine can honour context cancellation
// mid-read.
type Reader struct {
	lines  <-chan string
	prompt string
	out    io.Writer

	// scanErr holds a read failure; written before the channel closes, so
	// NextLine observes it once the channel is drained.
	scanErr error
}

// NewReader starts scanning r. When prompt is non-empty it is written to out
// before each read.
func NewReader(r io.Reader, out io.Writer, prompt string) *Reader {
	ch := make(chan string)
	rd := &Reader{lines: ch, prompt: prompt, out: out}
	go func() {
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			ch <- scanner.Text()
		}
		rd.scanErr = scanner.Err()
		close(ch)
	}()
	return rd
}

func (s *Reader) NextLine(ctx context.Context) (string, error) {
	if s.prompt != "" && s.out != nil {
		fmt.Fprint(s.out, s.prompt)
	}
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-s.lines:
		if !ok {
			if s.scanErr != nil {
				return "", fmt.Errorf("read input: %w", s.scanErr)
			}
			return "", io.EOF
		}
		return line, nil
	}
}

// Preface yields one fixed first line (e.g. a prompt loaded from a file),
// then delegates to next.
type Preface struct {
	first string
	used  bool
	next  Source
}

// WithPreface wraps next so the first NextLine returns first.
func WithPreface(first string, next Source) *Preface {
	return &Preface{first: first, next: next}
}

func (p *Preface) NextLine(ctx context.Context) (string, error) {
	if !p.used {
		p.used = true
		return p.first, nil
	}
	return p.next.NextLine(ctx)
}
