package stream

import (
	"context"
	"strings"
	"time"
)

// Segment splits text on single spaces into token contents. Every segment
// but the last keeps its trailing space, so the segments concatenate back
// to text exactly.
func Segment(text string) []string {
	if text == "" {
		return nil
	}
	words := strings.Split(text, " ")
	out := make([]string, 0, len(words))
	for i, w := range words {
		if i < len(words)-1 {
			out = append(out, w+" ")
		} else if w != "" {
			out = append(out, w)
		}
	}
	return out
}

// Pacer spaces out token events.
type Pacer interface {
	Wait(ctx context.Context) error
}

// FixedDelay waits a constant duration between tokens.
type FixedDelay time.Duration

func (d FixedDelay) Wait(ctx context.Context) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(time.Duration(d))
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// NoDelay emits tokens as fast as the sink accepts them.
var NoDelay Pacer = FixedDelay(0)
