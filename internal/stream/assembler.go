package stream

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/LadFoxTom/hirekit-app-sub001/internal/engine"
)

// Generator produces a reply as a sequence of text fragments.
type Generator interface {
	Stream(ctx context.Context, model string, messages []engine.Message, onFragment func(string) error) error
}

// Status is how a run ended.
type Status string

const (
	StatusDone    Status = "done"
	StatusError   Status = "error"
	StatusAborted Status = "aborted"
)

// Outcome summarizes a run for logging and recording.
type Outcome struct {
	Status   Status
	Response string
	Updates  *Updates
	Tokens   int
	Err      error
}

// Assembler runs one generation call and re-emits the reply as events.
type Assembler struct {
	gen   Generator
	model string
	pacer Pacer
}

// NewAssembler creates an Assembler. A nil pacer emits without delay.
func NewAssembler(gen Generator, model string, pacer Pacer) *Assembler {
	if pacer == nil {
		pacer = NoDelay
	}
	return &Assembler{gen: gen, model: model, pacer: pacer}
}

// Run generates a reply for messages and sends it to sink: an optional
// cv_update event, one token event per word, then done. A generation
// failure sends a single error event instead. A failed send or a canceled
// context ends the run without further writes.
func (a *Assembler) Run(ctx context.Context, messages []engine.Message, sink Sink) Outcome {
	raw, err := a.generate(ctx, messages)
	if err != nil {
		if ctx.Err() != nil {
			return Outcome{Status: StatusAborted, Err: ctx.Err()}
		}
		slog.Warn("chat generation failed", "error", err)
		if sendErr := sink.Send(Failure(failureMessage(err))); sendErr != nil {
			return Outcome{Status: StatusAborted, Err: sendErr}
		}
		return Outcome{Status: StatusError, Err: err}
	}

	text, updates := ParseReply(raw)
	out := Outcome{Status: StatusAborted, Response: text, Updates: updates}

	if updates != nil {
		if out.Err = sink.Send(Update(updates)); out.Err != nil {
			return out
		}
	}

	for i, seg := range Segment(text) {
		if i > 0 {
			if out.Err = a.pacer.Wait(ctx); out.Err != nil {
				return out
			}
		}
		if out.Err = sink.Send(Token(seg)); out.Err != nil {
			return out
		}
		out.Tokens++
	}

	if out.Err = sink.Send(Done(text)); out.Err != nil {
		return out
	}
	out.Status = StatusDone
	return out
}

func (a *Assembler) generate(ctx context.Context, messages []engine.Message) (string, error) {
	if a.gen == nil {
		return "", errors.New("no text generation backend configured")
	}
	var sb strings.Builder
	err := a.gen.Stream(ctx, a.model, messages, func(fragment string) error {
		sb.WriteString(fragment)
		return nil
	})
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", errors.New("text generation returned an empty reply")
	}
	return sb.String(), nil
}

func failureMessage(err error) string {
	if errors.Is(err, engine.ErrMissingCredentials) {
		return "The assistant is not configured: the text generation API key is missing."
	}
	return fmt.Sprintf("The assistant could not generate a reply: %v", err)
}
