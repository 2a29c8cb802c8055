package stream

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvent_MarshalJSON(t *testing.T) {
	tests := []struct {
		event Event
		want  string
	}{
		{Token("Hello "), `{"type":"token","content":"Hello "}`},
		{Done(""), `{"type":"done","response":""}`},
		{Done("Hi there"), `{"type":"done","response":"Hi there"}`},
		{Failure("boom"), `{"type":"error","message":"boom"}`},
		{Update(&Updates{Summary: "New"}), `{"type":"cv_update","updates":{"summary":"New"}}`},
	}
	for _, tt := range tests {
		b, err := json.Marshal(tt.event)
		require.NoError(t, err)
		assert.JSONEq(t, tt.want, string(b))
	}

	_, err := json.Marshal(Event{Type: "mystery"})
	assert.Error(t, err)
}

func TestSSEWriter_Framing(t *testing.T) {
	rec := httptest.NewRecorder()
	w, err := NewSSEWriter(rec)
	require.NoError(t, err)

	require.NoError(t, w.Send(Token("a ")))
	require.NoError(t, w.Send(Done("a ")))

	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))
	assert.Equal(t,
		"data: {\"type\":\"token\",\"content\":\"a \"}\n\n"+
			"data: {\"type\":\"done\",\"response\":\"a \"}\n\n",
		rec.Body.String())
	assert.True(t, rec.Flushed)
}

func TestReadEvents_RoundTrip(t *testing.T) {
	var sb strings.Builder
	for _, e := range []Event{Update(&Updates{Skills: []string{"Go"}}), Token("x"), Done("x")} {
		require.NoError(t, WriteFrame(&sb, e))
	}
	sb.WriteString("data: {\"type\":\"token\",\"content\":\"after done\"}\n\n")

	var got []Event
	err := ReadEvents(strings.NewReader(sb.String()), func(e Event) error {
		got = append(got, e)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, TypeUpdate, got[0].Type)
	assert.Equal(t, []string{"Go"}, got[0].Updates.Skills)
	assert.Equal(t, "x", got[2].Response)
}

func TestReadEvents_Truncated(t *testing.T) {
	err := ReadEvents(strings.NewReader("data: {\"type\":\"token\",\"content\":\"x\"}\n\n"), func(Event) error { return nil })
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestReadEvents_CallbackError(t *testing.T) {
	stop := errors.New("stop")
	err := ReadEvents(strings.NewReader("data: {\"type\":\"token\",\"content\":\"x\"}\n\n"), func(Event) error { return stop })
	assert.ErrorIs(t, err, stop)
}
