// Package stream turns a generated chat reply into the ordered event
// sequence of the streaming wire protocol.
package stream

import (
	"encoding/json"
	"fmt"
)

// EventType names an event on the wire.
type EventType string

const (
	TypeToken  EventType = "token"
	TypeUpdate EventType = "cv_update"
	TypeDone   EventType = "done"
	TypeError  EventType = "error"
)

// Event is one wire event. Only the field belonging to Type is encoded.
type Event struct {
	Type     EventType
	Content  string
	Updates  *Updates
	Response string
	Message  string
}

func Token(content string) Event   { return Event{Type: TypeToken, Content: content} }
func Update(u *Updates) Event      { return Event{Type: TypeUpdate, Updates: u} }
func Done(response string) Event   { return Event{Type: TypeDone, Response: response} }
func Failure(message string) Event { return Event{Type: TypeError, Message: message} }

// Terminal reports whether e ends a sequence.
func (e Event) Terminal() bool {
	return e.Type == TypeDone || e.Type == TypeError
}

type tokenWire struct {
	Type    EventType `json:"type"`
	Content string    `json:"content"`
}

type updateWire struct {
	Type    EventType `json:"type"`
	Updates *Updates  `json:"updates"`
}

type doneWire struct {
	Type     EventType `json:"type"`
	Response string    `json:"response"`
}

type errorWire struct {
	Type    EventType `json:"type"`
	Message string    `json:"message"`
}

func (e Event) MarshalJSON() ([]byte, error) {
	switch e.Type {
	case TypeToken:
		return json.Marshal(tokenWire{e.Type, e.Content})
	case TypeUpdate:
		return json.Marshal(updateWire{e.Type, e.Updates})
	case TypeDone:
		return json.Marshal(doneWire{e.Type, e.Response})
	case TypeError:
		return json.Marshal(errorWire{e.Type, e.Message})
	default:
		return nil, fmt.Errorf("unknown event type %q", e.Type)
	}
}

func (e *Event) UnmarshalJSON(data []byte) error {
	var w struct {
		Type     EventType `json:"type"`
		Content  string    `json:"content"`
		Updates  *Updates  `json:"updates"`
		Response string    `json:"response"`
		Message  string    `json:"message"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.Type == "" {
		return fmt.Errorf("event has no type")
	}
	*e = Event{Type: w.Type, Content: w.Content, Updates: w.Updates, Response: w.Response, Message: w.Message}
	return nil
}
