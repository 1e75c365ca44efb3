package protocol

import (
	"encoding/base64"
	"errors"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Message kinds carried on the shared channel.
const (
	// KindSessionBackup is sent by the surface on its own cadence and on
	// significant internal state change. Payload: the current document bytes.
	KindSessionBackup = "session-backup"
	// KindSaveData is sent by the surface when the user explicitly finalizes
	// output. Payload: the final bytes, plus an optional filename.
	KindSaveData = "save-data"
	// KindTriggerSave is posted by the host into the surface to request it
	// run its own save path. No payload.
	KindTriggerSave = "trigger-save"
)

// Source discriminants. Envelopes whose source does not match the expected
// sender for their kind are dropped.
const (
	SourceViewer = "pdf-viewer"
	SourceHost   = "host"
)

// ErrIgnored marks an envelope that did not match a known kind or arrived
// with missing required fields. It is a drop signal, not an error condition:
// the shared channel legitimately carries unrelated traffic.
var ErrIgnored = errors.New("protocol: message ignored")

// Message is a decoded protocol envelope.
type Message struct {
	Kind     string
	Data     []byte
	Filename string
}

// Parse decodes a raw envelope, validating the kind and source discriminants
// before trusting the payload. Anything unknown or malformed yields
// ErrIgnored.
func Parse(raw []byte) (Message, error) {
	if !gjson.ValidBytes(raw) {
		return Message{}, ErrIgnored
	}
	kind := gjson.GetBytes(raw, "kind")
	source := gjson.GetBytes(raw, "source")
	if !kind.Exists() || !source.Exists() {
		return Message{}, ErrIgnored
	}

	switch kind.String() {
	case KindSessionBackup, KindSaveData:
		if source.String() != SourceViewer {
			return Message{}, ErrIgnored
		}
		data := gjson.GetBytes(raw, "data")
		if !data.Exists() {
			return Message{}, ErrIgnored
		}
		decoded, err := base64.StdEncoding.DecodeString(data.String())
		if err != nil {
			return Message{}, ErrIgnored
		}
		msg := Message{Kind: kind.String(), Data: decoded}
		if fn := gjson.GetBytes(raw, "filename"); fn.Exists() {
			msg.Filename = fn.String()
		}
		return msg, nil
	case KindTriggerSave:
		if source.String() != SourceHost {
			return Message{}, ErrIgnored
		}
		return Message{Kind: KindTriggerSave}, nil
	default:
		return Message{}, ErrIgnored
	}
}

// Encode builds the raw envelope for a message. The source field is derived
// from the kind's expected sender.
func Encode(msg Message) ([]byte, error) {
	source := SourceViewer
	if msg.Kind == KindTriggerSave {
		source = SourceHost
	}
	raw, err := sjson.SetBytes([]byte(`{}`), "kind", msg.Kind)
	if err != nil {
		return nil, err
	}
	raw, err = sjson.SetBytes(raw, "source", source)
	if err != nil {
		return nil, err
	}
	if msg.Kind == KindSessionBackup || msg.Kind == KindSaveData {
		raw, err = sjson.SetBytes(raw, "data", base64.StdEncoding.EncodeToString(msg.Data))
		if err != nil {
			return nil, err
		}
	}
	if msg.Filename != "" {
		raw, err = sjson.SetBytes(raw, "filename", msg.Filename)
		if err != nil {
			return nil, err
		}
	}
	return raw, nil
}

// EncodeTriggerSave returns the host-sent save request envelope.
func EncodeTriggerSave() []byte {
	raw, _ := Encode(Message{Kind: KindTriggerSave})
	return raw
}
