package zensend

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type envelopeKind int

const (
	envelopeMalformed envelopeKind = iota
	envelopeSuccess
	envelopeFailure
)

// envelope is the {success} / {failure} wrapper around every API response.
// Payloads stay raw until the discriminant is known.
type envelope struct {
	Success json.RawMessage `json:"success"`
	Failure json.RawMessage `json:"failure"`
}

// present treats an absent member and an explicit null alike.
func present(raw json.RawMessage) bool {
	return len(raw) > 0 && !bytes.Equal(raw, []byte("null"))
}

// kind discriminates the decoded envelope. success wins when both are set.
func (e *envelope) kind() envelopeKind {
	switch {
	case present(e.Success):
		return envelopeSuccess
	case present(e.Failure):
		return envelopeFailure
	default:
		return envelopeMalformed
	}
}

// requiredKeyer is implemented by payloads whose members must all be sent.
type requiredKeyer interface {
	requiredKeys() []string
}

// decodePayload unmarshals raw into v after checking that every required
// key of v is present and not null.
func decodePayload(raw json.RawMessage, v any) error {
	if r, ok := v.(requiredKeyer); ok {
		var members map[string]json.RawMessage
		if err := json.Unmarshal(raw, &members); err != nil {
			return err
		}
		for _, key := range r.requiredKeys() {
			if !present(members[key]) {
				return fmt.Errorf("missing required field %q", key)
			}
		}
	}
	return json.Unmarshal(raw, v)
}

// decodeEnvelope parses body and maps it onto the payload or a typed error.
// status is only carried into errors.
func decodeEnvelope[T any](status int, body []byte) (*T, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, decodeError(status, err)
	}

	switch env.kind() {
	case envelopeSuccess:
		result := new(T)
		if err := decodePayload(env.Success, result); err != nil {
			return nil, decodeError(status, err)
		}
		return result, nil
	case envelopeFailure:
		failure := new(APIError)
		if err := decodePayload(env.Failure, failure); err != nil {
			return nil, decodeError(status, err)
		}
		return nil, apiError(status, failure)
	default:
		return nil, unexpectedResponseError(status)
	}
}
