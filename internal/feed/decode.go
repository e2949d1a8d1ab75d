package feed

import (
	"encoding/json"
	"fmt"
)

// ErrMalformedMessage marks frames that cannot be classified: invalid JSON,
// a missing or unknown `type` discriminant, or a payload that does not match
// its variant. Such frames are dropped by the caller; they never reach the
// store and never terminate the feed session.
var ErrMalformedMessage = fmt.Errorf("malformed feed message")

// envelope extracts the discriminant before the variant-specific decode.
type envelope struct {
	Type Kind `json:"type"`
}

// statsEnvelope matches the stats wire shape, which nests the counters under
// a `data` object instead of flattening them.
type statsEnvelope struct {
	Data StatsSnapshot `json:"data"`
}

// Decode classifies one raw feed frame into its Event variant. No
// referential checks happen here: a TxInput for a transaction the consumer
// has never seen decodes fine, and reconciling it is the store's concern.
func Decode(raw []byte) (Event, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}

	switch env.Type {
	case KindBlock:
		var event BlockEvent
		if err := json.Unmarshal(raw, &event); err != nil {
			return nil, fmt.Errorf("%w: block payload: %v", ErrMalformedMessage, err)
		}
		event.Details = append(json.RawMessage(nil), raw...)
		return event, nil

	case KindTransaction:
		var event TransactionEvent
		if err := json.Unmarshal(raw, &event); err != nil {
			return nil, fmt.Errorf("%w: transaction payload: %v", ErrMalformedMessage, err)
		}
		event.Details = append(json.RawMessage(nil), raw...)
		return event, nil

	case KindTxInput:
		var event TxInputEvent
		if err := json.Unmarshal(raw, &event); err != nil {
			return nil, fmt.Errorf("%w: tx input payload: %v", ErrMalformedMessage, err)
		}
		return event, nil

	case KindTxOutput:
		var event TxOutputEvent
		if err := json.Unmarshal(raw, &event); err != nil {
			return nil, fmt.Errorf("%w: tx output payload: %v", ErrMalformedMessage, err)
		}
		return event, nil

	case KindRollBack:
		var event RollBackEvent
		if err := json.Unmarshal(raw, &event); err != nil {
			return nil, fmt.Errorf("%w: rollback payload: %v", ErrMalformedMessage, err)
		}
		return event, nil

	case KindStats:
		var env statsEnvelope
		if err := json.Unmarshal(raw, &env); err != nil {
			return nil, fmt.Errorf("%w: stats payload: %v", ErrMalformedMessage, err)
		}
		return env.Data, nil

	default:
		return nil, fmt.Errorf("%w: unknown event type %q", ErrMalformedMessage, env.Type)
	}
}
