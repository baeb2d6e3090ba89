package decode

import (
	"github.com/mitchellh/mapstructure"

	"RoomChat/tools/errs"
)

// Options customizes decoding behaviour.
type Options struct {
	// WeaklyTypedInput (default true) tolerates lax client payloads,
	// e.g. "5" -> int or 1.0 -> int.
	WeaklyTypedInput bool
}

func DefaultOptions() Options {
	return Options{WeaklyTypedInput: true}
}

// Decode maps a loosely typed value (typically map[string]any from a JSON
// frame) onto a business payload T. Field names are read from `json` tags.
func Decode[T any](in any, opts ...Options) (*T, error) {
	if in == nil {
		return nil, errs.New("nil payload")
	}

	cfg := DefaultOptions()
	if len(opts) > 0 {
		cfg = opts[0]
	}

	var out T
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           &out,
		WeaklyTypedInput: cfg.WeaklyTypedInput,
	})
	if err != nil {
		return nil, errs.WrapMsg(err, "new decoder")
	}
	if err := dec.Decode(in); err != nil {
		return nil, errs.WrapMsg(err, "decode payload")
	}
	return &out, nil
}

// String extracts a bare string payload (several client events carry just a
// room name or a username).
func String(in any) (string, error) {
	s, ok := in.(string)
	if !ok {
		return "", errs.New("payload is not a string")
	}
	return s, nil
}
