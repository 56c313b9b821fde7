package prefs

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Codec converts a value to and from its stored string form.
type Codec[T any] struct {
	Encode func(T) (string, error)
	Decode func(string) (T, error)
}

// JSON encodes structured values as JSON.
func JSON[T any]() Codec[T] {
	return Codec[T]{
		Encode: func(v T) (string, error) {
			data, err := json.Marshal(v)
			if err != nil {
				return "", err
			}
			return string(data), nil
		},
		Decode: func(raw string) (T, error) {
			var v T
			if err := json.Unmarshal([]byte(raw), &v); err != nil {
				return v, err
			}
			return v, nil
		},
	}
}

// String stores the value verbatim.
func String() Codec[string] {
	return Codec[string]{
		Encode: func(v string) (string, error) { return v, nil },
		Decode: func(raw string) (string, error) { return raw, nil },
	}
}

// Bool stores "true" or "false".
func Bool() Codec[bool] {
	return Codec[bool]{
		Encode: func(v bool) (string, error) { return strconv.FormatBool(v), nil },
		Decode: func(raw string) (bool, error) {
			switch raw {
			case "true":
				return true, nil
			case "false":
				return false, nil
			}
			return false, fmt.Errorf("invalid bool %q", raw)
		},
	}
}

// Number stores a decimal float.
func Number() Codec[float64] {
	return Codec[float64]{
		Encode: func(v float64) (string, error) { return strconv.FormatFloat(v, 'f', -1, 64), nil },
		Decode: func(raw string) (float64, error) { return strconv.ParseFloat(raw, 64) },
	}
}
