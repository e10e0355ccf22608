package utils

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var (
	ErrNilPayload = errors.New("payload is nil")

	json = jsoniter.ConfigCompatibleWithStandardLibrary
)

// UnmarshalJson converts a loosely typed message payload into T. Payloads that already have
// type T are returned as is; anything else goes through a json round trip.
func UnmarshalJson[T any](v any) (T, error) {
	if v == nil {
		return *new(T), ErrNilPayload
	}
	if typed, ok := v.(T); ok {
		return typed, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return *new(T), errors.WithMessage(err, "marshal json")
	}
	var result T
	if err := json.Unmarshal(data, &result); err != nil {
		return *new(T), errors.WithMessage(err, "unmarshal json")
	}
	return result, nil
}

func MarshalJson(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.WithMessage(err, "marshal json")
	}
	return data, nil
}
