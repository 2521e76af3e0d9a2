package store

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// EncodeValue serializes an arbitrary Go value using encoding/gob.
// Callers must ensure v's concrete type is gob-encodable (and, for
// custom types, registered with gob.Register).
func EncodeValue(v any) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)

	// Encode as interface{} so decoding into interface{} later works
	// the same way regardless of the concrete type stored.
	var iv = v
	if err := enc.Encode(&iv); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeValue decodes data into T, trying an interface-encoded payload
// first and falling back to a handful of common concrete types when T
// is itself an interface (e.g. any). This mirrors the decode ladder a
// gob-based run recorder needs once RunRecord.Input has been round
// tripped through several Go versions' differing gob behavior around
// interface vs. concrete encoding.
func DecodeValue[T any](data []byte) (T, error) {
	var zero T
	if len(data) == 0 {
		return zero, nil
	}

	if v, ok, err := tryDecodeAsAny[T](data); err == nil && ok {
		return v, nil
	} else if err != nil && !mustRetryAsConcrete(err) {
		return zero, err
	}

	if v, err := tryDecodeAsT[T](data); err == nil {
		return v, nil
	} else if !isInterfaceType[T]() {
		return zero, err
	}

	if v, ok, err := tryDecodeCommonConcreteAsAny[T](data); err == nil && ok {
		return v, nil
	} else if err != nil {
		return zero, err
	}

	return zero, errors.New("store: unable to decode value")
}

func tryDecodeAsAny[T any](data []byte) (T, bool, error) {
	var zero T
	var iv any
	buf := bytes.NewBuffer(data)
	dec := gob.NewDecoder(buf)
	if err := dec.Decode(&iv); err != nil {
		return zero, false, err
	}
	if v, ok := iv.(T); ok {
		return v, true, nil
	}
	if isInterfaceType[T]() {
		return any(iv).(T), true, nil
	}
	return zero, false, fmt.Errorf("store: decoded interface payload of type %T not assignable to target", iv)
}

func tryDecodeAsT[T any](data []byte) (T, error) {
	var v T
	buf := bytes.NewBuffer(data)
	dec := gob.NewDecoder(buf)
	if err := dec.Decode(&v); err != nil {
		return v, err
	}
	return v, nil
}

func tryDecodeCommonConcreteAsAny[T any](data []byte) (T, bool, error) {
	var zero T
	try := func(dst any) (any, bool, error) {
		buf := bytes.NewBuffer(data)
		dec := gob.NewDecoder(buf)
		if err := dec.Decode(dst); err != nil {
			return nil, false, err
		}
		return reflect.ValueOf(dst).Elem().Interface(), true, nil
	}

	candidates := []any{
		new(string), new([]byte), new(int), new(int64), new(float64), new(bool),
		new(map[string]any), new([]any), new([]string),
	}
	for _, c := range candidates {
		if val, ok, _ := try(c); ok {
			if isInterfaceType[T]() {
				return any(val).(T), true, nil
			}
			if v, ok := val.(T); ok {
				return v, true, nil
			}
		}
	}
	return zero, false, errors.New("store: no matching common concrete type for interface target")
}

func mustRetryAsConcrete(err error) bool {
	s := err.Error()
	return strings.Contains(s, "can only be decoded from remote interface") &&
		strings.Contains(s, "received concrete type")
}

func isInterfaceType[T any]() bool {
	var t T
	return reflect.TypeOf((*T)(nil)).Elem().Kind() == reflect.Interface || reflect.TypeOf(t) == nil
}
