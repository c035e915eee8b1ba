package budget

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// MarshalJSON implements json.Marshaler.
//
// The object carries "flags" first and every present parameter after it in
// canonical order.
func (h BudgetHeader) MarshalJSON() ([]byte, error) {
	buf := make([]byte, 0, 16+h.flags.Count()*40)
	buf = append(buf, `{"`...)
	buf = append(buf, flagsField...)
	buf = append(buf, `":`...)
	buf = strconv.AppendUint(buf, uint64(h.flags), 10)
	for _, f := range presentFields(h.flags) {
		v, _ := h.Value(f)
		buf = append(buf, `,"`...)
		buf = append(buf, f.Name()...)
		buf = append(buf, `":`...)
		buf = strconv.AppendUint(buf, v, 10)
	}
	buf = append(buf, '}')
	return buf, nil
}

// UnmarshalJSON implements json.Unmarshaler.
//
// Keys may come in any order but each only once. Values must be non-negative
// integers that fit the field. null is not a header.
func (h *BudgetHeader) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := expectDelim(dec, '{'); err != nil {
		return err
	}
	var s keyedState
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return flagsError(jsonError(err))
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("%w: object key %v", ErrInvalidValue, tok)
		}
		k, err := parseKey(name)
		if err != nil {
			return err
		}
		tok, err = dec.Token()
		if err != nil {
			return k.wrap(jsonError(err))
		}
		num, ok := tok.(json.Number)
		if !ok {
			return k.wrap(fmt.Errorf("%w: %v is not a number", ErrInvalidValue, tok))
		}
		v, err := strconv.ParseUint(num.String(), 10, 64)
		if err != nil {
			return k.wrap(fmt.Errorf("%w: %w", ErrInvalidValue, err))
		}
		if err := s.set(k, v); err != nil {
			return err
		}
	}
	if err := expectDelim(dec, '}'); err != nil {
		return err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: data after object", ErrInvalidValue)
	}
	decoded, err := s.finish()
	if err != nil {
		return err
	}
	*h = decoded
	return nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return flagsError(jsonError(err))
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("%w: expected %q, got %v", ErrInvalidValue, want, tok)
	}
	return nil
}

func jsonError(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %w", ErrUnexpectedEnd, err)
	}
	return fmt.Errorf("%w: %w", ErrInvalidValue, err)
}
