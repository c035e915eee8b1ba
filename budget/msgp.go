package budget

import (
	"errors"
	"fmt"

	"github.com/algorand/msgp/msgp"
)

// MarshalMsg implements msgp.Marshaler.
//
// The header is written as a map: flags first, then every present parameter in
// canonical order. Absent parameters are omitted.
func (h BudgetHeader) MarshalMsg(b []byte) (o []byte) {
	o = msgp.Require(b, h.Msgsize())
	o = msgp.AppendMapHeader(o, uint32(1+h.flags.Count()))
	o = msgp.AppendString(o, flagsField)
	o = msgp.AppendUint8(o, uint8(h.flags))
	for _, f := range presentFields(h.flags) {
		v, _ := h.Value(f)
		o = msgp.AppendString(o, f.Name())
		o = msgp.AppendUint64(o, v)
	}
	return
}

func (*BudgetHeader) CanMarshalMsg(z interface{}) bool {
	_, ok := (z).(*BudgetHeader)
	return ok
}

// UnmarshalMsg implements msgp.Unmarshaler.
//
// Map keys may come in any order. An array is read positionally: flags followed by
// the values its bits select.
func (h *BudgetHeader) UnmarshalMsg(bts []byte) (o []byte, err error) {
	in := bts
	var zb0001 int
	var zb0002 bool
	zb0001, zb0002, bts, err = msgp.ReadMapHeaderBytes(bts)
	if _, ok := err.(msgp.TypeError); ok {
		return h.unmarshalMsgArray(in)
	}
	if err != nil {
		err = msgpError(flagsError, err)
		return
	}
	if zb0002 {
		err = flagsError(ErrMissingField)
		return
	}
	var s keyedState
	for zb0001 > 0 {
		zb0001--
		var field []byte
		field, bts, err = msgp.ReadMapKeyZC(bts)
		if err != nil {
			err = msgpError(flagsError, err)
			return
		}
		var k key
		k, err = parseKey(string(field))
		if err != nil {
			return
		}
		var v uint64
		v, bts, err = msgp.ReadUint64Bytes(bts)
		if err != nil {
			err = msgpError(k.wrap, err)
			return
		}
		if err = s.set(k, v); err != nil {
			return
		}
	}
	decoded, err := s.finish()
	if err != nil {
		return
	}
	*h = decoded
	o = bts
	return
}

func (h *BudgetHeader) unmarshalMsgArray(bts []byte) (o []byte, err error) {
	var zb0001 int
	zb0001, _, bts, err = msgp.ReadArrayHeaderBytes(bts)
	if err != nil {
		err = msgpError(flagsError, err)
		return
	}
	if zb0001 == 0 {
		err = flagsError(ErrUnexpectedEnd)
		return
	}
	zb0001--
	var raw uint64
	raw, bts, err = msgp.ReadUint64Bytes(bts)
	if err != nil {
		err = msgpError(flagsError, err)
		return
	}
	var s keyedState
	if err = s.setFlags(raw); err != nil {
		return
	}
	if err = checkReserved(s.flags); err != nil {
		err = flagsError(err)
		return
	}
	for _, f := range presentFields(s.flags) {
		if zb0001 == 0 {
			err = fieldError(f, ErrUnexpectedEnd)
			return
		}
		zb0001--
		var v uint64
		v, bts, err = msgp.ReadUint64Bytes(bts)
		if err != nil {
			err = msgpError(key{field: f}.wrap, err)
			return
		}
		if err = s.setField(f, v); err != nil {
			return
		}
	}
	if zb0001 > 0 {
		err = fmt.Errorf("%w: %d elements after the last flagged field", ErrCorruptEncoding, zb0001)
		return
	}
	decoded, err := seal(s.flags, s.params, ErrCorruptEncoding)
	if err != nil {
		return
	}
	*h = decoded
	o = bts
	return
}

func (*BudgetHeader) CanUnmarshalMsg(z interface{}) bool {
	_, ok := (z).(*BudgetHeader)
	return ok
}

// Msgsize returns an upper bound estimate of the number of bytes occupied by the serialized message
func (h BudgetHeader) Msgsize() (s int) {
	s = msgp.MapHeaderSize + msgp.StringPrefixSize + len(flagsField) + msgp.Uint8Size
	for _, f := range presentFields(h.flags) {
		s += msgp.StringPrefixSize + len(f.Name()) + msgp.Uint64Size
	}
	return
}

// MsgIsZero returns whether this is a zero value
func (h BudgetHeader) MsgIsZero() bool {
	return h == BudgetHeader{}
}

func msgpError(wrap func(error) *FieldError, err error) error {
	if errors.Is(err, msgp.ErrShortBytes) {
		return wrap(fmt.Errorf("%w: %w", ErrUnexpectedEnd, err))
	}
	return wrap(fmt.Errorf("%w: %w", ErrInvalidValue, err))
}
