package types

import (
	"github.com/spacemeshos/go-scale"
	"go.uber.org/zap/zapcore"
)

// MessageHeaderSize is the encoded size of MessageHeader.
const MessageHeaderSize = 3

// MessageHeader describes how the account keys of a message are split into
// signers and readonly accounts. Keys requiring signatures come first, readonly
// signers are the tail of that group, readonly non-signers are the tail of the list.
type MessageHeader struct {
	NumRequiredSignatures       uint8 `json:"numRequiredSignatures"`
	NumReadonlySignedAccounts   uint8 `json:"numReadonlySignedAccounts"`
	NumReadonlyUnsignedAccounts uint8 `json:"numReadonlyUnsignedAccounts"`
}

// MarshalLogObject implements logging interface.
func (h MessageHeader) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddUint8("required_signatures", h.NumRequiredSignatures)
	enc.AddUint8("readonly_signed", h.NumReadonlySignedAccounts)
	enc.AddUint8("readonly_unsigned", h.NumReadonlyUnsignedAccounts)
	return nil
}

// EncodeScale implements scale codec interface.
func (h *MessageHeader) EncodeScale(enc *scale.Encoder) (total int, err error) {
	for _, v := range [...]uint8{h.NumRequiredSignatures, h.NumReadonlySignedAccounts, h.NumReadonlyUnsignedAccounts} {
		n, err := scale.EncodeByte(enc, v)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// DecodeScale implements scale codec interface.
func (h *MessageHeader) DecodeScale(dec *scale.Decoder) (total int, err error) {
	for _, dst := range [...]*uint8{&h.NumRequiredSignatures, &h.NumReadonlySignedAccounts, &h.NumReadonlyUnsignedAccounts} {
		v, n, err := scale.DecodeByte(dec)
		if err != nil {
			return total, err
		}
		*dst = v
		total += n
	}
	return total, nil
}
