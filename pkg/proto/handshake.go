package proto

import (
	"bytes"

	"github.com/aspia-go/core/pkg/tlv"
)

// Context tags used by the three SRP-6a handshake records. Each record is a
// single anonymous TLV structure; field order on the wire is not
// significant, only the tag numbers are.
const (
	tagIdentifyUsername = 0
	tagIdentifyMethod   = 1

	tagServerKeyExchangeN    = 0
	tagServerKeyExchangeG    = 1
	tagServerKeyExchangeSalt = 2
	tagServerKeyExchangeB    = 3
	tagServerKeyExchangeIV   = 4

	tagClientKeyExchangeA  = 0
	tagClientKeyExchangeIV = 1
)

// SrpIdentify is the first handshake message: the initiator announces the
// username it wants to authenticate as and the AEAD method it proposes.
type SrpIdentify struct {
	Username string
	Method   uint8
}

// Encode serialises the message as a single anonymous TLV structure.
func (m SrpIdentify) Encode() ([]byte, error) {
	var buf bytes.Buffer
	w := tlv.NewWriter(&buf)
	if err := w.StartStructure(tlv.Anonymous()); err != nil {
		return nil, err
	}
	if err := w.PutString(tlv.ContextTag(tagIdentifyUsername), m.Username); err != nil {
		return nil, err
	}
	if err := w.PutUintWithWidth(tlv.ContextTag(tagIdentifyMethod), uint64(m.Method), 1); err != nil {
		return nil, err
	}
	if err := w.EndContainer(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeSrpIdentify parses an SrpIdentify message.
func DecodeSrpIdentify(data []byte) (SrpIdentify, error) {
	var m SrpIdentify
	r := tlv.NewReader(bytes.NewReader(data))
	if err := r.Next(); err != nil {
		return m, ErrTruncated
	}
	if err := r.EnterContainer(); err != nil {
		return m, ErrMalformed
	}
	for {
		if err := r.Next(); err != nil {
			return m, ErrTruncated
		}
		if r.IsEndOfContainer() {
			break
		}
		switch r.Tag().TagNumber() {
		case tagIdentifyUsername:
			v, err := r.String()
			if err != nil {
				return m, ErrMalformed
			}
			m.Username = v
		case tagIdentifyMethod:
			v, err := r.Uint()
			if err != nil {
				return m, ErrMalformed
			}
			m.Method = uint8(v)
		default:
			if err := r.Skip(); err != nil {
				return m, ErrMalformed
			}
		}
	}
	_ = r.ExitContainer()
	return m, nil
}

// SrpServerKeyExchange is the responder's reply: the chosen group (N, g),
// the user's salt, the responder's public value B, and the responder's
// encryption IV.
type SrpServerKeyExchange struct {
	N    []byte
	G    []byte
	Salt []byte
	B    []byte
	IV   []byte
}

// Encode serialises the message as a single anonymous TLV structure.
func (m SrpServerKeyExchange) Encode() ([]byte, error) {
	var buf bytes.Buffer
	w := tlv.NewWriter(&buf)
	if err := w.StartStructure(tlv.Anonymous()); err != nil {
		return nil, err
	}
	if err := w.PutBytes(tlv.ContextTag(tagServerKeyExchangeN), m.N); err != nil {
		return nil, err
	}
	if err := w.PutBytes(tlv.ContextTag(tagServerKeyExchangeG), m.G); err != nil {
		return nil, err
	}
	if err := w.PutBytes(tlv.ContextTag(tagServerKeyExchangeSalt), m.Salt); err != nil {
		return nil, err
	}
	if err := w.PutBytes(tlv.ContextTag(tagServerKeyExchangeB), m.B); err != nil {
		return nil, err
	}
	if err := w.PutBytes(tlv.ContextTag(tagServerKeyExchangeIV), m.IV); err != nil {
		return nil, err
	}
	if err := w.EndContainer(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeSrpServerKeyExchange parses an SrpServerKeyExchange message.
func DecodeSrpServerKeyExchange(data []byte) (SrpServerKeyExchange, error) {
	var m SrpServerKeyExchange
	r := tlv.NewReader(bytes.NewReader(data))
	if err := r.Next(); err != nil {
		return m, ErrTruncated
	}
	if err := r.EnterContainer(); err != nil {
		return m, ErrMalformed
	}
	for {
		if err := r.Next(); err != nil {
			return m, ErrTruncated
		}
		if r.IsEndOfContainer() {
			break
		}
		var target *[]byte
		switch r.Tag().TagNumber() {
		case tagServerKeyExchangeN:
			target = &m.N
		case tagServerKeyExchangeG:
			target = &m.G
		case tagServerKeyExchangeSalt:
			target = &m.Salt
		case tagServerKeyExchangeB:
			target = &m.B
		case tagServerKeyExchangeIV:
			target = &m.IV
		default:
			if err := r.Skip(); err != nil {
				return m, ErrMalformed
			}
			continue
		}
		v, err := r.Bytes()
		if err != nil {
			return m, ErrMalformed
		}
		*target = v
	}
	_ = r.ExitContainer()
	return m, nil
}

// SrpClientKeyExchange is the initiator's final handshake message: its
// public value A and its own encryption IV. Both sides derive the session
// key independently once this message has been sent/processed.
type SrpClientKeyExchange struct {
	A  []byte
	IV []byte
}

// Encode serialises the message as a single anonymous TLV structure.
func (m SrpClientKeyExchange) Encode() ([]byte, error) {
	var buf bytes.Buffer
	w := tlv.NewWriter(&buf)
	if err := w.StartStructure(tlv.Anonymous()); err != nil {
		return nil, err
	}
	if err := w.PutBytes(tlv.ContextTag(tagClientKeyExchangeA), m.A); err != nil {
		return nil, err
	}
	if err := w.PutBytes(tlv.ContextTag(tagClientKeyExchangeIV), m.IV); err != nil {
		return nil, err
	}
	if err := w.EndContainer(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeSrpClientKeyExchange parses an SrpClientKeyExchange message.
func DecodeSrpClientKeyExchange(data []byte) (SrpClientKeyExchange, error) {
	var m SrpClientKeyExchange
	r := tlv.NewReader(bytes.NewReader(data))
	if err := r.Next(); err != nil {
		return m, ErrTruncated
	}
	if err := r.EnterContainer(); err != nil {
		return m, ErrMalformed
	}
	for {
		if err := r.Next(); err != nil {
			return m, ErrTruncated
		}
		if r.IsEndOfContainer() {
			break
		}
		var target *[]byte
		switch r.Tag().TagNumber() {
		case tagClientKeyExchangeA:
			target = &m.A
		case tagClientKeyExchangeIV:
			target = &m.IV
		default:
			if err := r.Skip(); err != nil {
				return m, ErrMalformed
			}
			continue
		}
		v, err := r.Bytes()
		if err != nil {
			return m, ErrMalformed
		}
		*target = v
	}
	_ = r.ExitContainer()
	return m, nil
}
