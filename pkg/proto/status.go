package proto

import "encoding/binary"

// RejectReason classifies why a handshake was aborted, as carried in a
// StatusReport: bad
// group parameters, bad salt size, bad public value, unknown user, unknown
// method, or authentication failure once the session key is derived.
type RejectReason uint16

const (
	RejectReasonUnspecified RejectReason = iota
	// RejectReasonBadGroupParameters means (N, g) did not match a
	// supported group.
	RejectReasonBadGroupParameters
	// RejectReasonBadSaltSize means the salt was shorter than the minimum.
	RejectReasonBadSaltSize
	// RejectReasonBadPublicValue means a public value (A or B) was too
	// short or congruent to 0 mod N.
	RejectReasonBadPublicValue
	// RejectReasonUnknownUser means no verifier is on file for the
	// requested username.
	RejectReasonUnknownUser
	// RejectReasonUnknownMethod means the proposed AEAD method is not
	// supported.
	RejectReasonUnknownMethod
	// RejectReasonAuthenticationFailed means session decryption failed
	// after the handshake completed.
	RejectReasonAuthenticationFailed
)

// StatusReportMinSize is the minimum wire size of a StatusReport (no
// trailing detail bytes).
const StatusReportMinSize = 4 // Reason(2) + DetailLength(2)

// StatusReport is the wire record for aborting a handshake with a
// machine-readable reason. pkg/handshake neither sends nor parses it; a
// failed handshake ends with the channel closing.
type StatusReport struct {
	Reason RejectReason
	Detail []byte
}

// Encode serialises the StatusReport to bytes.
func (s StatusReport) Encode() []byte {
	buf := make([]byte, StatusReportMinSize+len(s.Detail))
	binary.LittleEndian.PutUint16(buf[0:2], uint16(s.Reason))
	binary.LittleEndian.PutUint16(buf[2:4], uint16(len(s.Detail)))
	copy(buf[4:], s.Detail)
	return buf
}

// DecodeStatusReport parses a StatusReport from bytes.
func DecodeStatusReport(data []byte) (StatusReport, error) {
	var s StatusReport
	if len(data) < StatusReportMinSize {
		return s, ErrTruncated
	}
	s.Reason = RejectReason(binary.LittleEndian.Uint16(data[0:2]))
	detailLen := int(binary.LittleEndian.Uint16(data[2:4]))
	if len(data) < StatusReportMinSize+detailLen {
		return s, ErrTruncated
	}
	if detailLen > 0 {
		s.Detail = append([]byte(nil), data[4:4+detailLen]...)
	}
	return s, nil
}
