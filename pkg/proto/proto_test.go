package proto

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aspia-go/core/pkg/desktop"
)

func TestSrpIdentifyRoundTrip(t *testing.T) {
	msg := SrpIdentify{Username: "alice", Method: 1}
	encoded, err := msg.Encode()
	require.NoError(t, err)

	got, err := DecodeSrpIdentify(encoded)
	require.NoError(t, err)
	require.Equal(t, msg, got)
}

func TestSrpServerKeyExchangeRoundTrip(t *testing.T) {
	msg := SrpServerKeyExchange{
		N:    []byte{0x01, 0x02, 0x03},
		G:    []byte{0x05},
		Salt: make([]byte, 64),
		B:    make([]byte, 128),
		IV:   make([]byte, 12),
	}
	for i := range msg.Salt {
		msg.Salt[i] = byte(i)
	}
	encoded, err := msg.Encode()
	require.NoError(t, err)

	got, err := DecodeSrpServerKeyExchange(encoded)
	require.NoError(t, err)
	require.Equal(t, msg, got)
}

func TestSrpClientKeyExchangeRoundTrip(t *testing.T) {
	msg := SrpClientKeyExchange{
		A:  []byte{0xaa, 0xbb, 0xcc},
		IV: make([]byte, 12),
	}
	encoded, err := msg.Encode()
	require.NoError(t, err)

	got, err := DecodeSrpClientKeyExchange(encoded)
	require.NoError(t, err)
	require.Equal(t, msg, got)
}

func TestDecodeSrpIdentifyRejectsTruncated(t *testing.T) {
	_, err := DecodeSrpIdentify(nil)
	require.Error(t, err)
}

func TestStatusReportRoundTrip(t *testing.T) {
	s := StatusReport{Reason: RejectReasonBadSaltSize, Detail: []byte("salt too short")}
	encoded := s.Encode()

	got, err := DecodeStatusReport(encoded)
	require.NoError(t, err)
	require.Equal(t, s, got)
}

func TestStatusReportRoundTripNoDetail(t *testing.T) {
	s := StatusReport{Reason: RejectReasonUnknownUser}
	encoded := s.Encode()

	got, err := DecodeStatusReport(encoded)
	require.NoError(t, err)
	require.Equal(t, RejectReasonUnknownUser, got.Reason)
	require.Empty(t, got.Detail)
}

func TestDecodeStatusReportRejectsTruncated(t *testing.T) {
	_, err := DecodeStatusReport([]byte{0x01})
	require.ErrorIs(t, err, ErrTruncated)
}

func TestVideoPacketRoundTripWithFormat(t *testing.T) {
	format := desktop.PixelFormatBGRA32
	packet := VideoPacket{
		Encoding: VideoEncodingZstd,
		Format:   &format,
		Width:    10,
		Height:   10,
		Rects: []desktop.Rect{
			{X: 0, Y: 0, Width: 4, Height: 2},
			{X: 4, Y: 0, Width: 2, Height: 1},
		},
		Data: []byte("compressed-bytes"),
	}

	encoded := packet.Encode()
	got, err := DecodeVideoPacket(encoded)
	require.NoError(t, err)
	require.Equal(t, packet, got)
}

func TestVideoPacketRoundTripWithoutFormat(t *testing.T) {
	packet := VideoPacket{
		Encoding: VideoEncodingZstd,
		Rects:    nil,
		Data:     nil,
	}

	encoded := packet.Encode()
	got, err := DecodeVideoPacket(encoded)
	require.NoError(t, err)
	require.Equal(t, packet.Encoding, got.Encoding)
	require.Nil(t, got.Format)
	require.Empty(t, got.Rects)
	require.Empty(t, got.Data)
}

func TestDecodeVideoPacketRejectsTruncatedRectList(t *testing.T) {
	packet := VideoPacket{
		Encoding: VideoEncodingZstd,
		Rects:    []desktop.Rect{{X: 0, Y: 0, Width: 1, Height: 1}},
	}
	encoded := packet.Encode()
	_, err := DecodeVideoPacket(encoded[:len(encoded)-8])
	require.Error(t, err)
}
