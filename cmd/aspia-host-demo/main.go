// aspia-host-demo runs a single-session screen-sharing host: it accepts
// one TCP connection, authenticates it with SRP-6a, then streams a
// synthetic desktop animation over the encrypted channel until the peer
// disconnects.
//
// Usage:
//
//	aspia-host-demo [options]
//
// Options:
//
//	-listen     address to listen on (default: 127.0.0.1:8850)
//	-username   account the client must authenticate as (default: demo)
//	-password   password for that account (default: demo-password)
//	-method     aead method: aes256gcm or chacha20poly1305 (default: aes256gcm)
package main

import (
	"flag"
	"log"
	"net"
	"time"

	"github.com/pion/logging"

	"github.com/aspia-go/core/pkg/capture"
	"github.com/aspia-go/core/pkg/channel"
	"github.com/aspia-go/core/pkg/codec"
	"github.com/aspia-go/core/pkg/crypto/srp"
	"github.com/aspia-go/core/pkg/desktop"
	"github.com/aspia-go/core/pkg/handshake"

	"github.com/aspia-go/core/internal/syntheticcapture"
)

func main() {
	listenAddr := flag.String("listen", "127.0.0.1:8850", "address to listen on")
	username := flag.String("username", "demo", "account the client must authenticate as")
	password := flag.String("password", "demo-password", "password for that account")
	methodFlag := flag.String("method", "aes256gcm", "aead method: aes256gcm or chacha20poly1305")
	flag.Parse()

	method, err := parseMethod(*methodFlag)
	if err != nil {
		log.Fatalf("aspia-host-demo: %v", err)
	}

	salt := make([]byte, srp.MinSaltSize)
	for i := range salt {
		salt[i] = byte(i + 1) // fixed demo salt; a real host persists a per-account random salt.
	}
	store := handshake.NewStaticVerifierStore(srp.Group4096)
	store.Provision(*username, *password, salt)

	listener, err := net.Listen("tcp", *listenAddr)
	if err != nil {
		log.Fatalf("aspia-host-demo: listen: %v", err)
	}
	defer listener.Close()
	log.Printf("aspia-host-demo: listening on %s", listener.Addr())

	loggerFactory := logging.NewDefaultLoggerFactory()

	for {
		conn, err := listener.Accept()
		if err != nil {
			log.Fatalf("aspia-host-demo: accept: %v", err)
		}
		go serveSession(conn, method, store, loggerFactory)
	}
}

func serveSession(conn net.Conn, method srp.Method, store *handshake.StaticVerifierStore, loggerFactory logging.LoggerFactory) {
	defer conn.Close()

	responder := handshake.NewResponderEncryptor(method, store, loggerFactory)

	format := desktop.PixelFormatBGRA32
	const width, height = 320, 240

	ch, err := channel.New(channel.Config{
		Conn:          conn,
		Encryptor:     responder,
		LoggerFactory: loggerFactory,
		Callbacks: channel.Callbacks{
			OnError: func(err error) {
				log.Printf("aspia-host-demo: session %s: %v", conn.RemoteAddr(), err)
			},
		},
	})
	if err != nil {
		log.Printf("aspia-host-demo: session %s: %v", conn.RemoteAddr(), err)
		return
	}

	if err := ch.Start(); err != nil {
		log.Printf("aspia-host-demo: session %s: handshake failed: %v", conn.RemoteAddr(), err)
		return
	}
	log.Printf("aspia-host-demo: session %s: authenticated", conn.RemoteAddr())

	encoder, err := codec.NewVideoEncoderZstd(format, format, 3, loggerFactory)
	if err != nil {
		log.Printf("aspia-host-demo: session %s: %v", conn.RemoteAddr(), err)
		return
	}
	defer encoder.Close()

	cap := syntheticcapture.New(width, height, format)
	defer cap.Close()
	differ := capture.NewRegionDiffer(capture.DefaultBlockSize)

	var prev *desktop.Frame
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for range ticker.C {
		frame, err := cap.CaptureFrame()
		if err != nil {
			log.Printf("aspia-host-demo: session %s: capture: %v", conn.RemoteAddr(), err)
			return
		}
		if prev != nil {
			frame.Dirty = differ.Diff(prev, frame)
		} else {
			frame.Dirty = desktop.NewRegion(desktop.Rect{X: 0, Y: 0, Width: width, Height: height})
		}
		prev = frame

		if frame.Dirty.IsEmpty() {
			continue
		}

		packet, err := encoder.Encode(frame)
		if err != nil {
			log.Printf("aspia-host-demo: session %s: encode: %v", conn.RemoteAddr(), err)
			return
		}

		if err := ch.WriteMessage(packet.Encode()); err != nil {
			if err == channel.ErrClosed {
				return
			}
			log.Printf("aspia-host-demo: session %s: write: %v", conn.RemoteAddr(), err)
			return
		}
	}
}

func parseMethod(s string) (srp.Method, error) {
	switch s {
	case "aes256gcm":
		return srp.MethodAES256GCM, nil
	case "chacha20poly1305":
		return srp.MethodChaCha20Poly1305, nil
	default:
		return 0, errUnknownMethod(s)
	}
}

type errUnknownMethod string

func (e errUnknownMethod) Error() string {
	return "unknown -method " + string(e)
}
