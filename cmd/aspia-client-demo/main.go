// aspia-client-demo connects to an aspia-host-demo instance, authenticates
// with SRP-6a, then continuously requests and decodes video packets,
// logging each update's dirty-rectangle count.
//
// Usage:
//
//	aspia-client-demo [options]
//
// Options:
//
//	-addr       host address to dial (default: 127.0.0.1:8850)
//	-username   account to authenticate as (default: demo)
//	-password   password for that account (default: demo-password)
//	-method     aead method: aes256gcm or chacha20poly1305 (default: aes256gcm)
//	-count      number of updates to receive before exiting, 0 for unlimited (default: 0)
package main

import (
	"flag"
	"log"
	"net"
	"sync"

	"github.com/pion/logging"

	"github.com/aspia-go/core/pkg/channel"
	"github.com/aspia-go/core/pkg/codec"
	"github.com/aspia-go/core/pkg/crypto/srp"
	"github.com/aspia-go/core/pkg/desktop"
	"github.com/aspia-go/core/pkg/handshake"
	"github.com/aspia-go/core/pkg/proto"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:8850", "host address to dial")
	username := flag.String("username", "demo", "account to authenticate as")
	password := flag.String("password", "demo-password", "password for that account")
	methodFlag := flag.String("method", "aes256gcm", "aead method: aes256gcm or chacha20poly1305")
	count := flag.Int("count", 0, "number of updates to receive before exiting, 0 for unlimited")
	flag.Parse()

	method, err := parseMethod(*methodFlag)
	if err != nil {
		log.Fatalf("aspia-client-demo: %v", err)
	}

	conn, err := net.Dial("tcp", *addr)
	if err != nil {
		log.Fatalf("aspia-client-demo: dial: %v", err)
	}
	defer conn.Close()

	loggerFactory := logging.NewDefaultLoggerFactory()

	initiator, err := handshake.NewInitiatorEncryptor(method, *username, *password, loggerFactory)
	if err != nil {
		log.Fatalf("aspia-client-demo: %v", err)
	}

	decoder, err := codec.NewVideoDecoderZstd(loggerFactory)
	if err != nil {
		log.Fatalf("aspia-client-demo: %v", err)
	}
	defer decoder.Close()

	var frame *desktop.Frame
	received := 0
	done := make(chan struct{})
	var once sync.Once
	closeDone := func() { once.Do(func() { close(done) }) }

	var ch *channel.Channel
	ch, err = channel.New(channel.Config{
		Conn:          conn,
		Encryptor:     initiator,
		LoggerFactory: loggerFactory,
		Callbacks: channel.Callbacks{
			OnConnected: func() {
				log.Printf("aspia-client-demo: authenticated")
			},
			OnMessageReceived: func(msg []byte) {
				packet, err := proto.DecodeVideoPacket(msg)
				if err != nil {
					log.Printf("aspia-client-demo: malformed packet: %v", err)
					closeDone()
					return
				}

				if packet.Format != nil {
					frame = desktop.NewFrame(packet.Width, packet.Height, *packet.Format)
				}
				if frame == nil {
					log.Printf("aspia-client-demo: packet arrived before an initial format descriptor")
					closeDone()
					return
				}

				if err := decoder.DecodeInto(packet, frame); err != nil {
					log.Printf("aspia-client-demo: decode: %v", err)
					closeDone()
					return
				}

				received++
				log.Printf("aspia-client-demo: update %d: %d dirty rect(s)", received, len(packet.Rects))

				if *count > 0 && received >= *count {
					closeDone()
					return
				}
				if err := ch.RequestNextMessage(); err != nil && err != channel.ErrClosed {
					log.Printf("aspia-client-demo: %v", err)
					closeDone()
				}
			},
			OnError: func(err error) {
				log.Printf("aspia-client-demo: %v", err)
				closeDone()
			},
		},
	})
	if err != nil {
		log.Fatalf("aspia-client-demo: %v", err)
	}

	if err := ch.Start(); err != nil {
		log.Fatalf("aspia-client-demo: handshake failed: %v", err)
	}
	if err := ch.RequestNextMessage(); err != nil {
		log.Fatalf("aspia-client-demo: %v", err)
	}

	<-done
	_ = ch.Stop()
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
