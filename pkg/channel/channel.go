package channel

import (
	"fmt"
	"io"
	"net"
	"sync"

	"github.com/pion/logging"

	"github.com/aspia-go/core/pkg/varint"
)

// Size limits for the framed channel.
const (
	// MaxMessageSize is the largest message the channel will read or write.
	MaxMessageSize = 16 * 1024 * 1024

	// readBufferReservedSize is 128 KiB. No read buffer is reserved with it:
	// readFrame allocates a fresh buffer of exactly the decoded length for
	// each incoming message.
	readBufferReservedSize = 128 * 1024

	// maxWriteChunk caps each individual conn.Write call so a large
	// message does not monopolise the socket send buffer.
	maxWriteChunk = 1400
)

// State is the channel's position in its connect/handshake/session
// lifecycle.
type State int

const (
	StateNotConnected State = iota
	StateConnecting
	StateHandshaking
	StateEncrypted
	StateClosed
)

// String implements fmt.Stringer for logging.
func (s State) String() string {
	switch s {
	case StateNotConnected:
		return "not_connected"
	case StateConnecting:
		return "connecting"
	case StateHandshaking:
		return "handshaking"
	case StateEncrypted:
		return "encrypted"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Callbacks are invoked from the channel's internal goroutines; callers
// must not block inside them for long. OnMessageReceived may call
// RequestNextMessage to arm the next read: the pending read is cleared
// before the callback runs.
type Callbacks struct {
	// OnConnected fires once the handshake completes and the channel
	// enters StateEncrypted.
	OnConnected func()

	// OnMessageReceived fires with each decrypted message, once per
	// RequestNextMessage call (single-shot reads).
	OnMessageReceived func(msg []byte)

	// OnMessageWritten fires after a queued WriteMessage has been fully
	// written to the underlying connection.
	OnMessageWritten func()

	// OnError fires on any fatal I/O, handshake, or protocol error; the
	// channel stops itself before invoking it.
	OnError func(err error)
}

// Config configures a new Channel.
type Config struct {
	// Conn is the underlying byte stream. Required.
	Conn net.Conn

	// Encryptor drives the handshake and, once complete, seals/opens
	// every message. Required.
	Encryptor Encryptor

	// Callbacks receives lifecycle and message events.
	Callbacks Callbacks

	// LoggerFactory builds the channel's logger. If nil, logging is
	// disabled.
	LoggerFactory logging.LoggerFactory
}

// Channel is a length-prefixed, ordered, bidirectional message transport
// layered over a net.Conn, with an Encryptor bootstrapping and then
// securing every message after the handshake.
//
// Writes are FIFO: WriteMessage calls are written to the wire in the order
// they were made. Reads are single-shot: the channel does not read ahead of
// the application; each RequestNextMessage call arms exactly one read.
type Channel struct {
	conn      net.Conn
	encryptor Encryptor
	callbacks Callbacks
	log       logging.LeveledLogger

	writeCh chan []byte
	stopCh  chan struct{}
	wg      sync.WaitGroup

	mu    sync.Mutex
	state State

	armCh    chan struct{}
	armedMu  sync.Mutex
	armed    bool
}

// New validates config and constructs a Channel in StateNotConnected.
// Call Start to begin the handshake.
func New(config Config) (*Channel, error) {
	if config.Conn == nil || config.Encryptor == nil {
		return nil, ErrNotConnected
	}

	var log logging.LeveledLogger
	if config.LoggerFactory != nil {
		log = config.LoggerFactory.NewLogger("channel")
	}

	return &Channel{
		conn:      config.Conn,
		encryptor: config.Encryptor,
		callbacks: config.Callbacks,
		log:       log,
		writeCh:   make(chan []byte, 64),
		stopCh:    make(chan struct{}),
		armCh:     make(chan struct{}, 1),
		state:     StateNotConnected,
	}, nil
}

// State returns the channel's current lifecycle state.
func (c *Channel) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Channel) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

// Start runs the handshake synchronously and, on success, starts the
// background read/write loops. It returns once the channel is either
// StateEncrypted or has failed the handshake.
func (c *Channel) Start() error {
	c.setState(StateHandshaking)

	if err := c.runHandshake(); err != nil {
		err = fmt.Errorf("%w: %w", ErrHandshakeFailed, err)
		c.fail(err)
		return err
	}

	c.setState(StateEncrypted)
	if c.callbacks.OnConnected != nil {
		c.callbacks.OnConnected()
	}

	c.wg.Add(2)
	go c.writeLoop()
	go c.readLoop()

	return nil
}

// runHandshake drives the Encryptor's Start/Next exchange to completion,
// writing and reading raw (unencrypted) id=-1 frames.
func (c *Channel) runHandshake() error {
	msg, done, err := c.encryptor.Start()
	if err != nil {
		return err
	}
	if msg != nil {
		if err := c.writeFrame(msg); err != nil {
			return err
		}
	}
	if done {
		return nil
	}

	for {
		received, err := c.readFrame()
		if err != nil {
			return err
		}

		msg, done, err = c.encryptor.Next(received)
		if err != nil {
			return err
		}
		if msg != nil {
			if err := c.writeFrame(msg); err != nil {
				return err
			}
		}
		if done {
			return nil
		}
	}
}

// WriteMessage enqueues data for encryption and transmission, preserving
// FIFO order relative to other WriteMessage calls.
func (c *Channel) WriteMessage(data []byte) error {
	if len(data) > MaxMessageSize {
		return ErrMessageTooLarge
	}
	switch c.State() {
	case StateEncrypted:
	case StateClosed:
		return ErrClosed
	default:
		return ErrNotConnected
	}

	select {
	case c.writeCh <- data:
		return nil
	case <-c.stopCh:
		return ErrClosed
	}
}

// RequestNextMessage arms exactly one read. Once the next message arrives
// it is decrypted and delivered via Callbacks.OnMessageReceived; no further
// message is read until RequestNextMessage is called again.
func (c *Channel) RequestNextMessage() error {
	switch c.State() {
	case StateEncrypted:
	case StateClosed:
		return ErrClosed
	default:
		return ErrNotConnected
	}

	c.armedMu.Lock()
	if c.armed {
		c.armedMu.Unlock()
		return ErrAlreadyReading
	}
	c.armed = true
	c.armedMu.Unlock()

	select {
	case c.armCh <- struct{}{}:
		return nil
	case <-c.stopCh:
		return ErrClosed
	}
}

func (c *Channel) writeLoop() {
	defer c.wg.Done()
	for {
		select {
		case data := <-c.writeCh:
			sealed, err := c.encryptor.Encrypt(data)
			if err != nil {
				c.fail(err)
				return
			}
			if err := c.writeFrame(sealed); err != nil {
				c.fail(err)
				return
			}
			if c.callbacks.OnMessageWritten != nil {
				c.callbacks.OnMessageWritten()
			}
		case <-c.stopCh:
			return
		}
	}
}

func (c *Channel) readLoop() {
	defer c.wg.Done()
	for {
		select {
		case <-c.armCh:
		case <-c.stopCh:
			return
		}

		raw, err := c.readFrame()
		if err != nil {
			c.fail(err)
			return
		}

		plaintext, err := c.encryptor.Decrypt(raw)
		if err != nil {
			c.fail(err)
			return
		}

		c.armedMu.Lock()
		c.armed = false
		c.armedMu.Unlock()

		if c.callbacks.OnMessageReceived != nil {
			c.callbacks.OnMessageReceived(plaintext)
		}
	}
}

// writeFrame writes payload prefixed with its varint length, in chunks of
// at most maxWriteChunk bytes.
func (c *Channel) writeFrame(payload []byte) error {
	if len(payload) > MaxMessageSize {
		return ErrMessageTooLarge
	}

	prefix, err := varint.Encode(uint32(len(payload)))
	if err != nil {
		return err
	}

	frame := make([]byte, 0, len(prefix)+len(payload))
	frame = append(frame, prefix...)
	frame = append(frame, payload...)

	for len(frame) > 0 {
		n := maxWriteChunk
		if n > len(frame) {
			n = len(frame)
		}
		written, err := c.conn.Write(frame[:n])
		if err != nil {
			return err
		}
		frame = frame[written:]
	}

	return nil
}

// readFrame decodes a varint length prefix one byte at a time, then reads
// exactly that many payload bytes.
func (c *Channel) readFrame() ([]byte, error) {
	var dec varint.Decoder
	var b [1]byte

	for !dec.Done() {
		if _, err := io.ReadFull(c.conn, b[:]); err != nil {
			return nil, err
		}
		if _, err := dec.PutByte(b[0]); err != nil {
			return nil, err
		}
	}

	length := dec.Value()
	if length == 0 {
		return nil, ErrZeroLengthMessage
	}
	if length > MaxMessageSize {
		return nil, ErrMessageTooLarge
	}

	buf := make([]byte, length)
	if _, err := io.ReadFull(c.conn, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func (c *Channel) fail(err error) {
	c.setState(StateClosed)
	_ = c.Stop()
	if c.log != nil {
		c.log.Warnf("channel error: %v", err)
	}
	if c.callbacks.OnError != nil {
		c.callbacks.OnError(err)
	}
}

// Stop closes the channel and its underlying connection. Safe to call
// more than once.
func (c *Channel) Stop() error {
	c.mu.Lock()
	if c.state == StateClosed {
		c.mu.Unlock()
	} else {
		c.state = StateClosed
		c.mu.Unlock()
	}

	select {
	case <-c.stopCh:
	default:
		close(c.stopCh)
	}

	err := c.conn.Close()
	c.encryptor.Destroy()
	return err
}
