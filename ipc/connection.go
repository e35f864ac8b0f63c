package ipc

import (
	"errors"
	"io"
	"log/slog"
	"sync"
)

// Handler processes a received envelope. Return nil to send no reply.
type Handler func(env Envelope) (*Envelope, error)

// Connection is one engine-to-bot stream, usually the bot's stdin and
// stdout.
type Connection struct {
	r        io.Reader
	w        io.Writer
	wmu      sync.Mutex
	handlers map[string]Handler
}

func NewConnection(r io.Reader, w io.Writer, handlers map[string]Handler) *Connection {
	if handlers == nil {
		handlers = make(map[string]Handler)
	}
	return &Connection{
		r:        r,
		w:        w,
		handlers: handlers,
	}
}

func (c *Connection) RegisterHandler(msgType string, handler Handler) {
	c.handlers[msgType] = handler
}

func (c *Connection) write(env Envelope) error {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	return WriteEnvelope(c.w, env)
}

// ReadLoop blocks until the stream ends. A clean end of stream returns nil;
// a broken frame or failed write is returned as an error.
func (c *Connection) ReadLoop() error {
	for {
		env, err := ReadEnvelope(c.r)
		if err != nil {
			if errors.Is(err, io.EOF) {
				slog.Info("engine closed the stream")
				return nil
			}
			return err
		}

		handler, ok := c.handlers[env.Type]
		if !ok {
			slog.Warn("no handler for message type", "type", env.Type)
			continue
		}

		resp, err := handler(env)
		if err != nil {
			slog.Error("handler error", "type", env.Type, "error", err)
			continue
		}

		if resp != nil {
			if err := c.write(*resp); err != nil {
				slog.Error("failed to send response", "type", resp.Type, "error", err)
				return err
			}
			slog.Debug("sent response", "type", resp.Type)
		}
	}
}
