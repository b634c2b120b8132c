package client

import (
	"sync"

	"github.com/google/uuid"
)

// Conn is the transport an observer writes on. The websocket adapter and
// test fakes both satisfy it.
type Conn interface {
	WriteMessage(data []byte) error
	Close() error
}

// Client is one connected observer. Outbound state flows through a
// capacity-1 mailbox: when the observer falls behind, the queued stale
// snapshot is dropped and replaced with the newest one, so a slow reader
// never accumulates a backlog and never blocks the sender.
type Client struct {
	ID string

	conn    Conn
	mailbox chan []byte
	quit    chan struct{}
	once    sync.Once
}

func New(conn Conn) *Client {
	return &Client{
		ID:      uuid.NewString(),
		conn:    conn,
		mailbox: make(chan []byte, 1),
		quit:    make(chan struct{}),
	}
}

// Offer hands a message to the observer without ever blocking. If the
// mailbox is full the stale entry is evicted first (latest value wins).
func (c *Client) Offer(msg []byte) {
	for {
		select {
		case c.mailbox <- msg:
			return
		default:
		}
		select {
		case <-c.mailbox:
		default:
		}
	}
}

// Run is the write pump. It returns when the connection fails or the
// client is closed.
func (c *Client) Run() error {
	for {
		select {
		case <-c.quit:
			return nil
		case msg := <-c.mailbox:
			if err := c.conn.WriteMessage(msg); err != nil {
				return err
			}
		}
	}
}

// Close tears the client down; safe to call more than once.
func (c *Client) Close() {
	c.once.Do(func() {
		close(c.quit)
		_ = c.conn.Close()
	})
}
