// Package nats publishes grid records to a NATS server.
package nats

import (
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/kilianp07/gridmodel/core/broker"
	"github.com/kilianp07/gridmodel/infra/logger"
)

// Config defines the NATS connection.
type Config struct {
	URL            string        `json:"url"`
	Name           string        `json:"name"`
	User           string        `json:"user"`
	Password       string        `json:"password"`
	Token          string        `json:"token"`
	TopicPrefix    string        `json:"topic_prefix"`
	MaxReconnects  int           `json:"max_reconnects"`
	ReconnectWait  time.Duration `json:"reconnect_wait"`
	ConnectTimeout time.Duration `json:"connect_timeout"`
	FlushTimeout   time.Duration `json:"flush_timeout"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.URL == "" {
		c.URL = nats.DefaultURL
	}
	if c.Name == "" {
		c.Name = "gridmodel"
	}
	if c.TopicPrefix == "" {
		c.TopicPrefix = "gridmodel"
	}
	if c.MaxReconnects == 0 {
		c.MaxReconnects = nats.DefaultMaxReconnect
	}
	if c.ReconnectWait <= 0 {
		c.ReconnectWait = nats.DefaultReconnectWait
	}
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = nats.DefaultTimeout
	}
	if c.FlushTimeout <= 0 {
		c.FlushTimeout = time.Second
	}
}

type natsConn interface {
	Publish(subject string, data []byte) error
	FlushTimeout(timeout time.Duration) error
	IsConnected() bool
	Close()
}

var connect = func(url string, opts ...nats.Option) (natsConn, error) {
	return nats.Connect(url, opts...)
}

// Publisher implements broker.Publisher on a NATS connection. Topic
// separators become subject tokens, so grid/north/stats is published on
// grid.north.stats.
type Publisher struct {
	conn  natsConn
	flush time.Duration
	log   logger.Logger
}

var _ broker.Publisher = (*Publisher)(nil)

// Options converts cfg into connection options.
func Options(cfg Config, log logger.Logger) []nats.Option {
	opts := []nats.Option{
		nats.Name(cfg.Name),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.Timeout(cfg.ConnectTimeout),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Errorf("nats disconnected: %v", err)
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Warnf("nats reconnected to %s", nc.ConnectedUrl())
		}),
	}
	if cfg.User != "" {
		opts = append(opts, nats.UserInfo(cfg.User, cfg.Password))
	}
	if cfg.Token != "" {
		opts = append(opts, nats.Token(cfg.Token))
	}
	return opts
}

// NewPublisher connects to the server named by cfg.
func NewPublisher(cfg Config) (*Publisher, error) {
	cfg.SetDefaults()
	log := logger.New("nats_publisher")
	conn, err := connect(cfg.URL, Options(cfg, log)...)
	if err != nil {
		return nil, fmt.Errorf("connect nats %s: %w", cfg.URL, err)
	}
	log.Infof("NATS connected to %s", cfg.URL)
	return &Publisher{conn: conn, flush: cfg.FlushTimeout, log: log}, nil
}

// Subject maps a broker topic onto a NATS subject.
func Subject(topic string) string {
	return strings.ReplaceAll(strings.Trim(topic, "/"), "/", ".")
}

// Publish sends payload and waits for the server to acknowledge the flush.
func (p *Publisher) Publish(topic string, payload []byte) error {
	if !p.conn.IsConnected() {
		return broker.ErrNotConnected
	}
	subject := Subject(topic)
	if err := p.conn.Publish(subject, payload); err != nil {
		return fmt.Errorf("publish %s: %w", subject, err)
	}
	if err := p.conn.FlushTimeout(p.flush); err != nil {
		return fmt.Errorf("flush %s: %w", subject, err)
	}
	p.log.Debugw("published", map[string]any{"subject": subject, "bytes": len(payload)})
	return nil
}

// Disconnect closes the connection.
func (p *Publisher) Disconnect() {
	if p.conn != nil {
		p.conn.Close()
	}
}
