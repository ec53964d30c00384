package eventbus

import (
	"errors"
	"time"

	nats "github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"
)

var ErrNotConnected = errors.New("eventbus: not connected")

type Options struct {
	PingInterval        time.Duration
	MaxPingsOutstanding int
	MaxReconnects       int
}

type EventBusHandler struct {
	Reconnect  func(natsConn *nats.Conn)
	Disconnect func(natsConn *nats.Conn)
}

type EventBus struct {
	connection *nats.Conn
	host       string
	handler    *EventBusHandler
	options    *Options
}

func NewEventBus(host string, handler EventBusHandler, options Options) *EventBus {
	return &EventBus{
		connection: nil,
		host:       host,
		handler:    &handler,
		options:    &options,
	}
}

func (eb *EventBus) Connect() error {

	log.WithFields(log.Fields{
		"host":                eb.host,
		"pingInterval":        eb.options.PingInterval,
		"maxPingsOutstanding": eb.options.MaxPingsOutstanding,
		"maxReconnects":       eb.options.MaxReconnects,
	}).Info("Connecting to NATS server")

	nc, err := nats.Connect(eb.host,
		nats.PingInterval(eb.options.PingInterval),
		nats.MaxPingsOutstanding(eb.options.MaxPingsOutstanding),
		nats.MaxReconnects(eb.options.MaxReconnects),
		nats.ReconnectHandler(eb.ReconnectHandler),
		nats.DisconnectHandler(eb.DisconnectHandler),
	)
	if err != nil {
		return err
	}

	eb.connection = nc

	return nil
}

func (eb *EventBus) Close() {
	if eb.connection == nil {
		return
	}

	eb.connection.Close()
}

func (eb *EventBus) ReconnectHandler(natsConn *nats.Conn) {

	log.WithFields(log.Fields{
		"host": natsConn.ConnectedUrl(),
	}).Warn("Reconnected to NATS server")

	if eb.handler.Reconnect != nil {
		eb.handler.Reconnect(natsConn)
	}
}

func (eb *EventBus) DisconnectHandler(natsConn *nats.Conn) {

	log.WithFields(log.Fields{
		"host": eb.host,
	}).Warn("Disconnected from NATS server")

	if eb.handler.Disconnect != nil {
		eb.handler.Disconnect(natsConn)
	}
}

func (eb *EventBus) GetConnection() *nats.Conn {
	return eb.connection
}

func (eb *EventBus) Publish(subject string, data []byte) error {

	if eb.connection == nil {
		return ErrNotConnected
	}

	return eb.connection.Publish(subject, data)
}
