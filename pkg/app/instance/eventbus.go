package instance

import (
	"time"

	"github.com/BrobridgeOrg/gravity-dispatcher/pkg/eventbus"
	eventbus_service "github.com/BrobridgeOrg/gravity-dispatcher/pkg/eventbus/service"
	nats "github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	DefaultPingInterval        = 10
	DefaultMaxPingsOutstanding = 3
	DefaultMaxReconnects       = -1
)

func (a *AppInstance) initEventBus() error {

	// default settings
	viper.SetDefault("eventbus.host", "")
	viper.SetDefault("eventbus.pingInterval", DefaultPingInterval)
	viper.SetDefault("eventbus.maxPingsOutstanding", DefaultMaxPingsOutstanding)
	viper.SetDefault("eventbus.maxReconnects", DefaultMaxReconnects)

	host := viper.GetString("eventbus.host")
	if len(host) == 0 {
		log.Info("No event bus was configured")
		return nil
	}

	options := eventbus_service.Options{
		PingInterval:        time.Duration(viper.GetInt64("eventbus.pingInterval")) * time.Second,
		MaxPingsOutstanding: viper.GetInt("eventbus.maxPingsOutstanding"),
		MaxReconnects:       viper.GetInt("eventbus.maxReconnects"),
	}

	eb := eventbus_service.NewEventBus(
		host,
		eventbus_service.EventBusHandler{
			Reconnect: func(natsConn *nats.Conn) {},
			Disconnect: func(natsConn *nats.Conn) {
				log.Error("Lost connection to event bus, faults will not be published")
			},
		},
		options,
	)

	err := eb.Connect()
	if err != nil {
		return err
	}

	a.eventBus = eb

	return nil
}

func (a *AppInstance) GetEventBus() eventbus.EventBus {

	// Avoid handing out a typed nil
	if a.eventBus == nil {
		return nil
	}

	return eventbus.EventBus(a.eventBus)
}
