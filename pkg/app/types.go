package app

import (
	"github.com/BrobridgeOrg/gravity-dispatcher/pkg/dispatcher"
	"github.com/BrobridgeOrg/gravity-dispatcher/pkg/eventbus"
	mux_manager "github.com/BrobridgeOrg/gravity-dispatcher/pkg/mux_manager"
)

type App interface {
	GetDispatcher() dispatcher.Dispatcher
	GetEventBus() eventbus.EventBus
	GetMuxManager() mux_manager.Manager
}
