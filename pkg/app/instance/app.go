package instance

import (
	"runtime"

	dispatcher_service "github.com/BrobridgeOrg/gravity-dispatcher/pkg/dispatcher/service"
	eventbus_service "github.com/BrobridgeOrg/gravity-dispatcher/pkg/eventbus/service"
	mux_manager "github.com/BrobridgeOrg/gravity-dispatcher/pkg/mux_manager/manager"
	log "github.com/sirupsen/logrus"
)

type AppInstance struct {
	done       chan bool
	muxManager *mux_manager.MuxManager
	eventBus   *eventbus_service.EventBus
	dispatcher *dispatcher_service.Dispatcher
}

func NewAppInstance() *AppInstance {

	a := &AppInstance{
		done: make(chan bool),
	}

	a.muxManager = mux_manager.NewMuxManager()
	a.dispatcher = dispatcher_service.NewDispatcher(a)

	return a
}

func (a *AppInstance) Init() error {

	log.WithFields(log.Fields{
		"max_procs": runtime.GOMAXPROCS(0),
	}).Info("Starting application")

	// Listener first so a bind failure stops startup
	err := a.initMuxManager()
	if err != nil {
		return err
	}

	err = a.initEventBus()
	if err != nil {
		return err
	}

	err = a.initDispatcher()
	if err != nil {
		return err
	}

	return nil
}

func (a *AppInstance) Uninit() {

	err := a.dispatcher.Close()
	if err != nil {
		log.Error(err)
	}

	a.muxManager.Close()

	if a.eventBus != nil {
		a.eventBus.Close()
	}
}

// Start serves requests without blocking.
func (a *AppInstance) Start() error {

	err := a.runDispatcher()
	if err != nil {
		return err
	}

	return a.runMuxManager()
}

func (a *AppInstance) Run() error {

	err := a.Start()
	if err != nil {
		return err
	}

	<-a.done

	return nil
}
