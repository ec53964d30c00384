package instance

import (
	"errors"

	"github.com/BrobridgeOrg/gravity-dispatcher/pkg/dispatcher"
	log "github.com/sirupsen/logrus"
	"github.com/soheilhy/cmux"
)

func (a *AppInstance) initDispatcher() error {
	return a.dispatcher.Init()
}

func (a *AppInstance) runDispatcher() error {

	mux := a.muxManager.GetMux(DispatcherMux)
	if mux == nil {
		return errors.New("No listener for dispatcher")
	}

	// Any HTTP/1 method is routed to the dispatcher
	lis := mux.Match(cmux.HTTP1())

	go func() {
		err := a.dispatcher.Serve(lis)
		if err != nil {
			log.Error(err)
		}
	}()

	return nil
}

func (a *AppInstance) GetDispatcher() dispatcher.Dispatcher {
	return dispatcher.Dispatcher(a.dispatcher)
}
