package instance

import (
	"errors"
	"fmt"

	mux_manager "github.com/BrobridgeOrg/gravity-dispatcher/pkg/mux_manager"
	"github.com/spf13/viper"
)

const DispatcherMux = "dispatcher"

var ErrInvalidPort = errors.New("Invalid service port for dispatcher")

func (a *AppInstance) initMuxManager() error {

	viper.SetDefault("service.host", "")
	viper.SetDefault("service.port", 8000)

	// expose port
	port := viper.GetInt("service.port")
	if port < 0 || port > 65535 {
		return ErrInvalidPort
	}

	host := fmt.Sprintf("%s:%d", viper.GetString("service.host"), port)

	_, err := a.muxManager.AssertMux(DispatcherMux, host)
	if err != nil {
		return err
	}

	return nil
}

func (a *AppInstance) runMuxManager() error {
	return a.muxManager.Serve()
}

func (a *AppInstance) GetMuxManager() mux_manager.Manager {
	return mux_manager.Manager(a.muxManager)
}
