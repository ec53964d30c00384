package manager

import (
	"errors"
	"fmt"
	"net"
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/soheilhy/cmux"
)

type instance struct {
	mux      cmux.CMux
	listener net.Listener
}

type MuxManager struct {
	instances map[string]*instance
	mutex     sync.RWMutex
}

func NewMuxManager() *MuxManager {
	return &MuxManager{
		instances: make(map[string]*instance),
	}
}

func (mm *MuxManager) CreateMux(name string, host string) (cmux.CMux, error) {

	// Start to listen on port
	lis, err := net.Listen("tcp", host)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"name": name,
		"host": lis.Addr().String(),
	}).Info("Starting server on " + lis.Addr().String())

	fmt.Printf("Listening on %s\n", lis.Addr().String())

	m := cmux.New(lis)

	mm.mutex.Lock()
	mm.instances[name] = &instance{
		mux:      m,
		listener: lis,
	}
	mm.mutex.Unlock()

	return m, nil
}

func (mm *MuxManager) Serve() error {

	mm.mutex.RLock()
	defer mm.mutex.RUnlock()

	for name, inst := range mm.instances {

		go func(name string, mux cmux.CMux) {
			err := mux.Serve()
			if err != nil && !errors.Is(err, net.ErrClosed) {
				log.WithFields(log.Fields{
					"name": name,
				}).Error(err)
			}
		}(name, inst.mux)
	}

	return nil
}

func (mm *MuxManager) AssertMux(name string, host string) (cmux.CMux, error) {

	mux := mm.GetMux(name)
	if mux != nil {
		return mux, nil
	}

	return mm.CreateMux(name, host)
}

func (mm *MuxManager) GetMux(name string) cmux.CMux {

	mm.mutex.RLock()
	defer mm.mutex.RUnlock()

	inst, ok := mm.instances[name]
	if !ok {
		return nil
	}

	return inst.mux
}

func (mm *MuxManager) GetAddr(name string) net.Addr {

	mm.mutex.RLock()
	defer mm.mutex.RUnlock()

	inst, ok := mm.instances[name]
	if !ok {
		return nil
	}

	return inst.listener.Addr()
}

// Close releases every listening socket.
func (mm *MuxManager) Close() {

	mm.mutex.Lock()
	defer mm.mutex.Unlock()

	for name, inst := range mm.instances {
		inst.mux.Close()
		delete(mm.instances, name)
	}
}
