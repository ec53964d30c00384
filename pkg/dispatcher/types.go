package dispatcher

import "net"

type Dispatcher interface {
	Serve(net.Listener) error
	InFlight() int64
	PeakInFlight() int64
	Close() error
}
