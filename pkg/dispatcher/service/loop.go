package dispatcher

import (
	"github.com/BrobridgeOrg/gravity-dispatcher/pkg/dispatcher/service/fault"
	"github.com/BrobridgeOrg/gravity-dispatcher/pkg/dispatcher/service/request"
)

// loop is the single consumer of the request stream.
func (d *Dispatcher) loop() {
	for {
		select {
		case req := <-d.stream:

			if d.mode == ModeUnawaited {
				go d.dispatch(req) // NOTE: not awaited
				continue
			}

			err := d.handle(req)
			if err != nil {
				d.observe(req, err)
			}

		case <-d.done:
			return
		}
	}
}

// dispatch runs a handler nobody waits for. Faults are dropped unless a
// reporter was configured.
func (d *Dispatcher) dispatch(req *request.Request) {

	err := d.handle(req)
	if err == nil || d.reporter == nil {
		return
	}

	d.reporter.Report(fault.NewFault(req.ID, d.mode.String(), err))
}
