package dispatcher

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/BrobridgeOrg/gravity-dispatcher/pkg/dispatcher/service/request"
	log "github.com/sirupsen/logrus"
)

func (d *Dispatcher) ServeHTTP(w http.ResponseWriter, r *http.Request) {

	req := request.NewRequest(d.ids.Next(), w, r)

	// The writer is invalid once we return
	defer req.Sink().Close()

	if d.mode == ModeSequential {
		d.handleSequential(req)
		return
	}

	// Push to request stream. A client leaving early does not withdraw it.
	select {
	case d.stream <- req:
	case <-d.done:
		return
	}

	select {
	case <-req.Sink().Done():
	case <-req.Gone():
		log.WithFields(log.Fields{
			"request": req.ID,
		}).Debug("dispatcher: client went away before completion")
	}
}

func (d *Dispatcher) handleSequential(req *request.Request) {

	// FIFO: blocked receivers are served in arrival order
	<-d.gate
	defer func() {
		d.gate <- struct{}{}
	}()

	err := d.handle(req)
	if err != nil {
		d.observe(req, err)
	}
}

// handle waits the fixed delay and completes the request.
func (d *Dispatcher) handle(req *request.Request) error {

	d.enter()
	defer d.leave()

	time.Sleep(d.delay)

	return req.Sink().Respond(d.body)
}

func (d *Dispatcher) observe(req *request.Request, err error) {

	log.WithFields(log.Fields{
		"request": req.ID,
		"mode":    d.mode.String(),
	}).Error(err)
}

func (d *Dispatcher) enter() {

	current := atomic.AddInt64(&d.inFlight, 1)

	for {
		peak := atomic.LoadInt64(&d.peak)
		if current <= peak || atomic.CompareAndSwapInt64(&d.peak, peak, current) {
			break
		}
	}

	log.WithFields(log.Fields{
		"inFlight": current,
	}).Debug("dispatcher: handler started")
}

func (d *Dispatcher) leave() {
	atomic.AddInt64(&d.inFlight, -1)
}
