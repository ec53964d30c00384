package dispatcher

import (
	"errors"
	"net"
	"net/http"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/BrobridgeOrg/gravity-dispatcher/pkg/app"
	"github.com/BrobridgeOrg/gravity-dispatcher/pkg/dispatcher/service/fault"
	"github.com/BrobridgeOrg/gravity-dispatcher/pkg/dispatcher/service/request"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	DefaultMode         = "sequential"
	DefaultDelay        = time.Second
	DefaultFaultSubject = "gravity.dispatcher.faults"
)

var DefaultBody = []byte("hello")

var (
	ErrClosed         = errors.New("dispatcher: closed")
	ErrStarted        = errors.New("dispatcher: mode is fixed once started")
	ErrAlreadyServing = errors.New("dispatcher: already serving")
)

type Dispatcher struct {
	// 64-bit aligned for atomic access
	inFlight int64
	peak     int64

	app      app.App
	mode     Mode
	delay    time.Duration
	body     []byte
	ids      *request.IDGenerator
	reporter fault.Reporter

	// SEQUENTIAL
	gate chan struct{}

	// AWAITED and UNAWAITED
	stream chan *request.Request

	server    *http.Server
	mutex     sync.Mutex
	started   bool
	done      chan struct{}
	startOnce sync.Once
	closeOnce sync.Once
}

func NewDispatcher(a app.App) *Dispatcher {
	return &Dispatcher{
		app:    a,
		mode:   ModeSequential,
		delay:  DefaultDelay,
		body:   DefaultBody,
		ids:    request.NewIDGenerator(uint16(os.Getpid())),
		gate:   make(chan struct{}, 1),
		stream: make(chan *request.Request),
		done:   make(chan struct{}),
	}
}

func (d *Dispatcher) Init() error {

	// Read configurations
	viper.SetDefault("dispatcher.mode", DefaultMode)
	viper.SetDefault("dispatcher.delay", DefaultDelay)
	viper.SetDefault("dispatcher.reportFaults", false)
	viper.SetDefault("dispatcher.machineID", os.Getpid())
	viper.SetDefault("eventbus.faultSubject", DefaultFaultSubject)

	mode, err := ParseMode(viper.GetString("dispatcher.mode"))
	if err != nil {
		return err
	}

	d.mode = mode
	d.delay = viper.GetDuration("dispatcher.delay")
	d.ids = request.NewIDGenerator(uint16(viper.GetInt("dispatcher.machineID")))

	if viper.GetBool("dispatcher.reportFaults") {
		d.reporter = d.buildReporter(viper.GetString("eventbus.faultSubject"))
	}

	log.WithFields(log.Fields{
		"mode":         d.mode.String(),
		"delay":        d.delay,
		"reportFaults": d.reporter != nil,
	}).Info("Initializing dispatcher")

	return d.Start()
}

func (d *Dispatcher) buildReporter(subject string) fault.Reporter {

	reporters := fault.Reporters{
		fault.NewLogReporter(),
	}

	if d.app == nil {
		return reporters
	}

	// Only a connected bus is handed out
	eb := d.app.GetEventBus()
	if eb == nil {
		return reporters
	}

	log.WithFields(log.Fields{
		"subject": subject,
	}).Info("Publishing handler faults to event bus")

	return append(reporters, fault.NewEventBusReporter(eb, subject))
}

func (d *Dispatcher) SetMode(mode Mode) error {

	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.started {
		return ErrStarted
	}

	d.mode = mode

	return nil
}

func (d *Dispatcher) SetDelay(delay time.Duration) {
	d.delay = delay
}

func (d *Dispatcher) SetReporter(reporter fault.Reporter) {
	d.reporter = reporter
}

func (d *Dispatcher) Mode() Mode {
	return d.mode
}

// Start prepares the dispatch strategy. Loop based modes get their single
// consumer here.
func (d *Dispatcher) Start() error {

	d.startOnce.Do(func() {
		d.mutex.Lock()
		d.started = true
		d.mutex.Unlock()

		switch d.mode {
		case ModeSequential:
			d.gate <- struct{}{}
		case ModeAwaited, ModeUnawaited:
			go d.loop()
		}
	})

	return nil
}

func (d *Dispatcher) Serve(lis net.Listener) error {

	server := &http.Server{
		Handler: d,
	}

	d.mutex.Lock()
	select {
	case <-d.done:
		d.mutex.Unlock()
		return ErrClosed
	default:
	}
	if d.server != nil {
		d.mutex.Unlock()
		return ErrAlreadyServing
	}
	d.server = server
	d.mutex.Unlock()

	log.WithFields(log.Fields{
		"addr": lis.Addr().String(),
		"mode": d.mode.String(),
	}).Info("Dispatcher is ready")

	err := server.Serve(lis)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}

	return err
}

// Close stops accepting requests. Handlers already running are not cancelled.
func (d *Dispatcher) Close() error {

	var err error
	d.closeOnce.Do(func() {
		d.mutex.Lock()
		defer d.mutex.Unlock()

		close(d.done)
		if d.server != nil {
			err = d.server.Close()
		}
	})

	return err
}

func (d *Dispatcher) InFlight() int64 {
	return atomic.LoadInt64(&d.inFlight)
}

func (d *Dispatcher) PeakInFlight() int64 {
	return atomic.LoadInt64(&d.peak)
}
