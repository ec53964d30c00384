package request

import (
	"errors"
	"net/http"
	"sync"
)

var (
	ErrAlreadyCompleted = errors.New("request: response already completed")
	ErrSinkClosed       = errors.New("request: response sink closed")
)

// Sink accepts exactly one terminal write.
type Sink struct {
	mutex     sync.Mutex
	writer    http.ResponseWriter
	completed bool
	closed    bool
	done      chan struct{}
}

func NewSink(w http.ResponseWriter) *Sink {
	return &Sink{
		writer: w,
		done:   make(chan struct{}),
	}
}

func (sink *Sink) Respond(body []byte) error {

	sink.mutex.Lock()
	defer sink.mutex.Unlock()

	if sink.completed {
		return ErrAlreadyCompleted
	}

	if sink.closed {
		return ErrSinkClosed
	}

	// A failed write still completes the exchange
	sink.completed = true
	defer close(sink.done)

	_, err := sink.writer.Write(body)
	if err != nil {
		return err
	}

	return nil
}

// Close detaches the underlying writer. Writes after Close fail with ErrSinkClosed.
func (sink *Sink) Close() {
	sink.mutex.Lock()
	sink.closed = true
	sink.writer = nil
	sink.mutex.Unlock()
}

func (sink *Sink) Done() <-chan struct{} {
	return sink.done
}

func (sink *Sink) Completed() bool {
	sink.mutex.Lock()
	defer sink.mutex.Unlock()
	return sink.completed
}
