package request

import (
	"net/http"
	"time"
)

type Request struct {
	ID        uint64
	ArrivedAt time.Time
	raw       *http.Request
	sink      *Sink
}

func NewRequest(id uint64, w http.ResponseWriter, r *http.Request) *Request {
	return &Request{
		ID:        id,
		ArrivedAt: time.Now(),
		raw:       r,
		sink:      NewSink(w),
	}
}

func (request *Request) Raw() *http.Request {
	return request.raw
}

func (request *Request) Sink() *Sink {
	return request.sink
}

// Gone is closed when the client connection goes away before completion.
func (request *Request) Gone() <-chan struct{} {
	return request.raw.Context().Done()
}
