package fault

import (
	"time"

	jsoniter "github.com/json-iterator/go"
	log "github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Fault struct {
	RequestID uint64    `json:"requestID"`
	Mode      string    `json:"mode"`
	Reason    string    `json:"reason"`
	Timestamp time.Time `json:"timestamp"`
}

func NewFault(requestID uint64, mode string, err error) *Fault {
	return &Fault{
		RequestID: requestID,
		Mode:      mode,
		Reason:    err.Error(),
		Timestamp: time.Now(),
	}
}

type Reporter interface {
	Report(*Fault)
}

// Reporters fans a fault out to every reporter in order.
type Reporters []Reporter

func (reporters Reporters) Report(f *Fault) {
	for _, r := range reporters {
		r.Report(f)
	}
}

type LogReporter struct{}

func NewLogReporter() *LogReporter {
	return &LogReporter{}
}

func (lr *LogReporter) Report(f *Fault) {
	log.WithFields(log.Fields{
		"request": f.RequestID,
		"mode":    f.Mode,
	}).Warnf("dispatcher: handler fault: %s", f.Reason)
}
