package fault

import (
	log "github.com/sirupsen/logrus"
)

type Publisher interface {
	Publish(string, []byte) error
}

// EventBusReporter publishes faults as JSON events.
type EventBusReporter struct {
	publisher Publisher
	subject   string
}

func NewEventBusReporter(publisher Publisher, subject string) *EventBusReporter {
	return &EventBusReporter{
		publisher: publisher,
		subject:   subject,
	}
}

func (er *EventBusReporter) Report(f *Fault) {

	data, err := json.Marshal(f)
	if err != nil {
		log.Error(err)
		return
	}

	err = er.publisher.Publish(er.subject, data)
	if err != nil {
		log.WithFields(log.Fields{
			"subject": er.subject,
		}).Errorf("dispatcher: failed to publish fault: %v", err)
	}
}
