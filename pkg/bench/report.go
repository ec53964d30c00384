package bench

import (
	"time"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Result struct {
	Index   int           `json:"index"`
	Status  int           `json:"status"`
	Body    string        `json:"body"`
	Start   time.Duration `json:"start"`
	Latency time.Duration `json:"latency"`
	Error   string        `json:"error,omitempty"`
}

type Report struct {
	URL      string        `json:"url"`
	Requests int           `json:"requests"`
	Elapsed  time.Duration `json:"elapsed"`
	Results  []Result      `json:"results"`
}

func (report *Report) Succeeded() int {

	count := 0
	for _, r := range report.Results {
		if len(r.Error) == 0 && r.Status == 200 {
			count++
		}
	}

	return count
}

func (report *Report) MaxLatency() time.Duration {

	var max time.Duration
	for _, r := range report.Results {
		if r.Latency > max {
			max = r.Latency
		}
	}

	return max
}

func (report *Report) JSON() ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}
