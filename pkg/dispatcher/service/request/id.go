package request

import (
	"sync/atomic"

	"github.com/sony/sonyflake"
)

type IDGenerator struct {
	fallback uint64
	flake    *sonyflake.Sonyflake
}

func NewIDGenerator(machineID uint16) *IDGenerator {

	flake := sonyflake.NewSonyflake(sonyflake.Settings{
		MachineID: func() (uint16, error) {
			return machineID, nil
		},
	})

	return &IDGenerator{
		flake: flake,
	}
}

func (gen *IDGenerator) Next() uint64 {

	if gen.flake == nil {
		return atomic.AddUint64(&gen.fallback, 1)
	}

	id, err := gen.flake.NextID()
	if err != nil {
		// sonyflake ran out of time bits
		return atomic.AddUint64(&gen.fallback, 1)
	}

	return id
}
