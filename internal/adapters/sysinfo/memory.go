package sysinfo

import (
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/devbush/vidrange/internal/ports"
)

// HostMemory reads virtual memory usage of the local machine
type HostMemory struct{}

func NewHostMemory() *HostMemory {
	return &HostMemory{}
}

func (HostMemory) UsedPercent() (float64, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return 0, err
	}
	return vm.UsedPercent, nil
}

var _ ports.MemoryMeter = (*HostMemory)(nil)
