package ports

// MemoryMeter reports host memory usage for progress displays
type MemoryMeter interface {
	UsedPercent() (float64, error)
}
