package matrix

// DeviceMatrix is the stamping surface handed to circuit devices.
// Indices are 1-based; index 0 is the ground node and is dropped.
type DeviceMatrix interface {
	AddElement(i, j int, value float64)
	AddRHS(i int, value float64)
}

// System is a stampable linear system that can be solved and reused.
type System interface {
	DeviceMatrix
	Size() int
	Solve() ([]float64, error)
	Clear()
}
