package profile

const (
	DefaultStep    = 1.0
	DefaultWorkers = 4

	// upper bound on generated grid points, guards against a tiny step
	MaxGridSize = 10_000_000

	// quotients this close (relative) to an integer count as that integer
	gridSnapTolerance = 1e-9

	// largest |k| for which k*step is computed from an exact integer
	maxGridIndex = 1 << 53
)
