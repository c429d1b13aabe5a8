//go:build linux

package cpu

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// Logical returns the number of logical CPUs the process may actually run
// on. In containers and cgroup-restricted environments the scheduler
// affinity mask can be narrower than the machine's CPU count, and sizing
// a worker pool off the machine count would oversubscribe.
func Logical() int {
	var mask unix.CPUSet
	if err := unix.SchedGetaffinity(0, &mask); err != nil {
		return runtime.NumCPU()
	}

	if n := mask.Count(); n > 0 {
		return n
	}
	return runtime.NumCPU()
}
