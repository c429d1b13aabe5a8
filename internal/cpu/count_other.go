//go:build !linux

package cpu

import "runtime"

// Logical returns the number of logical CPUs available to the process.
// Affinity masks are not queryable portably outside Linux, so this falls
// back to the runtime's view of the machine.
func Logical() int {
	return runtime.NumCPU()
}
