package executor

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidKind indicates an unrecognized pool kind was requested
var ErrInvalidKind = errors.New("invalid executor kind")

// Kind identifies the flavor of worker pool.
// It is a closed set: KindThread and KindProcess are the only valid values.
type Kind int

const (
	// KindThread is a pool sized for I/O-bound work (network, disk, subprocess waits)
	KindThread Kind = iota

	// KindProcess is a pool sized for CPU-bound work.
	// Go closures cannot cross a process boundary, so workers are still
	// goroutines; the kind keeps the CPU-bound sizing heuristic and
	// chunked dispatch of a true process pool.
	KindProcess
)

// ParseKind converts a string to a Kind
// Returns ErrInvalidKind for anything other than "thread" or "process"
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "thread":
		return KindThread, nil
	case "process":
		return KindProcess, nil
	default:
		return 0, fmt.Errorf("%w: %q (must be \"thread\" or \"process\")", ErrInvalidKind, s)
	}
}

// String returns the string form of the kind
func (k Kind) String() string {
	switch k {
	case KindThread:
		return "thread"
	case KindProcess:
		return "process"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// valid reports whether the kind is a member of the closed set
func (k Kind) valid() bool {
	return k == KindThread || k == KindProcess
}

// taskType maps the kind to its natural workload classification,
// used when a caller asks for auto-sized pools
func (k Kind) taskType() string {
	if k == KindProcess {
		return TaskCPU
	}
	return TaskIO
}
