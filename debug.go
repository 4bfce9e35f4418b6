package arbor

import (
	"fmt"
	"os"
)

// globalDebug enables extra runtime checks and stderr diagnostics.
var globalDebug bool

// SetDebugMode enables or disables debug mode. When enabled, operations on
// disposed nodes panic, excessive tree depth is warned about, and ignored
// transformation mutations on scene roots are reported on stderr.
func SetDebugMode(enabled bool) {
	globalDebug = enabled
}

// debugCheckDisposed panics with a descriptive message when a disposed node
// is used. Only called in debug mode; in release mode callers skip this
// entirely.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("arbor debug: %s on disposed node %q (ID was %d)", op, n.Name, n.ID))
	}
}

// debugCheckTreeDepth warns on stderr if tree depth exceeds the threshold.
const debugMaxTreeDepth = 64

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		_, _ = fmt.Fprintf(os.Stderr, "[arbor] warning: tree depth %d exceeds %d (node %q)\n",
			depth, debugMaxTreeDepth, n.Name)
	}
}

// debugWarnSceneMutation reports an ignored transformation mutation on a
// scene root. The no-op itself is intentional and documented; the warning
// only helps find the caller.
func debugWarnSceneMutation(op string) {
	if !globalDebug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[arbor] warning: %s on scene root ignored\n", op)
}
