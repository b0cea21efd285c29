package tendril

import (
	"fmt"
	"os"
)

// debugMode enables tracing of gesture and transaction activity to stderr.
// Off by default; toggled by hosts while diagnosing interaction problems.
var debugMode bool

// SetDebugMode toggles debug tracing for the whole package.
func SetDebugMode(enabled bool) {
	debugMode = enabled
}

// DebugMode reports whether debug tracing is enabled.
func DebugMode() bool {
	return debugMode
}

// debugf prints a trace line to stderr when debug mode is on.
func debugf(format string, args ...any) {
	if !debugMode {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[tendril] "+format+"\n", args...)
}

// debugCheckDisposed panics with a descriptive message when a disposed node
// is used in a tree operation. Only called when debug mode is on; in release
// mode callers skip this entirely.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("tendril debug: %s on disposed node %q (ID was %d)", op, n.Name, n.ID))
	}
}

// debugCheckTreeDepth warns on stderr if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		_, _ = fmt.Fprintf(os.Stderr, "[tendril] warning: tree depth %d exceeds %d (node %q)\n",
			depth, debugMaxTreeDepth, n.Name)
	}
}
