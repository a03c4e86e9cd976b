package nuclea

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// globalDebug enables the tree checks in node operations. Set by
// Scene.SetDebugMode.
var globalDebug bool

// debugLogger receives tree warnings while debug mode is on.
var debugLogger = zap.NewNop()

// debugStats holds per-frame timing. Only populated when Scene.debug is true.
type debugStats struct {
	traverseTime time.Duration
	sortTime     time.Duration
	submitTime   time.Duration
	commandCount int
}

// debugLog logs timing and command stats at debug level.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	s.log.Debug("frame",
		zap.Uint64("frame", s.frame),
		zap.Duration("traverse", stats.traverseTime),
		zap.Duration("sort", stats.sortTime),
		zap.Duration("submit", stats.submitTime),
		zap.Duration("total", stats.traverseTime+stats.sortTime+stats.submitTime),
		zap.Int("commands", stats.commandCount),
		zap.Int("animations", s.animator.Len()),
		zap.Int("triggers", s.orchestrator.Evaluator().Len()),
		zap.Float64("scrollY", s.viewport.ScrollY))
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("nuclea debug: %s on disposed node %q", op, n.Name))
	}
}

// debugMaxTreeDepth is the depth above which debugCheckTreeDepth warns.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		debugLogger.Warn("tree too deep",
			zap.Int("depth", depth),
			zap.Int("max", debugMaxTreeDepth),
			zap.String("node", n.Name))
	}
}
