package fuzzypath

import "sync/atomic"

// cancelled reports whether flag has been signalled. A nil flag is treated
// as "never cancelled", so callers that don't need cooperative cancellation
// can pass nil to MatchPaths instead of constructing an unused atomic.Bool.
func cancelled(flag *atomic.Bool) bool {
	return flag != nil && flag.Load()
}
