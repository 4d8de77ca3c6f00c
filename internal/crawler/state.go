package crawler

// state names one step of the per-location crawl loop. Transitions are
// driven by runLocation; every failure either stays soft (log and move to
// the next state) or ends the location early, never the whole run.
type state int

const (
	stateIdle state = iota
	stateNavigating
	stateAuthenticating
	stateDiscovering
	stateScrolling
	stateExtracting
	stateAdvancing
	stateDone
)

func (s state) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateNavigating:
		return "navigating"
	case stateAuthenticating:
		return "authenticating"
	case stateDiscovering:
		return "discovering-pagination"
	case stateScrolling:
		return "scrolling"
	case stateExtracting:
		return "extracting"
	case stateAdvancing:
		return "advancing-page"
	case stateDone:
		return "done"
	}
	return "unknown"
}
