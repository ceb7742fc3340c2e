package media

import "strings"

// Strategy is one way of turning a stored path into a media source
type Strategy uint8

const (
	// StrategySegment is the primary, segment-wise encoding (Resolve)
	StrategySegment Strategy = iota
	// StrategyURI encodes the whole path as a URI
	StrategyURI
	// StrategySpaces only replaces spaces with %20
	StrategySpaces
	// StrategyRaw uses the stored path unchanged
	StrategyRaw
)

// chain is the order in which a failing media element is retried
var chain = []Strategy{StrategySegment, StrategyURI, StrategySpaces, StrategyRaw}

func (s Strategy) String() string {
	switch s {
	case StrategySegment:
		return "segment"
	case StrategyURI:
		return "uri"
	case StrategySpaces:
		return "spaces"
	case StrategyRaw:
		return "raw"
	}
	return "unknown"
}

// StrategySet records which strategies an element has already tried
type StrategySet uint8

// With returns the set with s added
func (set StrategySet) With(s Strategy) StrategySet {
	return set | 1<<s
}

// Has reports whether s is in the set
func (set StrategySet) Has(s Strategy) bool {
	return set&(1<<s) != 0
}

// Apply produces the source URL for original under strategy s
func Apply(s Strategy, original string) string {
	switch s {
	case StrategySegment:
		return Resolve(original)
	case StrategyURI:
		return encodeURI(original)
	case StrategySpaces:
		return strings.ReplaceAll(original, " ", "%20")
	}
	return original
}

// NextFallback returns the next untried strategy after a load failure.
// Strategies that would produce a URL already attempted are skipped,
// since loading the same source again cannot succeed. ok is false once
// the chain is exhausted and the caller should show a placeholder.
func NextFallback(attempted StrategySet, original string) (src string, s Strategy, ok bool) {
	tried := make(map[string]bool, len(chain))
	for _, s := range chain {
		if attempted.Has(s) {
			tried[Apply(s, original)] = true
		}
	}
	for _, s := range chain {
		if attempted.Has(s) {
			continue
		}
		src := Apply(s, original)
		if tried[src] {
			continue
		}
		return src, s, true
	}
	return "", 0, false
}

// FallbackChain returns every distinct source for original in retry
// order. The first entry is always Resolve(original).
func FallbackChain(original string) []string {
	var (
		attempted StrategySet
		out       []string
	)
	for {
		src, s, ok := NextFallback(attempted, original)
		if !ok {
			return out
		}
		out = append(out, src)
		attempted = attempted.With(s)
	}
}
