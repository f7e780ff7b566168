package naming

import (
	"fmt"
	"strings"
)

// Tier is a content-length classification bucket.
type Tier string

const (
	// TierL0 holds short summary content.
	TierL0 Tier = "L0"
	// TierL1 holds core procedure content.
	TierL1 Tier = "L1"
	// TierL2 holds full content with no upper bound.
	TierL2 Tier = "L2"
)

// Thresholds maps each tier to its word-count limit.
// A limit of 0 means unbounded, which is the conventional L2 setting.
type Thresholds map[Tier]int

// DefaultThresholds returns the standard tier limits:
// L0 up to 100 words, L1 up to 2000, L2 unbounded.
func DefaultThresholds() Thresholds {
	return Thresholds{
		TierL0: 100,
		TierL1: 2000,
		TierL2: 0,
	}
}

// Validate checks that all three tiers are present.
// The error names every missing tier.
func (t Thresholds) Validate() error {
	var missing []string
	for _, tier := range []Tier{TierL0, TierL1, TierL2} {
		if _, ok := t[tier]; !ok {
			missing = append(missing, string(tier))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("tier config missing required tiers: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Classify assigns a tier from a word count. Counts at or below the L0
// limit resolve to L0, at or below the L1 limit to L1, and everything
// larger to L2. Boundary ties resolve to the lower tier.
func Classify(wordCount int, t Thresholds) Tier {
	switch {
	case wordCount <= t[TierL0]:
		return TierL0
	case wordCount <= t[TierL1]:
		return TierL1
	default:
		return TierL2
	}
}

// WordCount returns the number of whitespace-separated tokens in content.
func WordCount(content string) int {
	return len(strings.Fields(content))
}
