package compliance

import (
	"fmt"
	"strings"
)

type Tier string

const (
	TierHighPerformance     Tier = "HIGH_PERFORMANCE"
	TierStandardPerformance Tier = "STANDARD_PERFORMANCE"
	TierArchive             Tier = "ARCHIVE"
	TierUnknown             Tier = "UNKNOWN"
)

var (
	highTierHints    = []string{"ssd", "nvme", "flash", "high", "tier1"}
	archiveTierHints = []string{"archive", "backup", "tier3", "slow"}
)

func ParseTier(s string) (Tier, error) {
	switch t := Tier(strings.ToUpper(strings.TrimSpace(s))); t {
	case TierHighPerformance, TierStandardPerformance, TierArchive, TierUnknown:
		return t, nil
	default:
		return "", fmt.Errorf("invalid performance tier: %s", s)
	}
}

// CategoryTier maps an application category, matched as a substring of the
// VM name, to the tier it requires.
type CategoryTier struct {
	Category string `json:"category" yaml:"category" mapstructure:"category"`
	Tier     Tier   `json:"tier" yaml:"tier" mapstructure:"tier"`
}

// ClassifyTier infers the performance tier of a datastore from its name and
// storage type.
func ClassifyTier(name, storageType string) Tier {
	haystack := strings.ToLower(name) + " " + strings.ToLower(storageType)
	if containsAny(haystack, highTierHints) {
		return TierHighPerformance
	}
	if containsAny(haystack, archiveTierHints) {
		return TierArchive
	}
	return TierStandardPerformance
}

// RequiredTier returns the tier of the first category found in the VM name.
// Categories are evaluated in order.
func RequiredTier(vmName string, categories []CategoryTier) Tier {
	name := strings.ToLower(vmName)
	for _, c := range categories {
		if c.Category == "" {
			continue
		}
		if strings.Contains(name, strings.ToLower(c.Category)) {
			return c.Tier
		}
	}
	return TierStandardPerformance
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
