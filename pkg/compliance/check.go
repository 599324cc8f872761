package compliance

import (
	"fmt"
	"strings"
)

type Check string

const (
	CheckPlacement          Check = "placement"
	CheckCapacity           Check = "capacity"
	CheckPerformanceTiers   Check = "performance-tiers"
	CheckSubscription       Check = "subscription"
	CheckBackupPolicy       Check = "backup-policy"
	CheckBackupSchedule     Check = "backup-schedule"
	CheckRetention          Check = "retention"
	CheckJobStatus          Check = "job-status"
	CheckRecency            Check = "recency"
	CheckOffsiteReplication Check = "offsite-replication"
)

// AllChecks lists every check in the order a full suite runs them.
var AllChecks = []Check{
	CheckPlacement,
	CheckCapacity,
	CheckPerformanceTiers,
	CheckSubscription,
	CheckBackupPolicy,
	CheckBackupSchedule,
	CheckRetention,
	CheckJobStatus,
	CheckRecency,
	CheckOffsiteReplication,
}

func ParseCheck(s string) (Check, error) {
	c := Check(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllChecks {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown check: %s", s)
}

// IsBackup reports whether the check consumes backup records.
func (c Check) IsBackup() bool {
	switch c {
	case CheckBackupPolicy, CheckBackupSchedule, CheckRetention, CheckJobStatus, CheckRecency, CheckOffsiteReplication:
		return true
	default:
		return false
	}
}

type RetentionThresholds struct {
	MinDaily   int `json:"minDaily" yaml:"minDaily" mapstructure:"minDaily" default:"7"`
	MinWeekly  int `json:"minWeekly" yaml:"minWeekly" mapstructure:"minWeekly" default:"4"`
	MinMonthly int `json:"minMonthly" yaml:"minMonthly" mapstructure:"minMonthly" default:"3"`
}

// Thresholds bundles the limits of every check.
type Thresholds struct {
	MinFreePercent       float64             `json:"minFreePercent" yaml:"minFreePercent" mapstructure:"minFreePercent" default:"20"`
	MaxSubscriptionRatio float64             `json:"maxSubscriptionRatio" yaml:"maxSubscriptionRatio" mapstructure:"maxSubscriptionRatio" default:"1.5"`
	Retention            RetentionThresholds `json:"retention" yaml:"retention" mapstructure:"retention"`
	MaxBackupAgeHours    float64             `json:"maxBackupAgeHours" yaml:"maxBackupAgeHours" mapstructure:"maxBackupAgeHours" default:"24"`
	RPOHours             map[string]float64  `json:"rpoHours" yaml:"rpoHours" mapstructure:"rpoHours" default:"{\"critical\":4,\"high\":12,\"medium\":24,\"low\":48}"`
	LookbackDays         int                 `json:"lookbackDays" yaml:"lookbackDays" mapstructure:"lookbackDays" default:"7"`
	Criticality          map[string]string   `json:"criticality" yaml:"criticality" mapstructure:"criticality"`
	OffsiteRequired      []string            `json:"offsiteRequired" yaml:"offsiteRequired" mapstructure:"offsiteRequired"`
	CategoryTiers        []CategoryTier      `json:"categoryTiers" yaml:"categoryTiers" mapstructure:"categoryTiers"`
}
