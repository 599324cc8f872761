package compliance

import (
	"encoding/json"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Params carries what a check needs besides its records.
type Params struct {
	Thresholds Thresholds
	// Cluster is reported by the placement check.
	Cluster string
	// Now is the reference time of the recency check. Zero means time.Now.
	Now time.Time
}

// Evaluate decodes data as the records of check and runs its validator.
func Evaluate(check Check, data []byte, format Format, p Params) (Report, error) {
	t := p.Thresholds
	switch check {
	case CheckPlacement:
		return run(data, format, func(r []VMAssignment) Report { return ValidatePlacement(r, p.Cluster) })
	case CheckCapacity:
		return run(data, format, func(r []DatastoreCapacity) Report { return ValidateCapacity(r, t.MinFreePercent) })
	case CheckPerformanceTiers:
		assignments, tiers, err := splitTierRecords(data, format)
		if err != nil {
			return Report{}, err
		}
		return evaluateTiers(assignments, tiers, format, t.CategoryTiers)
	case CheckSubscription:
		return run(data, format, func(r []DatastoreSubscription) Report {
			return ValidateSubscription(r, t.MaxSubscriptionRatio)
		})
	case CheckBackupPolicy:
		return run(data, format, func(r []BackupPolicy) Report { return ValidatePolicyApplied(r, t.Criticality) })
	case CheckBackupSchedule:
		return run(data, format, func(r []BackupSchedule) Report {
			return ValidateScheduleRPO(r, t.RPOHours, t.Criticality)
		})
	case CheckRetention:
		return run(data, format, func(r []RetentionPolicy) Report { return ValidateRetention(r, t.Retention) })
	case CheckJobStatus:
		return run(data, format, ValidateJobStatus)
	case CheckRecency:
		now := p.Now
		if now.IsZero() {
			now = time.Now()
		}
		return run(data, format, func(r []BackupTimestamp) Report {
			return ValidateRecency(r, t.MaxBackupAgeHours, now)
		})
	case CheckOffsiteReplication:
		return run(data, format, func(r []OffsiteReplication) Report {
			return ValidateOffsiteReplication(r, t.OffsiteRequired)
		})
	default:
		return Report{}, fmt.Errorf("unknown check: %s", check)
	}
}

func evaluateTiers(assignments, tiers []byte, format Format, categories []CategoryTier) (Report, error) {
	a, err := decode[VMAssignment](assignments, format)
	if err != nil {
		return Report{}, err
	}
	dt, err := decode[DatastoreTier](tiers, format)
	if err != nil {
		return Report{}, err
	}
	return ValidatePerformanceTiers(a, dt, categories), nil
}

// splitTierRecords reads the two record sets of the performance tier check
// from a document with "assignments" and "tiers" keys.
func splitTierRecords(data []byte, format Format) ([]byte, []byte, error) {
	if format == FormatYAML {
		var doc struct {
			Assignments yaml.Node `yaml:"assignments"`
			Tiers       yaml.Node `yaml:"tiers"`
		}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, nil, fmt.Errorf("failed to decode tier records: %w", err)
		}
		a, err := marshalNode(&doc.Assignments)
		if err != nil {
			return nil, nil, err
		}
		t, err := marshalNode(&doc.Tiers)
		if err != nil {
			return nil, nil, err
		}
		return a, t, nil
	}

	var doc struct {
		Assignments json.RawMessage `json:"assignments"`
		Tiers       json.RawMessage `json:"tiers"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("failed to decode tier records: %w", err)
	}
	if doc.Assignments == nil {
		doc.Assignments = json.RawMessage("[]")
	}
	if doc.Tiers == nil {
		doc.Tiers = json.RawMessage("[]")
	}
	return doc.Assignments, doc.Tiers, nil
}

func run[T Record](data []byte, format Format, validate func([]T) Report) (Report, error) {
	records, err := decode[T](data, format)
	if err != nil {
		return Report{}, err
	}
	return validate(records), nil
}

func decode[T Record](data []byte, format Format) ([]T, error) {
	switch format {
	case FormatYAML:
		return DecodeRecordsYAML[T](data)
	case FormatJSON, "":
		return DecodeRecords[T](data)
	default:
		return nil, fmt.Errorf("unsupported record format: %s", format)
	}
}

func marshalNode(n *yaml.Node) ([]byte, error) {
	if n.Kind == 0 {
		return []byte("[]"), nil
	}
	return yaml.Marshal(n)
}
