package compliance

import (
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	defaultCriticality = "medium"
	defaultRPOHours    = 24.0
	noErrorMessage     = "No error message available"
)

var successStatuses = map[string]bool{
	"success":    true,
	"successful": true,
	"completed":  true,
}

// naive timestamps carry no zone and are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

func ValidatePolicyApplied(policies []BackupPolicy, criticality map[string]string) Report {
	r := newReport(CheckBackupPolicy, len(policies))

	for _, p := range policies {
		if p.PolicyApplied && !isMissing(p.PolicyName) {
			continue
		}
		r.add(p.VMName, SeverityCritical, "No backup policy applied to VM", map[string]any{
			"policy_name": p.PolicyName,
			"criticality": criticalityOf(p.VMName, criticality),
		})
	}

	return *r
}

// ValidateScheduleRPO checks each schedule against the RPO required for the
// VM's criticality. A disabled schedule is critical whatever its RPO.
func ValidateScheduleRPO(schedules []BackupSchedule, rpoByCriticality map[string]float64, criticality map[string]string) Report {
	r := newReport(CheckBackupSchedule, len(schedules))

	for _, s := range schedules {
		crit := criticalityOf(s.VMName, criticality)
		required, ok := rpoByCriticality[crit]
		if !ok {
			required = defaultRPOHours
		}

		if !s.Enabled {
			r.add(s.VMName, SeverityCritical, "Backup schedule is disabled", map[string]any{
				"current_rpo":  NA,
				"required_rpo": required,
				"criticality":  crit,
			})
			continue
		}

		if s.RPOHours > required {
			r.add(s.VMName, SeverityWarning,
				fmt.Sprintf("RPO (%sh) exceeds requirement (%sh) for %s VM", num(s.RPOHours), num(required), crit),
				map[string]any{
					"current_rpo":  s.RPOHours,
					"required_rpo": required,
					"criticality":  crit,
				})
		}
	}

	return *r
}

// ValidateRetention reports each retention bucket strictly below its minimum
// as a separate violation.
func ValidateRetention(policies []RetentionPolicy, minimum RetentionThresholds) Report {
	r := newReport(CheckRetention, len(policies))

	for _, p := range policies {
		buckets := []struct {
			name     string
			unit     string
			current  int
			required int
		}{
			{"Daily", "d", p.DailyRetention, minimum.MinDaily},
			{"Weekly", "w", p.WeeklyRetention, minimum.MinWeekly},
			{"Monthly", "m", p.MonthlyRetention, minimum.MinMonthly},
		}

		for _, b := range buckets {
			if b.current >= b.required {
				continue
			}
			r.add(p.VMName, SeverityWarning,
				fmt.Sprintf("%s retention (%d%s) below minimum (%d%s)", b.name, b.current, b.unit, b.required, b.unit),
				map[string]any{
					"policy":   p.PolicyName,
					"bucket":   strings.ToLower(b.name),
					"current":  b.current,
					"required": b.required,
				})
		}
	}

	return *r
}

func ValidateJobStatus(jobs []BackupJob) Report {
	r := newReport(CheckJobStatus, len(jobs))

	for _, j := range jobs {
		if successStatuses[strings.ToLower(strings.TrimSpace(j.Status))] {
			continue
		}
		msg := j.ErrorMessage
		if msg == "" {
			msg = noErrorMessage
		}
		r.add(j.VMName, SeverityCritical, fmt.Sprintf("Backup job status: %s", j.Status), map[string]any{
			"job_id":        j.JobID,
			"status":        j.Status,
			"end_time":      j.EndTime,
			"error_message": msg,
		})
	}

	return *r
}

// ValidateRecency flags backups older than maxAgeHours at now. A timestamp
// that cannot be parsed is critical.
func ValidateRecency(timestamps []BackupTimestamp, maxAgeHours float64, now time.Time) Report {
	r := newReport(CheckRecency, len(timestamps))

	for _, ts := range timestamps {
		last, err := ParseTimestamp(ts.LastBackupTime)
		if err != nil {
			zap.S().Named("compliance").Warnw("error parsing backup timestamp", "vm", ts.VMName, "timestamp", ts.LastBackupTime, "error", err)
			r.add(ts.VMName, SeverityCritical, "Unable to determine backup age", map[string]any{
				"last_backup_time": Unknown,
				"age_hours":        Unknown,
			})
			continue
		}

		age := math.Round(now.Sub(last).Hours()*100) / 100
		if age > maxAgeHours {
			r.add(ts.VMName, SeverityWarning,
				fmt.Sprintf("Backup is %sh old, exceeds maximum (%sh)", num(age), num(maxAgeHours)),
				map[string]any{
					"last_backup_time": ts.LastBackupTime,
					"age_hours":        age,
					"max_age_hours":    maxAgeHours,
				})
		}
	}

	return *r
}

// ValidateOffsiteReplication evaluates only the VMs listed in required.
// Total still reports the size of the whole input.
func ValidateOffsiteReplication(replication []OffsiteReplication, required []string) Report {
	r := newReport(CheckOffsiteReplication, len(replication))

	want := make(map[string]bool, len(required))
	for _, vm := range required {
		want[vm] = true
	}

	for _, rep := range replication {
		if !want[rep.VMName] {
			continue
		}

		switch {
		case !rep.ReplicationEnabled:
			r.add(rep.VMName, SeverityCritical, "Offsite replication not enabled for critical VM", map[string]any{
				"replication_target": rep.ReplicationTarget,
			})
		case isMissing(rep.ReplicationTarget):
			r.add(rep.VMName, SeverityCritical, "Offsite replication enabled but no target configured", map[string]any{
				"replication_target": rep.ReplicationTarget,
			})
		case !successStatuses[strings.ToLower(strings.TrimSpace(rep.ReplicationStatus))]:
			r.add(rep.VMName, SeverityWarning, fmt.Sprintf("Offsite replication status: %s", rep.ReplicationStatus), map[string]any{
				"replication_target":    rep.ReplicationTarget,
				"last_replication_time": rep.LastReplicationTime,
				"replication_status":    rep.ReplicationStatus,
			})
		}
	}

	return *r
}

// ParseTimestamp accepts RFC 3339 and zone-less ISO 8601 timestamps.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp: %q", s)
}

// criticalityOf looks vm up exactly, then lower-cased since config loaders
// may fold map keys.
func criticalityOf(vm string, criticality map[string]string) string {
	for _, key := range []string{vm, strings.ToLower(vm)} {
		if c, ok := criticality[key]; ok && c != "" {
			return strings.ToLower(c)
		}
	}
	return defaultCriticality
}

func isMissing(s string) bool {
	switch strings.TrimSpace(s) {
	case "", None, NA, Unknown:
		return true
	default:
		return false
	}
}
