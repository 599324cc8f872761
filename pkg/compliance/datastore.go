package compliance

import (
	"fmt"
	"math"
	"strconv"
)

var supportedDatastoreTypes = map[string]bool{
	"VMFS": true,
	"NFS":  true,
	"VSAN": true,
	"vSAN": true,
	"VVol": true,
}

// ValidatePlacement flags VMs without datastores and datastores of an
// unsupported type.
func ValidatePlacement(assignments []VMAssignment, cluster string) Report {
	r := newReport(CheckPlacement, len(assignments))

	for _, a := range assignments {
		if len(a.Datastores) == 0 {
			r.add(a.VMName, SeverityCritical, "VM has no datastores assigned", map[string]any{
				"cluster": cluster,
			})
			continue
		}

		for _, ds := range a.Datastores {
			if supportedDatastoreTypes[ds.Type] {
				continue
			}
			r.add(a.VMName, SeverityWarning, fmt.Sprintf("Unsupported datastore type: %s", ds.Type), map[string]any{
				"cluster":   cluster,
				"datastore": ds.Name,
				"type":      ds.Type,
			})
		}
	}

	return *r
}

// ValidateCapacity flags inaccessible datastores and datastores whose free
// space is strictly below minFreePercent.
func ValidateCapacity(datastores []DatastoreCapacity, minFreePercent float64) Report {
	r := newReport(CheckCapacity, len(datastores))

	for _, ds := range datastores {
		if !ds.Accessible {
			r.add(ds.Name, SeverityCritical, "Datastore is not accessible", map[string]any{
				"free_percent": 0.0,
			})
			continue
		}

		if ds.FreePercent < minFreePercent {
			r.add(ds.Name, SeverityWarning,
				fmt.Sprintf("Free capacity (%s%%) below threshold (%s%%)", num(ds.FreePercent), num(minFreePercent)),
				map[string]any{
					"free_percent": ds.FreePercent,
					"free_gb":      ds.FreeGB,
					"total_gb":     ds.TotalGB,
					"threshold":    minFreePercent,
				})
		}
	}

	return *r
}

// ValidatePerformanceTiers compares the tier a VM requires with the tier of
// every datastore it lives on. Higher tiers than required are accepted;
// ARCHIVE is only accepted when ARCHIVE is required.
func ValidatePerformanceTiers(assignments []VMAssignment, tiers []DatastoreTier, categories []CategoryTier) Report {
	r := newReport(CheckPerformanceTiers, len(assignments))

	byName := make(map[string]Tier, len(tiers))
	for _, t := range tiers {
		byName[t.Name] = t.Tier
	}

	for _, a := range assignments {
		required := RequiredTier(a.VMName, categories)
		if required == TierUnknown {
			continue
		}

		for _, ref := range a.Datastores {
			current, ok := byName[ref.Name]
			if !ok || current == "" {
				current = TierUnknown
			}

			details := map[string]any{
				"datastore":     ref.Name,
				"required_tier": string(required),
				"current_tier":  string(current),
			}

			switch {
			case current == TierUnknown:
				r.add(a.VMName, SeverityWarning,
					fmt.Sprintf("Performance tier could not be determined for datastore %s", ref.Name), details)
			case current == TierArchive && required != TierArchive:
				r.add(a.VMName, SeverityWarning,
					fmt.Sprintf("VM requires %s but is on %s", required, current), details)
			}
		}
	}

	return *r
}

// ValidateSubscription flags datastores provisioned beyond maxRatio. A
// missing ratio is recomputed from capacity and provisioned space; when that
// is impossible the datastore fails as critical.
func ValidateSubscription(datastores []DatastoreSubscription, maxRatio float64) Report {
	r := newReport(CheckSubscription, len(datastores))

	for _, ds := range datastores {
		details := map[string]any{
			"max_ratio":      maxRatio,
			"capacity_gb":    ds.CapacityGB,
			"provisioned_gb": ds.ProvisionedGB,
		}

		ratio, ok := subscriptionRatio(ds)
		if !ok {
			r.add(ds.Name, SeverityCritical, "Subscription ratio could not be determined", details)
			continue
		}

		if ratio > maxRatio {
			details["subscription_ratio"] = ratio
			r.add(ds.Name, SeverityWarning,
				fmt.Sprintf("Subscription ratio (%s:1) exceeds maximum (%s:1)", num(ratio), num(maxRatio)),
				details)
		}
	}

	return *r
}

func subscriptionRatio(ds DatastoreSubscription) (float64, bool) {
	switch {
	case ds.Ratio > 0:
		return ds.Ratio, true
	case ds.CapacityGB > 0:
		if ds.Ratio == 0 && ds.ProvisionedGB <= 0 {
			return 0, true
		}
		return math.Round(ds.ProvisionedGB/ds.CapacityGB*100) / 100, true
	case ds.Ratio == 0 && ds.ProvisionedGB <= 0:
		return 0, true
	default:
		return 0, false
	}
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
