package compliance

import (
	"encoding/json"
	"fmt"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"
)

// Record is the set of types the validators accept.
type Record interface {
	VMAssignment | DatastoreCapacity | DatastoreTier | DatastoreSubscription |
		BackupPolicy | BackupSchedule | BackupJob | RetentionPolicy | BackupTimestamp | OffsiteReplication
}

// DecodeRecords decodes a JSON array of records. Fields absent from an
// element are filled with their sentinel default before decoding.
func DecodeRecords[T Record](data []byte) ([]T, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode records: %w", err)
	}

	records := make([]T, 0, len(raw))
	for i, r := range raw {
		var rec T
		if err := defaults.Set(&rec); err != nil {
			return nil, fmt.Errorf("failed to set defaults on record %d: %w", i, err)
		}
		if err := json.Unmarshal(r, &rec); err != nil {
			return nil, fmt.Errorf("failed to decode record %d: %w", i, err)
		}
		records = append(records, rec)
	}

	return records, nil
}

// DecodeRecordsYAML is DecodeRecords for a YAML sequence.
func DecodeRecordsYAML[T Record](data []byte) ([]T, error) {
	var nodes []yaml.Node
	if err := yaml.Unmarshal(data, &nodes); err != nil {
		return nil, fmt.Errorf("failed to decode records: %w", err)
	}

	records := make([]T, 0, len(nodes))
	for i := range nodes {
		var rec T
		if err := defaults.Set(&rec); err != nil {
			return nil, fmt.Errorf("failed to set defaults on record %d: %w", i, err)
		}
		if err := nodes[i].Decode(&rec); err != nil {
			return nil, fmt.Errorf("failed to decode record %d: %w", i, err)
		}
		records = append(records, rec)
	}

	return records, nil
}
