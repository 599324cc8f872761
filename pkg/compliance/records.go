package compliance

// Sentinels used for data that could not be collected. A field holding one
// of these never satisfies a rule.
const (
	Unknown = "Unknown"
	NA      = "N/A"
	None    = "None"

	// UnknownRatio marks a subscription ratio that was not collected.
	UnknownRatio = -1.0
)

type DatastoreRef struct {
	Name string `json:"name" yaml:"name" default:"Unknown"`
	Type string `json:"type" yaml:"type" default:"Unknown"`
}

type VMAssignment struct {
	VMName     string         `json:"vm_name" yaml:"vm_name" default:"Unknown"`
	Datastores []DatastoreRef `json:"datastores" yaml:"datastores"`
	PowerState string         `json:"power_state" yaml:"power_state" default:"Unknown"`
}

type DatastoreCapacity struct {
	Name        string  `json:"name" yaml:"name" default:"Unknown"`
	Type        string  `json:"type" yaml:"type" default:"Unknown"`
	TotalGB     float64 `json:"total_gb" yaml:"total_gb"`
	FreeGB      float64 `json:"free_gb" yaml:"free_gb"`
	UsedGB      float64 `json:"used_gb" yaml:"used_gb"`
	UsedPercent float64 `json:"used_percent" yaml:"used_percent"`
	FreePercent float64 `json:"free_percent" yaml:"free_percent"`
	Accessible  bool    `json:"accessible" yaml:"accessible"`
}

type DatastoreTier struct {
	Name        string `json:"name" yaml:"name" default:"Unknown"`
	StorageType string `json:"storage_type" yaml:"storage_type" default:"Unknown"`
	Tier        Tier   `json:"performance_tier" yaml:"performance_tier" default:"UNKNOWN"`
}

type DatastoreSubscription struct {
	Name          string  `json:"name" yaml:"name" default:"Unknown"`
	CapacityGB    float64 `json:"capacity_gb" yaml:"capacity_gb"`
	ProvisionedGB float64 `json:"provisioned_gb" yaml:"provisioned_gb"`
	Ratio         float64 `json:"subscription_ratio" yaml:"subscription_ratio" default:"-1"`
}

type BackupPolicy struct {
	VMName         string `json:"vm_name" yaml:"vm_name" default:"Unknown"`
	PolicyName     string `json:"policy_name" yaml:"policy_name" default:"None"`
	PolicyApplied  bool   `json:"policy_applied" yaml:"policy_applied"`
	BackupSoftware string `json:"backup_software" yaml:"backup_software" default:"Unknown"`
}

type BackupSchedule struct {
	VMName       string  `json:"vm_name" yaml:"vm_name" default:"Unknown"`
	ScheduleType string  `json:"schedule_type" yaml:"schedule_type" default:"Unknown"`
	ScheduleTime string  `json:"schedule_time" yaml:"schedule_time" default:"Unknown"`
	RPOHours     float64 `json:"rpo_hours" yaml:"rpo_hours" default:"999"`
	Enabled      bool    `json:"enabled" yaml:"enabled"`
}

type BackupJob struct {
	VMName          string  `json:"vm_name" yaml:"vm_name" default:"Unknown"`
	JobID           string  `json:"job_id" yaml:"job_id" default:"Unknown"`
	Status          string  `json:"status" yaml:"status" default:"Unknown"`
	StartTime       string  `json:"start_time" yaml:"start_time" default:"Unknown"`
	EndTime         string  `json:"end_time" yaml:"end_time" default:"Unknown"`
	DurationMinutes float64 `json:"duration_minutes" yaml:"duration_minutes"`
	DataSizeGB      float64 `json:"data_size_gb" yaml:"data_size_gb"`
	ErrorMessage    string  `json:"error_message,omitempty" yaml:"error_message,omitempty"`
}

type RetentionPolicy struct {
	VMName           string `json:"vm_name" yaml:"vm_name" default:"Unknown"`
	PolicyName       string `json:"policy_name" yaml:"policy_name" default:"Unknown"`
	DailyRetention   int    `json:"daily_retention" yaml:"daily_retention"`
	WeeklyRetention  int    `json:"weekly_retention" yaml:"weekly_retention"`
	MonthlyRetention int    `json:"monthly_retention" yaml:"monthly_retention"`
	YearlyRetention  int    `json:"yearly_retention" yaml:"yearly_retention"`
}

type BackupTimestamp struct {
	VMName         string  `json:"vm_name" yaml:"vm_name" default:"Unknown"`
	LastBackupTime string  `json:"last_backup_time" yaml:"last_backup_time" default:"Unknown"`
	BackupAgeHours float64 `json:"backup_age_hours" yaml:"backup_age_hours"`
}

type OffsiteReplication struct {
	VMName              string `json:"vm_name" yaml:"vm_name" default:"Unknown"`
	ReplicationEnabled  bool   `json:"replication_enabled" yaml:"replication_enabled"`
	ReplicationTarget   string `json:"replication_target" yaml:"replication_target" default:"None"`
	LastReplicationTime string `json:"last_replication_time" yaml:"last_replication_time" default:"Unknown"`
	ReplicationStatus   string `json:"replication_status" yaml:"replication_status" default:"Unknown"`
}
