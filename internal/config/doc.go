// Package config defines the configuration structure for infra-validator.
//
// Defaults come from `default` struct tags (creasty/defaults). Load then
// layers a YAML file, INFRA_VALIDATOR_* environment variables and explicitly
// set command line flags on top, using viper.
//
// # Configuration Structure
//
//	Configuration
//	├── VCenter        - vCenter endpoint, credentials and required privileges
//	├── Backup         - backup REST endpoint and credentials
//	├── Inventory      - workbook path, layout and lookup mode
//	├── Suite          - checks, cluster, hosts and VMs validated by `run`
//	├── Thresholds     - limits of every check
//	├── Server         - HTTP server settings
//	├── Auth           - bearer token authentication
//	├── Store          - run history database
//	├── NumWorkers     - concurrent checks in a suite run
//	├── LogFormat      - console or json
//	└── LogLevel       - logging verbosity
//
// # Defaults
//
//	┌─────────────────────────────────────┬─────────────────────────────────────────────┐
//	│ Key                                 │ Default                                     │
//	├─────────────────────────────────────┼─────────────────────────────────────────────┤
//	│ vcenter.port                        │ 443                                         │
//	│ vcenter.insecure / backup.insecure  │ true                                        │
//	│ backup.timeout                      │ 30s                                         │
//	│ inventory.layout                    │ eds                                         │
//	│ inventory.mode                      │ strict                                      │
//	│ suite.name                          │ default                                     │
//	│ thresholds.minFreePercent           │ 20                                          │
//	│ thresholds.maxSubscriptionRatio     │ 1.5                                         │
//	│ thresholds.retention                │ daily 7, weekly 4, monthly 3                │
//	│ thresholds.maxBackupAgeHours        │ 24                                          │
//	│ thresholds.rpoHours                 │ critical 4, high 12, medium 24, low 48      │
//	│ thresholds.lookbackDays             │ 7                                           │
//	│ server.serverMode / server.httpPort │ dev / 8000                                  │
//	│ auth.enabled                        │ false                                       │
//	│ numWorkers                          │ 1                                           │
//	│ logFormat / logLevel                │ console / info                              │
//	└─────────────────────────────────────┴─────────────────────────────────────────────┘
//
// # Environment
//
// Every key can be set from the environment: dots become underscores and the
// name is upper-cased, e.g. vcenter.password is INFRA_VALIDATOR_VCENTER_PASSWORD.
//
// # Usage Example
//
//	cfg, err := config.Load(configPath, cmd.Flags())
//	if err != nil {
//	    return err
//	}
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
//	zap.S().Debugw("configuration loaded", "config", cfg.Redacted())
package config
