package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/kubev2v/infra-validator/pkg/compliance"
	"github.com/kubev2v/infra-validator/pkg/inventory"
	applog "github.com/kubev2v/infra-validator/pkg/log"
)

const (
	EnvPrefix = "INFRA_VALIDATOR"

	ServerModeDev  = "dev"
	ServerModeProd = "prod"

	redacted = "********"
)

type Server struct {
	ServerMode string `mapstructure:"serverMode" default:"dev"`
	HTTPPort   int    `mapstructure:"httpPort" default:"8000"`
}

type Authentication struct {
	Enabled bool   `mapstructure:"enabled" default:"false"`
	Secret  string `mapstructure:"secret"`
}

type VCenter struct {
	Host               string   `mapstructure:"host"`
	Username           string   `mapstructure:"username"`
	Password           string   `mapstructure:"password"`
	Port               int      `mapstructure:"port" default:"443"`
	Insecure           bool     `mapstructure:"insecure" default:"true"`
	RequiredPrivileges []string `mapstructure:"requiredPrivileges"`
}

type Backup struct {
	Server   string        `mapstructure:"server"`
	Username string        `mapstructure:"username"`
	Password string        `mapstructure:"password"`
	Insecure bool          `mapstructure:"insecure" default:"true"`
	Timeout  time.Duration `mapstructure:"timeout" default:"30s"`
}

type Inventory struct {
	Workbook string `mapstructure:"workbook"`
	Layout   string `mapstructure:"layout" default:"eds"`
	Mode     string `mapstructure:"mode" default:"strict"`
}

// Suite selects what the run command validates.
type Suite struct {
	Name string `mapstructure:"name" default:"default"`
	// Checks lists check names. Empty means every check.
	Checks  []string `mapstructure:"checks"`
	Cluster string   `mapstructure:"cluster"`
	Hosts   []string `mapstructure:"hosts"`
	VMs     []string `mapstructure:"vms"`
}

type Store struct {
	// Path of the DuckDB file. Empty disables run history.
	Path string `mapstructure:"path"`
}

type Configuration struct {
	VCenter    VCenter               `mapstructure:"vcenter"`
	Backup     Backup                `mapstructure:"backup"`
	Inventory  Inventory             `mapstructure:"inventory"`
	Suite      Suite                 `mapstructure:"suite"`
	Thresholds compliance.Thresholds `mapstructure:"thresholds"`
	Server     Server                `mapstructure:"server"`
	Auth       Authentication        `mapstructure:"auth"`
	Store      Store                 `mapstructure:"store"`
	NumWorkers int                   `mapstructure:"numWorkers" default:"1"`
	LogFormat  string                `mapstructure:"logFormat" default:"console"`
	LogLevel   string                `mapstructure:"logLevel" default:"info"`
}

// FlagKeys maps command line flag names to configuration keys.
var FlagKeys = map[string]string{
	"log-level":      "logLevel",
	"log-format":     "logFormat",
	"workers":        "numWorkers",
	"workbook":       "inventory.workbook",
	"layout":         "inventory.layout",
	"mode":           "inventory.mode",
	"vcenter-host":   "vcenter.host",
	"vcenter-user":   "vcenter.username",
	"vcenter-port":   "vcenter.port",
	"backup-server":  "backup.server",
	"backup-user":    "backup.username",
	"store":          "store.path",
	"http-port":      "server.httpPort",
	"server-mode":    "server.serverMode",
	"suite":          "suite.name",
	"cluster":        "suite.cluster",
	"min-free":       "thresholds.minFreePercent",
	"max-ratio":      "thresholds.maxSubscriptionRatio",
	"max-age":        "thresholds.maxBackupAgeHours",
	"lookback-days":  "thresholds.lookbackDays",
	"offsite-vms":    "thresholds.offsiteRequired",
	"min-daily":      "thresholds.retention.minDaily",
	"min-weekly":     "thresholds.retention.minWeekly",
	"min-monthly":    "thresholds.retention.minMonthly",
	"auth-enabled":   "auth.enabled",
	"backup-timeout": "backup.timeout",
}

// NewConfiguration returns a configuration holding only defaults.
func NewConfiguration() (*Configuration, error) {
	cfg := &Configuration{}
	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("failed to apply configuration defaults: %w", err)
	}
	return cfg, nil
}

// Load layers, from lowest to highest precedence: defaults, the YAML file at
// path (optional), INFRA_VALIDATOR_* environment variables and the flags of
// fs that were set explicitly.
func Load(path string, fs *pflag.FlagSet) (*Configuration, error) {
	cfg, err := NewConfiguration()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range keys(reflect.TypeOf(*cfg), "") {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	if fs != nil {
		var bindErr error
		fs.Visit(func(f *pflag.Flag) {
			if key, ok := FlagKeys[f.Name]; ok && bindErr == nil {
				bindErr = v.BindPFlag(key, f)
			}
		})
		if bindErr != nil {
			return nil, bindErr
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling configuration: %w", err)
	}

	return cfg, nil
}

// keys lists the dotted mapstructure keys of every leaf field of t.
func keys(t reflect.Type, prefix string) []string {
	var out []string
	for i := range t.NumField() {
		f := t.Field(i)
		name := f.Tag.Get("mapstructure")
		if name == "" || name == "-" {
			continue
		}
		key := name
		if prefix != "" {
			key = prefix + "." + name
		}
		if f.Type.Kind() == reflect.Struct && f.Type != reflect.TypeOf(time.Duration(0)) {
			out = append(out, keys(f.Type, key)...)
			continue
		}
		out = append(out, key)
	}
	return out
}

func (c *Configuration) Validate() error {
	var errs []error

	if _, err := applog.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.LogFormat != applog.FormatConsole && c.LogFormat != applog.FormatJSON {
		errs = append(errs, fmt.Errorf("invalid log format: %s", c.LogFormat))
	}
	if c.Server.ServerMode != ServerModeDev && c.Server.ServerMode != ServerModeProd {
		errs = append(errs, fmt.Errorf("invalid server mode: %s", c.Server.ServerMode))
	}
	if _, err := inventory.ParseMode(c.Inventory.Mode); err != nil {
		errs = append(errs, err)
	}
	if _, err := inventory.LayoutByName(c.Inventory.Layout); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Checks(); err != nil {
		errs = append(errs, err)
	}
	if c.NumWorkers < 1 {
		errs = append(errs, fmt.Errorf("numWorkers must be at least 1, got %d", c.NumWorkers))
	}
	if c.Auth.Enabled && c.Auth.Secret == "" {
		errs = append(errs, errors.New("auth.secret is required when auth is enabled"))
	}

	return errors.Join(errs...)
}

// Checks resolves the suite's check names, defaulting to every check.
func (c *Configuration) Checks() ([]compliance.Check, error) {
	if len(c.Suite.Checks) == 0 {
		return append([]compliance.Check(nil), compliance.AllChecks...), nil
	}
	checks := make([]compliance.Check, 0, len(c.Suite.Checks))
	for _, name := range c.Suite.Checks {
		check, err := compliance.ParseCheck(name)
		if err != nil {
			return nil, err
		}
		checks = append(checks, check)
	}
	return checks, nil
}

// Redacted returns a copy safe to log.
func (c Configuration) Redacted() Configuration {
	if c.VCenter.Password != "" {
		c.VCenter.Password = redacted
	}
	if c.Backup.Password != "" {
		c.Backup.Password = redacted
	}
	if c.Auth.Secret != "" {
		c.Auth.Secret = redacted
	}
	return c
}
