package backup

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kubev2v/infra-validator/pkg/compliance"
	srvErrors "github.com/kubev2v/infra-validator/pkg/errors"
)

const (
	sessionPath   = "/rest/com/vmware/cis/session"
	sessionHeader = "vmware-api-session-id"
	clientName    = "backup client"
)

type Options struct {
	Server   string        `json:"server" yaml:"server" mapstructure:"server"`
	Username string        `json:"username" yaml:"username" mapstructure:"username"`
	Password string        `json:"-" yaml:"-" mapstructure:"password"`
	Insecure bool          `json:"insecure" yaml:"insecure" mapstructure:"insecure" default:"true"`
	Timeout  time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout" default:"30s"`
	// Provider answers the collectors. Defaults to a StubProvider.
	Provider Provider `json:"-" yaml:"-" mapstructure:"-"`
}

// Client holds a vCenter REST session and collects backup records through
// its Provider.
type Client struct {
	opts       Options
	httpClient *http.Client
	provider   Provider

	mu    sync.RWMutex
	token string
}

func NewClient(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	provider := opts.Provider
	if provider == nil {
		provider = NewStubProvider()
	}
	return &Client{
		opts: opts,
		httpClient: &http.Client{
			Timeout: opts.Timeout,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: opts.Insecure}, //nolint:gosec
			},
		},
		provider: provider,
	}
}

// Connect creates a REST session. Credentials are checked before any request.
func (c *Client) Connect(ctx context.Context) error {
	for _, f := range []struct{ name, value string }{
		{"backup server", c.opts.Server},
		{"backup username", c.opts.Username},
		{"backup password", c.opts.Password},
	} {
		if missing(f.value) {
			return srvErrors.NewMissingCredentialError(f.name)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.sessionURL(), nil)
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.opts.Username, c.opts.Password)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return srvErrors.NewConnectionError(c.opts.Server, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(c.opts.Server, resp); err != nil {
		zap.S().Named("backup").Errorw("failed to create session", "server", c.opts.Server, "status", resp.StatusCode)
		return err
	}

	var body struct {
		Value string `json:"value"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return srvErrors.NewConnectionError(c.opts.Server, fmt.Errorf("invalid session response: %w", err))
	}
	if body.Value == "" {
		return srvErrors.NewConnectionError(c.opts.Server, fmt.Errorf("session response carries no token"))
	}

	c.mu.Lock()
	c.token = body.Value
	c.mu.Unlock()

	zap.S().Named("backup").Infow("connected to backup API", "server", c.opts.Server)

	return nil
}

// Disconnect deletes the REST session. It is a no-op without a session.
func (c *Client) Disconnect(ctx context.Context) error {
	c.mu.Lock()
	token := c.token
	c.token = ""
	c.mu.Unlock()

	if token == "" {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.sessionURL(), nil)
	if err != nil {
		return err
	}
	req.Header.Set(sessionHeader, token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		zap.S().Named("backup").Warnw("error disconnecting from backup API", "server", c.opts.Server, "error", err)
		return srvErrors.NewConnectionError(c.opts.Server, err)
	}
	defer resp.Body.Close()

	return checkStatus(c.opts.Server, resp)
}

func (c *Client) SessionToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) Policies(ctx context.Context, vms []string) ([]compliance.BackupPolicy, error) {
	if err := c.connected(); err != nil {
		return nil, err
	}
	return c.provider.Policies(ctx, vms)
}

func (c *Client) Schedules(ctx context.Context, vms []string) ([]compliance.BackupSchedule, error) {
	if err := c.connected(); err != nil {
		return nil, err
	}
	return c.provider.Schedules(ctx, vms)
}

func (c *Client) Jobs(ctx context.Context, vms []string, lookbackDays int) ([]compliance.BackupJob, error) {
	if err := c.connected(); err != nil {
		return nil, err
	}
	return c.provider.Jobs(ctx, vms, lookbackDays)
}

func (c *Client) Retention(ctx context.Context, vms []string) ([]compliance.RetentionPolicy, error) {
	if err := c.connected(); err != nil {
		return nil, err
	}
	return c.provider.Retention(ctx, vms)
}

func (c *Client) Timestamps(ctx context.Context, vms []string) ([]compliance.BackupTimestamp, error) {
	if err := c.connected(); err != nil {
		return nil, err
	}
	return c.provider.Timestamps(ctx, vms)
}

func (c *Client) Replication(ctx context.Context, vms []string) ([]compliance.OffsiteReplication, error) {
	if err := c.connected(); err != nil {
		return nil, err
	}
	return c.provider.Replication(ctx, vms)
}

func (c *Client) connected() error {
	if c.SessionToken() == "" {
		return srvErrors.NewNotConnectedError(clientName)
	}
	return nil
}

func (c *Client) sessionURL() string {
	server := strings.TrimSuffix(c.opts.Server, "/")
	if !strings.HasPrefix(server, "http://") && !strings.HasPrefix(server, "https://") {
		server = "https://" + server
	}
	return server + sessionPath
}

func checkStatus(server string, resp *http.Response) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusUnauthorized:
		return srvErrors.NewUnauthorizedError(server)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return srvErrors.NewConnectionError(server, fmt.Errorf("unexpected status %s: %s", resp.Status, strings.TrimSpace(string(body))))
	}
}

func missing(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || strings.EqualFold(s, compliance.NA)
}
