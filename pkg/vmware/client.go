package vmware

import (
	"context"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/vmware/govmomi"
	"go.uber.org/zap"

	srvErrors "github.com/kubev2v/infra-validator/pkg/errors"
)

const (
	DefaultPort = 443
	clientName  = "vcenter client"
)

// Credentials identify a vCenter endpoint and the account used to log in.
type Credentials struct {
	Host     string `json:"host" yaml:"host" mapstructure:"host"`
	Username string `json:"username" yaml:"username" mapstructure:"username"`
	Password string `json:"-" yaml:"-" mapstructure:"password"`
	Port     int    `json:"port" yaml:"port" mapstructure:"port" default:"443"`
	Insecure bool   `json:"insecure" yaml:"insecure" mapstructure:"insecure" default:"true"`
}

func (c Credentials) validate() error {
	for _, f := range []struct{ name, value string }{
		{"vcenter host", c.Host},
		{"vcenter username", c.Username},
		{"vcenter password", c.Password},
	} {
		if missing(f.value) {
			return srvErrors.NewMissingCredentialError(f.name)
		}
	}
	return nil
}

func (c Credentials) url() *url.URL {
	port := c.Port
	if port == 0 {
		port = DefaultPort
	}
	return &url.URL{
		Scheme: "https",
		Host:   net.JoinHostPort(c.Host, strconv.Itoa(port)),
		Path:   "/sdk",
		User:   url.UserPassword(c.Username, c.Password),
	}
}

func missing(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || strings.EqualFold(s, "N/A")
}

// Client is a logged-in vCenter session. Each Client owns its session;
// call Disconnect to release it.
type Client struct {
	gc         *govmomi.Client
	endpoint   string
	username   string
	sessionKey string
}

// Connect logs in to vCenter.
func Connect(ctx context.Context, creds Credentials) (*Client, error) {
	if err := creds.validate(); err != nil {
		return nil, err
	}

	u := creds.url()
	endpoint := u.Host
	logger := zap.S().Named("vcenter")

	gc, err := govmomi.NewClient(ctx, u, creds.Insecure)
	if err != nil {
		logger.Errorw("failed to connect to vCenter", "endpoint", endpoint, "error", err)
		return nil, srvErrors.NewConnectionError(endpoint, err)
	}

	c := &Client{gc: gc, endpoint: endpoint, username: creds.Username}

	session, err := gc.SessionManager.UserSession(ctx)
	if err != nil {
		_ = gc.Logout(ctx)
		return nil, srvErrors.NewConnectionError(endpoint, err)
	}
	if session != nil {
		c.sessionKey = session.Key
	}

	logger.Infow("connected to vCenter", "endpoint", endpoint, "user", creds.Username)

	return c, nil
}

// Disconnect logs out and releases the session. It is safe to call twice.
func (c *Client) Disconnect(ctx context.Context) error {
	if c.gc == nil {
		return nil
	}
	err := c.gc.Logout(ctx)
	c.gc = nil
	c.sessionKey = ""
	if err != nil {
		zap.S().Named("vcenter").Warnw("error disconnecting from vCenter", "endpoint", c.endpoint, "error", err)
		return err
	}
	zap.S().Named("vcenter").Infow("disconnected from vCenter", "endpoint", c.endpoint)
	return nil
}

func (c *Client) SessionKey() string {
	return c.sessionKey
}

func (c *Client) Endpoint() string {
	return c.endpoint
}

// Verify checks the session is still active and returns the product name of
// the endpoint.
func (c *Client) Verify(ctx context.Context) (string, error) {
	if err := c.connected(); err != nil {
		return "", err
	}
	session, err := c.gc.SessionManager.UserSession(ctx)
	if err != nil {
		return "", srvErrors.NewConnectionError(c.endpoint, err)
	}
	if session == nil {
		return "", srvErrors.NewNotConnectedError(clientName)
	}
	return c.gc.ServiceContent.About.FullName, nil
}

func (c *Client) connected() error {
	if c == nil || c.gc == nil {
		return srvErrors.NewNotConnectedError(clientName)
	}
	return nil
}
