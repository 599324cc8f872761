package v1

import (
	"encoding/json"
	"time"

	"github.com/kubev2v/infra-validator/pkg/compliance"
	"github.com/kubev2v/infra-validator/pkg/inventory"
)

type Health struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

type Error struct {
	Error string `json:"error"`
}

// ValidationRequest is the body of POST /validations/{check}. Thresholds
// fields that are omitted keep the server defaults.
type ValidationRequest struct {
	Records     json.RawMessage       `json:"records" binding:"required"`
	Thresholds  compliance.Thresholds `json:"thresholds"`
	Cluster     string                `json:"cluster,omitempty"`
	RequiredVMs []string              `json:"requiredVms,omitempty"`
	Criticality map[string]string     `json:"criticality,omitempty"`
	Now         *time.Time            `json:"now,omitempty"`
}

type Violation struct {
	Subject  string         `json:"subject"`
	Reason   string         `json:"reason"`
	Severity string         `json:"severity"`
	Details  map[string]any `json:"details,omitempty"`
}

type Report struct {
	Check      string      `json:"check"`
	Passed     bool        `json:"passed"`
	Total      int         `json:"total"`
	Count      int         `json:"count"`
	Critical   int         `json:"critical"`
	Warnings   int         `json:"warnings"`
	Violations []Violation `json:"violations"`
}

type CheckResult struct {
	Check  string  `json:"check"`
	Report *Report `json:"report,omitempty"`
	Error  *string `json:"error,omitempty"`
}

type RunState string

const (
	RunStatePending   RunState = "pending"
	RunStateRunning   RunState = "running"
	RunStateCompleted RunState = "completed"
	RunStateError     RunState = "error"
)

type Run struct {
	Id         string        `json:"id"`
	Suite      string        `json:"suite"`
	State      RunState      `json:"state"`
	Error      *string       `json:"error,omitempty"`
	StartedAt  *time.Time    `json:"startedAt,omitempty"`
	FinishedAt *time.Time    `json:"finishedAt,omitempty"`
	Critical   int           `json:"critical"`
	Warnings   int           `json:"warnings"`
	Errored    int           `json:"errored"`
	Results    []CheckResult `json:"results"`
}

type RunListResponse struct {
	Page      int   `json:"page"`
	PageCount int   `json:"pageCount"`
	Total     int   `json:"total"`
	Runs      []Run `json:"runs"`
}

// ListRunsParams are the query parameters of GET /runs.
type ListRunsParams struct {
	State    []string `form:"state"`
	Check    []string `form:"check"`
	Suite    []string `form:"suite"`
	Page     *int     `form:"page"`
	PageSize *int     `form:"pageSize"`
}

type Host = inventory.HostConfig

type UpsertHostResponse struct {
	Created bool `json:"created"`
	Host    Host `json:"host"`
}
