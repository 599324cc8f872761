package test

import (
	"context"
	"sync"

	"github.com/kubev2v/infra-validator/pkg/compliance"
	srvErrors "github.com/kubev2v/infra-validator/pkg/errors"
)

// MockInfraSource implements services.InfraSource and
// services.PrivilegeValidator for testing. Records are keyed by host name.
type MockInfraSource struct {
	Members       map[string][]string
	Assignments   map[string][]compliance.VMAssignment
	Capacity      map[string][]compliance.DatastoreCapacity
	Tiers         map[string][]compliance.DatastoreTier
	Subscriptions map[string][]compliance.DatastoreSubscription
	// Err is returned by every query when set.
	Err error
	// PrivilegeErr is returned by ValidateRootPrivileges.
	PrivilegeErr error

	mu    sync.Mutex
	calls []string
}

// NewMockInfraSource creates a MockInfraSource with no records.
func NewMockInfraSource() *MockInfraSource {
	return &MockInfraSource{
		Members:       map[string][]string{},
		Assignments:   map[string][]compliance.VMAssignment{},
		Capacity:      map[string][]compliance.DatastoreCapacity{},
		Tiers:         map[string][]compliance.DatastoreTier{},
		Subscriptions: map[string][]compliance.DatastoreSubscription{},
	}
}

// Calls returns the names of the methods called, in order.
func (m *MockInfraSource) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *MockInfraSource) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, name)
}

func (m *MockInfraSource) FindHostInCluster(_ context.Context, cluster, host string) (bool, error) {
	m.record("FindHostInCluster")
	if m.Err != nil {
		return false, m.Err
	}
	members, ok := m.Members[cluster]
	if !ok {
		return false, srvErrors.NewClusterNotFoundError(cluster)
	}
	for _, h := range members {
		if h == host {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockInfraSource) VMDatastoreAssignments(_ context.Context, host string) ([]compliance.VMAssignment, error) {
	m.record("VMDatastoreAssignments")
	return m.Assignments[host], m.Err
}

func (m *MockInfraSource) DatastoreCapacity(_ context.Context, host string) ([]compliance.DatastoreCapacity, error) {
	m.record("DatastoreCapacity")
	return m.Capacity[host], m.Err
}

func (m *MockInfraSource) DatastorePerformanceTiers(_ context.Context, host string) ([]compliance.DatastoreTier, error) {
	m.record("DatastorePerformanceTiers")
	return m.Tiers[host], m.Err
}

func (m *MockInfraSource) DatastoreSubscription(_ context.Context, host string) ([]compliance.DatastoreSubscription, error) {
	m.record("DatastoreSubscription")
	return m.Subscriptions[host], m.Err
}

func (m *MockInfraSource) ValidateRootPrivileges(_ context.Context, _ []string) error {
	m.record("ValidateRootPrivileges")
	return m.PrivilegeErr
}
