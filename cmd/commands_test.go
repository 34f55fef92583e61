package cmd

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nimbusctl/nimbus/internal/config"
	"github.com/nimbusctl/nimbus/pkg/api"
	"github.com/nimbusctl/nimbus/pkg/types"
)

// fakeService counts requests against the backend contract.
type fakeService struct {
	mu sync.Mutex

	deployments []types.Deployment

	listCalls      int
	getCalls       int
	createCalls    int
	syncCalls      int
	terminateCalls int

	createErr  error
	syncErrFor map[string]error

	lastCreate api.DeployRequest
}

func (f *fakeService) ListDeployments(ctx context.Context) ([]types.Deployment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	return f.deployments, nil
}

func (f *fakeService) GetDeployment(ctx context.Context, id string) (*types.Deployment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls++
	for i := range f.deployments {
		if f.deployments[i].ID == id {
			return &f.deployments[i], nil
		}
	}
	return nil, &api.APIError{StatusCode: 404, Message: "Deployment not found"}
}

func (f *fakeService) CreateDeployment(ctx context.Context, req api.DeployRequest) (*api.DeployResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	f.lastCreate = req
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &api.DeployResponse{Success: true, Message: "Instance i-new launched successfully!"}, nil
}

func (f *fakeService) SyncDeployment(ctx context.Context, id string) (*types.Deployment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.syncCalls++
	if err, ok := f.syncErrFor[id]; ok {
		return nil, err
	}
	for i := range f.deployments {
		if f.deployments[i].ID == id {
			return &f.deployments[i], nil
		}
	}
	return nil, &api.APIError{StatusCode: 404, Message: "Deployment not found"}
}

func (f *fakeService) TerminateDeployment(ctx context.Context, id string) (*api.TerminateResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.terminateCalls++
	return &api.TerminateResponse{Success: true, Message: "Instance termination initiated"}, nil
}

func (f *fakeService) Health(ctx context.Context) (*api.HealthCheck, error) {
	return &api.HealthCheck{Status: "healthy", Database: "connected"}, nil
}

func newFake() *fakeService {
	return &fakeService{
		deployments: []types.Deployment{
			{ID: "1", InstanceName: "web1", Status: types.StatusRunning, InstanceType: "t2.micro", AMIID: "ami-x"},
			{ID: "2", InstanceName: "web2", Status: types.StatusPending, InstanceType: "t2.micro", AMIID: "ami-x"},
			{ID: "3", InstanceName: "db1", Status: types.StatusTerminated, InstanceType: "t3.small", AMIID: "ami-y"},
		},
	}
}

func useTempConfig(t *testing.T) {
	t.Helper()
	t.Setenv("NBS_CONFIG", filepath.Join(t.TempDir(), "nimbus.yaml"))
}

func TestRunDeploy(t *testing.T) {
	useTempConfig(t)
	fake := newFake()
	var out strings.Builder

	req := api.DeployRequest{
		InstanceName: "web9",
		InstanceType: "t3.small",
		AMIID:        "ami-0abc123",
		KeyName:      "prod-key",
	}
	require.NoError(t, runDeploy(context.Background(), fake, req, &out))

	// Exactly one create with those exact values, then exactly one reload
	assert.Equal(t, 1, fake.createCalls)
	assert.Equal(t, req, fake.lastCreate)
	assert.Equal(t, 1, fake.listCalls)
	assert.Contains(t, out.String(), "launched successfully")
	assert.Contains(t, out.String(), "web1")

	// Type/AMI retained for the next form; name and key are not
	it, ami := config.GetFormDefaults()
	assert.Equal(t, "t3.small", it)
	assert.Equal(t, "ami-0abc123", ami)
}

func TestRunDeployFailure(t *testing.T) {
	useTempConfig(t)
	fake := newFake()
	fake.createErr = &api.APIError{StatusCode: 500, Message: "InsufficientInstanceCapacity"}
	var out strings.Builder

	err := runDeploy(context.Background(), fake, api.DeployRequest{InstanceName: "web9"}, &out)
	require.Error(t, err)

	// Backend error text surfaced verbatim, no reload, no defaults saved
	assert.Contains(t, err.Error(), "deploy failed")
	assert.Contains(t, err.Error(), "InsufficientInstanceCapacity")
	assert.Equal(t, 0, fake.listCalls)

	it, ami := config.GetFormDefaults()
	assert.Empty(t, it)
	assert.Empty(t, ami)
}

func TestDeployRefusesFormWithoutTerminal(t *testing.T) {
	useTempConfig(t)

	orig := stdinIsTerminal
	stdinIsTerminal = func() bool { return false }
	t.Cleanup(func() { stdinIsTerminal = orig })

	deployName, deployKey = "web1", ""
	t.Cleanup(func() { deployName, deployKey = "", "" })

	// Scripted invocation with a missing flag must error out instead of
	// launching the interactive form
	err := runDeployCmd(deployCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--key")
}

func TestRunDeployFailureGenericFallback(t *testing.T) {
	useTempConfig(t)
	fake := newFake()
	fake.createErr = &api.APIError{StatusCode: 500}
	var out strings.Builder

	err := runDeploy(context.Background(), fake, api.DeployRequest{}, &out)
	require.Error(t, err)
	assert.Equal(t, "deploy failed: request failed with status 500", err.Error())
}

func TestRunSyncAllIndependentRequests(t *testing.T) {
	fake := newFake()
	fake.syncErrFor = map[string]error{
		"2": &api.APIError{StatusCode: 500, Message: "instance vanished"},
	}
	var out strings.Builder

	require.NoError(t, runSyncAll(context.Background(), fake, &out))

	// One sync per loaded item regardless of individual outcomes
	assert.Equal(t, 3, fake.syncCalls)
	assert.Contains(t, out.String(), "instance vanished")
	assert.Contains(t, out.String(), "Synced 2/3 deployments")
	// Initial load plus post-fanout refresh
	assert.Equal(t, 2, fake.listCalls)
}

func TestRunSyncAllEmpty(t *testing.T) {
	fake := &fakeService{}
	var out strings.Builder

	require.NoError(t, runSyncAll(context.Background(), fake, &out))
	assert.Equal(t, 0, fake.syncCalls)
	assert.Contains(t, out.String(), "No deployments to sync")
}

func TestRunSyncOne(t *testing.T) {
	fake := newFake()
	var out strings.Builder

	require.NoError(t, runSyncOne(context.Background(), fake, "1", &out))
	assert.Equal(t, 1, fake.syncCalls)
	assert.Contains(t, out.String(), "Synced deployment 1")
}

func TestRunSyncOneFailure(t *testing.T) {
	fake := newFake()
	var out strings.Builder

	err := runSyncOne(context.Background(), fake, "99", &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sync failed")
}

func TestRunTerminateConfirmed(t *testing.T) {
	fake := newFake()
	var out strings.Builder

	confirmed := func(*types.Deployment) bool { return true }
	require.NoError(t, runTerminate(context.Background(), fake, "1", confirmed, &out))

	assert.Equal(t, 1, fake.terminateCalls)
	assert.Equal(t, 1, fake.listCalls)
	assert.Contains(t, out.String(), "termination initiated")
}

func TestRunTerminateDeclined(t *testing.T) {
	fake := newFake()
	var out strings.Builder

	declined := func(*types.Deployment) bool { return false }
	require.NoError(t, runTerminate(context.Background(), fake, "1", declined, &out))

	// No request without confirmation
	assert.Equal(t, 0, fake.terminateCalls)
	assert.Contains(t, out.String(), "Aborted")
}

func TestRunTerminateGuardsTerminalStates(t *testing.T) {
	fake := newFake()
	var out strings.Builder

	confirmCalled := false
	confirm := func(*types.Deployment) bool {
		confirmCalled = true
		return true
	}

	// Deployment 3 is already terminated: no prompt, no request
	require.NoError(t, runTerminate(context.Background(), fake, "3", confirm, &out))
	assert.False(t, confirmCalled)
	assert.Equal(t, 0, fake.terminateCalls)
	assert.Contains(t, out.String(), "already terminated")
}

func TestRunTerminateUnknownID(t *testing.T) {
	fake := newFake()
	var out strings.Builder

	err := runTerminate(context.Background(), fake, "99", func(*types.Deployment) bool { return true }, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "terminate failed")
	assert.Equal(t, 0, fake.terminateCalls)
}
