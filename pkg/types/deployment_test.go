package types

import (
	"encoding/json"
	"testing"
)

func TestLifecyclePredicates(t *testing.T) {
	tcs := map[string]struct {
		status       DeploymentStatus
		canTerminate bool
	}{
		"pending":     {StatusPending, true},
		"running":     {StatusRunning, true},
		"terminating": {StatusTerminating, false},
		"terminated":  {StatusTerminated, false},
		// Unknown provider states keep actions enabled
		"stopped":       {DeploymentStatus("stopped"), true},
		"shutting-down": {DeploymentStatus("shutting-down"), true},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			d := Deployment{Status: tc.status}
			if got := d.CanTerminate(); got != tc.canTerminate {
				t.Errorf("CanTerminate() = %t, want %t", got, tc.canTerminate)
			}
			// Sync and terminate are disabled by the same terminal-state guard
			if got := d.CanSync(); got != tc.canTerminate {
				t.Errorf("CanSync() = %t, want %t", got, tc.canTerminate)
			}
			if got := d.IsTerminal(); got == tc.canTerminate {
				t.Errorf("IsTerminal() = %t, want %t", got, !tc.canTerminate)
			}
		})
	}
}

func TestDeploymentDecode(t *testing.T) {
	raw := `{"id":"1","instance_name":"web1","status":"running","instance_id":"i-abc","instance_type":"t2.micro","ami_id":"ami-x","launch_time":"2024-01-01T00:00:00Z"}`

	var d Deployment
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if d.ID != "1" || d.InstanceName != "web1" || d.InstanceID != "i-abc" {
		t.Errorf("unexpected identity fields: %+v", d)
	}
	if d.Status != StatusRunning {
		t.Errorf("Status = %q, want running", d.Status)
	}
	if d.InstanceType != "t2.micro" || d.AMIID != "ami-x" {
		t.Errorf("unexpected provisioning fields: %+v", d)
	}
	if d.PublicIP != "" || d.PrivateIP != "" {
		t.Errorf("IPs should stay empty when absent, got %q/%q", d.PublicIP, d.PrivateIP)
	}
	if d.LaunchTime.IsZero() {
		t.Error("launch_time not decoded")
	}
	if !d.CanTerminate() {
		t.Error("running deployment must allow terminate")
	}
}

func TestDeploymentDecodeNumericID(t *testing.T) {
	// The backend stores ids as integers and emits them as JSON numbers
	raw := `{"id":42,"instance_name":"web1","status":"pending","instance_type":"t2.micro","ami_id":"ami-x","launch_time":"2024-01-01T00:00:00Z"}`

	var d Deployment
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if d.ID != "42" {
		t.Errorf("ID = %q, want \"42\"", d.ID)
	}
	if d.InstanceName != "web1" || d.Status != StatusPending {
		t.Errorf("sibling fields lost in decode: %+v", d)
	}
}
