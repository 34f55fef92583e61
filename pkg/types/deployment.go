package types

import (
	"encoding/json"
	"time"
)

// DeploymentStatus is the lifecycle tag of a deployment. The set is open:
// the backend passes provider state names through on sync, so unknown tags
// must render and round-trip untouched.
type DeploymentStatus string

const (
	StatusPending     DeploymentStatus = "pending"
	StatusRunning     DeploymentStatus = "running"
	StatusTerminating DeploymentStatus = "terminating"
	StatusTerminated  DeploymentStatus = "terminated"
)

// Deployment mirrors one backend record of a provider compute instance.
// The client never owns this state; it is fully replaced on every reload.
type Deployment struct {
	ID           string           `json:"id"`            // Backend identifier, stable across syncs
	InstanceName string           `json:"instance_name"` // User-supplied label
	InstanceType string           `json:"instance_type"` // Immutable after creation
	AMIID        string           `json:"ami_id"`        // Immutable after creation
	KeyName      string           `json:"key_name,omitempty"`
	InstanceID   string           `json:"instance_id,omitempty"` // Provider-assigned once launch succeeds
	Status       DeploymentStatus `json:"status"`
	PublicIP     string           `json:"public_ip,omitempty"`  // Present once networking assigned
	PrivateIP    string           `json:"private_ip,omitempty"` // Present once networking assigned

	// Provider placement details, filled in as the backend learns them
	SecurityGroupID string `json:"security_group_id,omitempty"`
	VPCID           string `json:"vpc_id,omitempty"`
	SubnetID        string `json:"subnet_id,omitempty"`
	AZ              string `json:"az,omitempty"`

	LaunchTime time.Time `json:"launch_time"`
	CreatedAt  time.Time `json:"created_at,omitzero"`
	UpdatedAt  time.Time `json:"updated_at,omitzero"`
}

// UnmarshalJSON accepts the id as a JSON number or string. The backend
// stores ids as integers and emits them as numbers; the client treats
// them as opaque strings either way.
func (d *Deployment) UnmarshalJSON(data []byte) error {
	type alias Deployment
	aux := struct {
		ID json.RawMessage `json:"id"`
		*alias
	}{alias: (*alias)(d)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	d.ID = idString(aux.ID)
	return nil
}

func idString(raw json.RawMessage) string {
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	var n json.Number
	if json.Unmarshal(raw, &n) == nil {
		return n.String()
	}
	return ""
}

// IsTerminal returns true once termination has been requested or completed.
func (d *Deployment) IsTerminal() bool {
	return d.Status == StatusTerminating || d.Status == StatusTerminated
}

// CanTerminate reports whether a terminate request makes sense. Guards
// against double-termination.
func (d *Deployment) CanTerminate() bool {
	return !d.IsTerminal()
}

// CanSync reports whether a sync request makes sense.
func (d *Deployment) CanSync() bool {
	return !d.IsTerminal()
}

// IsRunning returns true if the instance is running.
func (d *Deployment) IsRunning() bool {
	return d.Status == StatusRunning
}
