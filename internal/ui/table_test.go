package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nimbusctl/nimbus/pkg/types"
)

func TestRenderDeploymentTable(t *testing.T) {
	deployments := []types.Deployment{
		{
			ID:           "1",
			InstanceName: "web1",
			Status:       types.StatusRunning,
			InstanceID:   "i-abc",
			InstanceType: "t2.micro",
			AMIID:        "ami-x",
			LaunchTime:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	out := RenderDeploymentTable(deployments)

	assert.Contains(t, out, "web1")
	assert.Contains(t, out, "running")
	assert.Contains(t, out, "i-abc")
	assert.Contains(t, out, "1 deployments")
	// Exactly one data row
	assert.Equal(t, 1, strings.Count(out, "web1"))
}

func TestRenderDeploymentDetailsOmitsAbsentFields(t *testing.T) {
	d := &types.Deployment{
		ID:           "1",
		InstanceName: "web1",
		Status:       types.StatusRunning,
		InstanceType: "t2.micro",
		AMIID:        "ami-x",
	}

	out := RenderDeploymentDetails(d)

	assert.Contains(t, out, "web1")
	assert.NotContains(t, out, "Public IP")
	assert.NotContains(t, out, "Private IP")
	assert.NotContains(t, out, "Launched")

	d.PublicIP = "54.1.2.3"
	d.PrivateIP = "10.0.0.5"
	out = RenderDeploymentDetails(d)
	assert.Contains(t, out, "Public IP")
	assert.Contains(t, out, "54.1.2.3")
	assert.Contains(t, out, "10.0.0.5")
}

func TestConfirm(t *testing.T) {
	tcs := map[string]struct {
		input string
		want  bool
	}{
		"yes":        {"y\n", true},
		"yes word":   {"yes\n", true},
		"uppercase":  {"Y\n", true},
		"no":         {"n\n", false},
		"empty line": {"\n", false},
		"no input":   {"", false},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			var out strings.Builder
			got := Confirm(&out, strings.NewReader(tc.input), "Terminate web1?")
			assert.Equal(t, tc.want, got)
			assert.Contains(t, out.String(), "[y/N]")
		})
	}
}
