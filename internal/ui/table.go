package ui

import (
	"fmt"
	"strings"

	"github.com/nimbusctl/nimbus/pkg/types"
)

// Column widths: ID, Name, Status, Instance ID, Type, Public IP, Private IP, Launched
var deploymentColumnWidths = []int{6, 22, 14, 20, 11, 15, 15, 17}

var deploymentHeaders = []string{"ID", "Name", "Status", "Instance ID", "Type", "Public IP", "Private IP", "Launched"}

// RenderDeploymentTable renders deployments as a styled box table.
func RenderDeploymentTable(deployments []types.Deployment) string {
	var sb strings.Builder

	// Top border
	sb.WriteString(BorderStyle.Render(TopLeft))
	for i, w := range deploymentColumnWidths {
		sb.WriteString(BorderStyle.Render(strings.Repeat(Horizontal, w+2)))
		if i < len(deploymentColumnWidths)-1 {
			sb.WriteString(BorderStyle.Render(TopT))
		}
	}
	sb.WriteString(BorderStyle.Render(TopRight))
	sb.WriteString("\n")

	// Header row
	sb.WriteString(BorderStyle.Render(Vertical))
	for i, h := range deploymentHeaders {
		cell := " " + padRight(h, deploymentColumnWidths[i]) + " "
		sb.WriteString(HeaderStyle.Render(cell))
		sb.WriteString(BorderStyle.Render(Vertical))
	}
	sb.WriteString("\n")

	// Header separator
	sb.WriteString(BorderStyle.Render(LeftT))
	for i, w := range deploymentColumnWidths {
		sb.WriteString(BorderStyle.Render(strings.Repeat(Horizontal, w+2)))
		if i < len(deploymentColumnWidths)-1 {
			sb.WriteString(BorderStyle.Render(Cross))
		}
	}
	sb.WriteString(BorderStyle.Render(RightT))
	sb.WriteString("\n")

	// Data rows
	for _, d := range deployments {
		sb.WriteString(BorderStyle.Render(Vertical))

		// ID
		cell := " " + padRight(d.ID, deploymentColumnWidths[0]) + " "
		sb.WriteString(IDStyle.Render(cell))
		sb.WriteString(BorderStyle.Render(Vertical))

		// Name
		cell = " " + padRight(d.InstanceName, deploymentColumnWidths[1]) + " "
		sb.WriteString(NameStyle.Render(cell))
		sb.WriteString(BorderStyle.Render(Vertical))

		// Status with indicator
		status := string(d.Status)
		statusText := StatusIndicator(status) + " " + status
		cell = " " + padRight(statusText, deploymentColumnWidths[2]) + " "
		sb.WriteString(StatusStyle(status).Render(cell))
		sb.WriteString(BorderStyle.Render(Vertical))

		// Instance ID
		cell = " " + padRight(formatOptional(d.InstanceID), deploymentColumnWidths[3]) + " "
		sb.WriteString(IDStyle.Render(cell))
		sb.WriteString(BorderStyle.Render(Vertical))

		// Type
		cell = " " + padRight(d.InstanceType, deploymentColumnWidths[4]) + " "
		sb.WriteString(TypeStyle.Render(cell))
		sb.WriteString(BorderStyle.Render(Vertical))

		// Public IP
		cell = " " + padRight(formatOptional(d.PublicIP), deploymentColumnWidths[5]) + " "
		sb.WriteString(IPStyle.Render(cell))
		sb.WriteString(BorderStyle.Render(Vertical))

		// Private IP
		cell = " " + padRight(formatOptional(d.PrivateIP), deploymentColumnWidths[6]) + " "
		sb.WriteString(IPStyle.Render(cell))
		sb.WriteString(BorderStyle.Render(Vertical))

		// Launched
		cell = " " + padRight(formatLaunchTime(d), deploymentColumnWidths[7]) + " "
		sb.WriteString(MutedStyle.Render(cell))
		sb.WriteString(BorderStyle.Render(Vertical))

		sb.WriteString("\n")
	}

	// Bottom border
	sb.WriteString(BorderStyle.Render(BottomLeft))
	for i, w := range deploymentColumnWidths {
		sb.WriteString(BorderStyle.Render(strings.Repeat(Horizontal, w+2)))
		if i < len(deploymentColumnWidths)-1 {
			sb.WriteString(BorderStyle.Render(BottomT))
		}
	}
	sb.WriteString(BorderStyle.Render(BottomRight))
	sb.WriteString("\n")

	// Summary
	sb.WriteString(fmt.Sprintf("  %d deployments\n", len(deployments)))

	return sb.String()
}

// RenderDeploymentDetails renders one deployment as a labelled detail block.
// Optional fields are omitted entirely when absent.
func RenderDeploymentDetails(d *types.Deployment) string {
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString(HeaderStyle.Render("Deployment Details"))
	sb.WriteString("\n")
	sb.WriteString(MutedStyle.Render("───────────────────────────────"))
	sb.WriteString("\n")

	status := string(d.Status)

	sb.WriteString(fmt.Sprintf("  ID:          %s\n", IDStyle.Render(d.ID)))
	sb.WriteString(fmt.Sprintf("  Name:        %s\n", NameStyle.Render(d.InstanceName)))
	sb.WriteString(fmt.Sprintf("  Status:      %s\n", StatusStyle(status).Render(StatusIndicator(status)+" "+status)))
	if d.InstanceID != "" {
		sb.WriteString(fmt.Sprintf("  Instance:    %s\n", IDStyle.Render(d.InstanceID)))
	}
	sb.WriteString(fmt.Sprintf("  Type:        %s\n", d.InstanceType))
	sb.WriteString(fmt.Sprintf("  AMI:         %s\n", AMIStyle.Render(d.AMIID)))
	if d.KeyName != "" {
		sb.WriteString(fmt.Sprintf("  Key:         %s\n", d.KeyName))
	}
	if d.PublicIP != "" {
		sb.WriteString(fmt.Sprintf("  Public IP:   %s\n", IPStyle.Render(d.PublicIP)))
	}
	if d.PrivateIP != "" {
		sb.WriteString(fmt.Sprintf("  Private IP:  %s\n", IPStyle.Render(d.PrivateIP)))
	}
	if d.AZ != "" {
		sb.WriteString(fmt.Sprintf("  AZ:          %s\n", d.AZ))
	}
	if d.VPCID != "" {
		sb.WriteString(fmt.Sprintf("  VPC:         %s\n", MutedStyle.Render(d.VPCID)))
	}
	if d.SubnetID != "" {
		sb.WriteString(fmt.Sprintf("  Subnet:      %s\n", MutedStyle.Render(d.SubnetID)))
	}
	if d.SecurityGroupID != "" {
		sb.WriteString(fmt.Sprintf("  SG:          %s\n", MutedStyle.Render(d.SecurityGroupID)))
	}
	if !d.LaunchTime.IsZero() {
		sb.WriteString(fmt.Sprintf("  Launched:    %s\n", d.LaunchTime.Format("2006-01-02 15:04:05")))
	}

	return sb.String()
}

func formatLaunchTime(d types.Deployment) string {
	if d.LaunchTime.IsZero() {
		return "-"
	}
	return d.LaunchTime.Format("2006-01-02 15:04")
}
