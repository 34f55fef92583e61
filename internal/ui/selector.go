package ui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/nimbusctl/nimbus/pkg/types"
)

// ErrCancelled is returned when the user dismisses an interactive screen.
// Callers treat it as a no-op, not a failure.
var ErrCancelled = errors.New("cancelled")

// DeploymentAction represents the action to take on the selected deployment.
type DeploymentAction int

const (
	DeploymentActionDetails DeploymentAction = iota
	DeploymentActionSync
	DeploymentActionTerminate
)

const (
	listHeight       = 8
	detailLabelWidth = 13
	minWidth         = 60
	maxWidth         = 120

	colWidthID     = 8
	colWidthStatus = 14
	colWidthType   = 11
	// cursor(3) + ID(8) + sp(2) + Status(14) + sp(2) + Type(11) + sp(2) = 42
	fixedWidth = 3 + colWidthID + 2 + colWidthStatus + 2 + colWidthType + 2
)

// SelectorModel is the bubbletea model for interactive deployment selection.
type SelectorModel struct {
	deployments  []types.Deployment
	filtered     []types.Deployment
	cursor       int
	offset       int
	search       string
	selected     *types.Deployment
	action       DeploymentAction
	quitting     bool
	cancelled    bool
	termWidth    int
	contentWidth int
	colWidths    []int // [ID, Status, Type, Name]
}

// NewSelectorModel creates a new deployment selector model.
func NewSelectorModel(deployments []types.Deployment) SelectorModel {
	m := SelectorModel{
		deployments: deployments,
		filtered:    deployments,
		termWidth:   80,
	}
	m.calculateWidths()
	return m
}

func (m *SelectorModel) calculateWidths() {
	m.contentWidth = m.termWidth - 2
	if m.contentWidth < minWidth {
		m.contentWidth = minWidth
	}
	if m.contentWidth > maxWidth {
		m.contentWidth = maxWidth
	}

	nameWidth := m.contentWidth - fixedWidth
	if nameWidth < 10 {
		nameWidth = 10
	}
	m.colWidths = []int{colWidthID, colWidthStatus, colWidthType, nameWidth}
}

// Init implements tea.Model.
func (m SelectorModel) Init() tea.Cmd {
	return tea.WindowSize()
}

// Update implements tea.Model.
func (m SelectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.calculateWidths()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			m.cancelled = true
			return m, tea.Quit

		case tea.KeyEnter:
			if len(m.filtered) > 0 {
				selected := m.filtered[m.cursor]
				m.selected = &selected
				m.action = DeploymentActionDetails
				m.quitting = true
				return m, tea.Quit
			}

		case tea.KeyUp:
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}

		case tea.KeyDown:
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
				if m.cursor >= m.offset+listHeight {
					m.offset = m.cursor - listHeight + 1
				}
			}

		case tea.KeyCtrlS:
			// Inert for records already terminating or terminated
			if len(m.filtered) > 0 && m.filtered[m.cursor].CanSync() {
				selected := m.filtered[m.cursor]
				m.selected = &selected
				m.action = DeploymentActionSync
				m.quitting = true
				return m, tea.Quit
			}

		case tea.KeyCtrlX:
			if len(m.filtered) > 0 && m.filtered[m.cursor].CanTerminate() {
				selected := m.filtered[m.cursor]
				m.selected = &selected
				m.action = DeploymentActionTerminate
				m.quitting = true
				return m, tea.Quit
			}

		case tea.KeyBackspace:
			if len(m.search) > 0 {
				m.search = m.search[:len(m.search)-1]
				m.filterDeployments()
			}

		case tea.KeyRunes:
			m.search += string(msg.Runes)
			m.filterDeployments()
		}
	}

	return m, nil
}

func (m *SelectorModel) filterDeployments() {
	if m.search == "" {
		m.filtered = m.deployments
	} else {
		query := strings.ToLower(m.search)
		m.filtered = nil
		for _, d := range m.deployments {
			if strings.Contains(strings.ToLower(d.InstanceName), query) ||
				strings.Contains(strings.ToLower(d.ID), query) ||
				strings.Contains(strings.ToLower(d.InstanceID), query) ||
				strings.Contains(strings.ToLower(string(d.Status)), query) {
				m.filtered = append(m.filtered, d)
			}
		}
	}
	if m.cursor >= len(m.filtered) {
		if len(m.filtered) > 0 {
			m.cursor = len(m.filtered) - 1
		} else {
			m.cursor = 0
		}
	}
	m.offset = 0
}

// View implements tea.Model.
func (m SelectorModel) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	w := m.contentWidth

	// Top border
	sb.WriteString(BorderStyle.Render(TopLeft))
	sb.WriteString(BorderStyle.Render(strings.Repeat(Horizontal, w)))
	sb.WriteString(BorderStyle.Render(TopRight))
	sb.WriteString("\n")

	// Search input
	searchLine := " > " + m.search
	sb.WriteString(BorderStyle.Render(Vertical))
	sb.WriteString(NameStyle.Render(padRight(searchLine, w)))
	sb.WriteString(BorderStyle.Render(Vertical))
	sb.WriteString("\n")

	// Empty line after search
	sb.WriteString(BorderStyle.Render(Vertical))
	sb.WriteString(strings.Repeat(" ", w))
	sb.WriteString(BorderStyle.Render(Vertical))
	sb.WriteString("\n")

	// Deployment list
	visibleEnd := m.offset + listHeight
	if visibleEnd > len(m.filtered) {
		visibleEnd = len(m.filtered)
	}

	for i := m.offset; i < visibleEnd; i++ {
		sb.WriteString(m.renderRow(i))
	}

	// Fill remaining lines if list is short
	for i := len(m.filtered); i < m.offset+listHeight; i++ {
		sb.WriteString(BorderStyle.Render(Vertical))
		sb.WriteString(strings.Repeat(" ", w))
		sb.WriteString(BorderStyle.Render(Vertical))
		sb.WriteString("\n")
	}

	// Separator
	sb.WriteString(BorderStyle.Render(LeftT))
	sb.WriteString(BorderStyle.Render(strings.Repeat(Horizontal, w)))
	sb.WriteString(BorderStyle.Render(RightT))
	sb.WriteString("\n")

	// Details panel
	sb.WriteString(m.renderDetailsPanel())

	// Bottom border
	sb.WriteString(BorderStyle.Render(BottomLeft))
	sb.WriteString(BorderStyle.Render(strings.Repeat(Horizontal, w)))
	sb.WriteString(BorderStyle.Render(BottomRight))
	sb.WriteString("\n")

	// Status bar
	sb.WriteString(m.renderStatusBar())

	return sb.String()
}

func (m SelectorModel) renderRow(idx int) string {
	var sb strings.Builder
	d := m.filtered[idx]
	w := m.contentWidth

	sb.WriteString(BorderStyle.Render(Vertical))

	var line strings.Builder
	plainWidth := 0

	if idx == m.cursor {
		line.WriteString(" > ")
	} else {
		line.WriteString("   ")
	}
	plainWidth += 3

	// ID column
	idText := padRight(d.ID, m.colWidths[0])
	line.WriteString(IDStyle.Render(idText))
	line.WriteString("  ")
	plainWidth += m.colWidths[0] + 2

	// Status column
	status := string(d.Status)
	statusText := padRight(StatusIndicator(status)+" "+status, m.colWidths[1])
	line.WriteString(StatusStyle(status).Render(statusText))
	line.WriteString("  ")
	plainWidth += m.colWidths[1] + 2

	// Type column
	typeText := padRight(d.InstanceType, m.colWidths[2])
	line.WriteString(TypeStyle.Render(typeText))
	line.WriteString("  ")
	plainWidth += m.colWidths[2] + 2

	// Name column
	nameText := padRight(d.InstanceName, m.colWidths[3])
	line.WriteString(NameStyle.Render(nameText))
	plainWidth += m.colWidths[3]

	if plainWidth < w {
		line.WriteString(strings.Repeat(" ", w-plainWidth))
	}

	sb.WriteString(line.String())
	sb.WriteString(BorderStyle.Render(Vertical))
	sb.WriteString("\n")

	return sb.String()
}

func (m SelectorModel) renderDetailsPanel() string {
	var sb strings.Builder
	w := m.contentWidth

	sb.WriteString(BorderStyle.Render(Vertical))
	sb.WriteString(HeaderStyle.Render(padRight(" Deployment Details", w)))
	sb.WriteString(BorderStyle.Render(Vertical))
	sb.WriteString("\n")

	sb.WriteString(BorderStyle.Render(Vertical))
	underline := " " + strings.Repeat("─", 20)
	sb.WriteString(MutedStyle.Render(padRight(underline, w)))
	sb.WriteString(BorderStyle.Render(Vertical))
	sb.WriteString("\n")

	if len(m.filtered) == 0 {
		sb.WriteString(BorderStyle.Render(Vertical))
		sb.WriteString(MutedStyle.Render(padRight(" No deployments found", w)))
		sb.WriteString(BorderStyle.Render(Vertical))
		sb.WriteString("\n")

		for i := 0; i < 8; i++ {
			sb.WriteString(BorderStyle.Render(Vertical))
			sb.WriteString(strings.Repeat(" ", w))
			sb.WriteString(BorderStyle.Render(Vertical))
			sb.WriteString("\n")
		}
	} else {
		d := m.filtered[m.cursor]
		status := string(d.Status)

		details := []struct {
			label string
			value string
			style lipgloss.Style
		}{
			{"ID:", d.ID, IDStyle},
			{"Name:", d.InstanceName, NameStyle},
			{"Status:", status, StatusStyle(status)},
			{"Instance:", formatOptional(d.InstanceID), IDStyle},
			{"Type:", d.InstanceType, TypeStyle},
			{"AMI:", d.AMIID, AMIStyle},
			{"Public IP:", formatOptional(d.PublicIP), IPStyle},
			{"Private IP:", formatOptional(d.PrivateIP), IPStyle},
			{"Launched:", formatOptionalTime(d), MutedStyle},
		}

		for _, dt := range details {
			sb.WriteString(BorderStyle.Render(Vertical))

			labelText := padRight(dt.label, detailLabelWidth)
			valueText := dt.value

			maxValueWidth := w - 1 - detailLabelWidth
			if runewidth.StringWidth(valueText) > maxValueWidth {
				valueText = runewidth.Truncate(valueText, maxValueWidth, "...")
			}

			plainWidth := 1 + detailLabelWidth + runewidth.StringWidth(valueText)

			line := MutedStyle.Render(" "+labelText) + dt.style.Render(valueText)
			if plainWidth < w {
				line += strings.Repeat(" ", w-plainWidth)
			}

			sb.WriteString(line)
			sb.WriteString(BorderStyle.Render(Vertical))
			sb.WriteString("\n")
		}
	}

	sb.WriteString(BorderStyle.Render(Vertical))
	sb.WriteString(strings.Repeat(" ", w))
	sb.WriteString(BorderStyle.Render(Vertical))
	sb.WriteString("\n")

	return sb.String()
}

func (m SelectorModel) renderStatusBar() string {
	var sb strings.Builder
	w := m.contentWidth + 2

	countInfo := fmt.Sprintf("  %d/%d deployments", len(m.filtered), len(m.deployments))
	hintsPlain := "[Enter:details] [Ctrl+S:sync] [Ctrl+X:terminate] [Esc:cancel]"

	countWidth := runewidth.StringWidth(countInfo)
	hintsWidth := runewidth.StringWidth(hintsPlain)
	padding := w - countWidth - hintsWidth

	sb.WriteString(countInfo)
	if padding > 0 {
		sb.WriteString(strings.Repeat(" ", padding))
	}
	sb.WriteString(HintStyle.Render(hintsPlain))
	sb.WriteString("\n")

	return sb.String()
}

func formatOptionalTime(d types.Deployment) string {
	if d.LaunchTime.IsZero() {
		return "-"
	}
	return d.LaunchTime.Format("2006-01-02 15:04:05")
}

// result maps the final model state to the selection outcome.
func (m SelectorModel) result() (*types.Deployment, DeploymentAction, error) {
	if m.cancelled {
		return nil, 0, ErrCancelled
	}
	return m.selected, m.action, nil
}

// SelectDeployment displays an interactive selector over the loaded
// deployments and returns the chosen record and action. A dismissed
// selector returns ErrCancelled.
func SelectDeployment(deployments []types.Deployment) (*types.Deployment, DeploymentAction, error) {
	if len(deployments) == 0 {
		return nil, 0, fmt.Errorf("no deployments available")
	}

	m := NewSelectorModel(deployments)
	p := tea.NewProgram(m)

	finalModel, err := p.Run()
	if err != nil {
		return nil, 0, fmt.Errorf("error running selector: %w", err)
	}

	return finalModel.(SelectorModel).result()
}
