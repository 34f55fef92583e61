package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nimbusctl/nimbus/pkg/api"
)

// Form field indices
const (
	fieldName = iota
	fieldType
	fieldAMI
	fieldKey
	fieldCount
)

const formContentWidth = 56

var formLabels = [fieldCount]string{"Instance Name", "Instance Type", "AMI ID", "Key Pair"}

// FormModel is the bubbletea model for the deploy form. All four fields are
// required; type and AMI carry defaults so only name and key need typing.
type FormModel struct {
	values    [fieldCount]string
	focus     int
	quitting  bool
	cancelled bool
	submitted bool
}

// NewFormModel creates a deploy form pre-filled with the given instance
// type and AMI. Empty defaults fall back to t2.micro and the stock AMI.
func NewFormModel(defaultType, defaultAMI string) FormModel {
	if defaultType == "" {
		defaultType = "t2.micro"
	}
	if defaultAMI == "" {
		defaultAMI = "ami-0c55b159cbfafe1f0"
	}

	m := FormModel{}
	m.values[fieldType] = defaultType
	m.values[fieldAMI] = defaultAMI
	return m
}

// Request returns the deploy request built from the form state.
func (m FormModel) Request() api.DeployRequest {
	return api.DeployRequest{
		InstanceName: m.values[fieldName],
		InstanceType: m.values[fieldType],
		AMIID:        m.values[fieldAMI],
		KeyName:      m.values[fieldKey],
	}
}

// Submitted reports whether the form was submitted with all fields set.
func (m FormModel) Submitted() bool {
	return m.submitted
}

// Cancelled reports whether the form was dismissed.
func (m FormModel) Cancelled() bool {
	return m.cancelled
}

// complete returns true when every field is non-empty.
func (m FormModel) complete() bool {
	for _, v := range m.values {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}

// firstEmpty returns the index of the first empty field.
func (m FormModel) firstEmpty() int {
	for i, v := range m.values {
		if strings.TrimSpace(v) == "" {
			return i
		}
	}
	return fieldCount - 1
}

// Init implements tea.Model.
func (m FormModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			m.cancelled = true
			return m, tea.Quit

		case tea.KeyEnter:
			if m.complete() {
				m.submitted = true
				m.quitting = true
				return m, tea.Quit
			}
			// Jump to the first field still missing input
			m.focus = m.firstEmpty()

		case tea.KeyTab, tea.KeyDown:
			m.focus = (m.focus + 1) % fieldCount

		case tea.KeyShiftTab, tea.KeyUp:
			m.focus = (m.focus + fieldCount - 1) % fieldCount

		case tea.KeyBackspace:
			v := m.values[m.focus]
			if len(v) > 0 {
				m.values[m.focus] = v[:len(v)-1]
			}

		case tea.KeyRunes:
			m.values[m.focus] += string(msg.Runes)

		case tea.KeySpace:
			m.values[m.focus] += " "
		}
	}

	return m, nil
}

// View implements tea.Model.
func (m FormModel) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	w := formContentWidth

	// Top border
	sb.WriteString(BorderStyle.Render(TopLeft))
	sb.WriteString(BorderStyle.Render(strings.Repeat(Horizontal, w)))
	sb.WriteString(BorderStyle.Render(TopRight))
	sb.WriteString("\n")

	// Title
	sb.WriteString(BorderStyle.Render(Vertical))
	sb.WriteString(HeaderStyle.Render(padRight(" Deploy New Instance", w)))
	sb.WriteString(BorderStyle.Render(Vertical))
	sb.WriteString("\n")

	// Separator
	sb.WriteString(BorderStyle.Render(LeftT))
	sb.WriteString(BorderStyle.Render(strings.Repeat(Horizontal, w)))
	sb.WriteString(BorderStyle.Render(RightT))
	sb.WriteString("\n")

	// Fields
	for i := 0; i < fieldCount; i++ {
		sb.WriteString(BorderStyle.Render(Vertical))

		cursor := "  "
		if i == m.focus {
			cursor = " >"
		}

		label := padRight(formLabels[i]+":", 16)
		value := m.values[i]
		if i == m.focus {
			value += "▏"
		}

		line := cursor + " " + label + value
		if i == m.focus {
			sb.WriteString(NameStyle.Render(padRight(line, w)))
		} else {
			sb.WriteString(MutedStyle.Render(padRight(line, w)))
		}

		sb.WriteString(BorderStyle.Render(Vertical))
		sb.WriteString("\n")
	}

	// Bottom border
	sb.WriteString(BorderStyle.Render(BottomLeft))
	sb.WriteString(BorderStyle.Render(strings.Repeat(Horizontal, w)))
	sb.WriteString(BorderStyle.Render(BottomRight))
	sb.WriteString("\n")

	// Status bar
	sb.WriteString(HintStyle.Render("  [Tab:next field] [Enter:deploy] [Esc:cancel]"))
	sb.WriteString("\n")

	return sb.String()
}

// RunDeployForm displays the interactive deploy form and returns the
// submitted request, or ErrCancelled when the form was dismissed.
func RunDeployForm(defaultType, defaultAMI string) (*api.DeployRequest, error) {
	m := NewFormModel(defaultType, defaultAMI)
	p := tea.NewProgram(m)

	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("error running deploy form: %w", err)
	}

	result := finalModel.(FormModel)
	if result.cancelled {
		return nil, ErrCancelled
	}

	req := result.Request()
	return &req, nil
}
