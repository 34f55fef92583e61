package ui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nimbusctl/nimbus/pkg/types"
)

func testDeployments() []types.Deployment {
	return []types.Deployment{
		{ID: "1", InstanceName: "web1", Status: types.StatusRunning, InstanceType: "t2.micro", LaunchTime: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "2", InstanceName: "web2", Status: types.StatusTerminating, InstanceType: "t2.micro"},
		{ID: "3", InstanceName: "db1", Status: types.StatusTerminated, InstanceType: "t3.small"},
	}
}

func sendKey(m SelectorModel, k tea.KeyType) SelectorModel {
	updated, _ := m.Update(tea.KeyMsg{Type: k})
	return updated.(SelectorModel)
}

func TestSelectorTerminateAction(t *testing.T) {
	m := NewSelectorModel(testDeployments())

	m = sendKey(m, tea.KeyCtrlX)
	require.NotNil(t, m.selected)
	assert.Equal(t, "1", m.selected.ID)
	assert.Equal(t, DeploymentActionTerminate, m.action)
	assert.True(t, m.quitting)
}

func TestSelectorActionsInertOnTerminalRows(t *testing.T) {
	// Cursor on the terminating record: sync and terminate are disabled
	m := NewSelectorModel(testDeployments())
	m = sendKey(m, tea.KeyDown)

	m = sendKey(m, tea.KeyCtrlX)
	assert.Nil(t, m.selected)
	assert.False(t, m.quitting)

	m = sendKey(m, tea.KeyCtrlS)
	assert.Nil(t, m.selected)
	assert.False(t, m.quitting)

	// Same for the terminated record
	m = sendKey(m, tea.KeyDown)
	m = sendKey(m, tea.KeyCtrlX)
	assert.Nil(t, m.selected)
}

func TestSelectorSyncAction(t *testing.T) {
	m := NewSelectorModel(testDeployments())

	m = sendKey(m, tea.KeyCtrlS)
	require.NotNil(t, m.selected)
	assert.Equal(t, "1", m.selected.ID)
	assert.Equal(t, DeploymentActionSync, m.action)
}

func TestSelectorEnterSelectsDetails(t *testing.T) {
	m := NewSelectorModel(testDeployments())

	m = sendKey(m, tea.KeyDown)
	m = sendKey(m, tea.KeyEnter)
	require.NotNil(t, m.selected)
	assert.Equal(t, "2", m.selected.ID)
	assert.Equal(t, DeploymentActionDetails, m.action)
}

func TestSelectorFilter(t *testing.T) {
	m := NewSelectorModel(testDeployments())

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("db")})
	m = updated.(SelectorModel)

	require.Len(t, m.filtered, 1)
	assert.Equal(t, "db1", m.filtered[0].InstanceName)

	// Backspace restores the full list
	m = sendKey(m, tea.KeyBackspace)
	m = sendKey(m, tea.KeyBackspace)
	assert.Len(t, m.filtered, 3)
}

func TestSelectorCancel(t *testing.T) {
	m := NewSelectorModel(testDeployments())
	m = sendKey(m, tea.KeyEsc)
	assert.True(t, m.cancelled)
	assert.Nil(t, m.selected)

	// Dismissal maps to the sentinel so callers can tell it apart from
	// real selector failures
	_, _, err := m.result()
	assert.ErrorIs(t, err, ErrCancelled)
}

func TestSelectorResultCarriesSelection(t *testing.T) {
	m := NewSelectorModel(testDeployments())
	m = sendKey(m, tea.KeyEnter)

	d, action, err := m.result()
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, "1", d.ID)
	assert.Equal(t, DeploymentActionDetails, action)
}
