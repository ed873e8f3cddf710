package elkm1

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gwww/elkm1/conn"
	"github.com/gwww/elkm1/message"
)

func TestNewWiresEveryCollection(t *testing.T) {
	e, err := New("elk://panel.example:2101")
	require.NoError(t, err)

	assert.NotNil(t, e.Panel)
	require.NotNil(t, e.Zones.Get(0))
	require.NotNil(t, e.Areas.Get(0))
	require.NotNil(t, e.Lights.Get(0))
	require.NotNil(t, e.Outputs.Get(0))
	require.NotNil(t, e.Keypads.Get(0))
	require.NotNil(t, e.Thermostats.Get(0))
	require.NotNil(t, e.Counters.Get(0))
	require.NotNil(t, e.Settings.Get(0))
	require.NotNil(t, e.Tasks.Get(0))
	require.NotNil(t, e.Users.Get(0))
	assert.Equal(t, "Zone-001", e.Zones.Get(0).Name())
}

func TestSyncSentinelFiresExactlyOnce(t *testing.T) {
	e, err := New("elk://panel.example:2101")
	require.NoError(t, err)

	var completions int
	e.AddHandler(message.EventSyncComplete, func(string, any) { completions++ })

	e.handleConnEvent(conn.Event{Kind: conn.EventConnected})
	assert.Equal(t, 0, completions, "sync_complete must not fire before the ua(0) sentinel echoes back")

	// Sentinel echo.
	e.notifier.Notify(string(message.CodeUA), message.UserAreas{User: 0})
	assert.Equal(t, 1, completions)

	// Application-level UA traffic (non-zero user) must never have
	// triggered completion, and a second ua(0) (e.g. from a later manual
	// sync) must not retrigger it either since the one-shot handler
	// detached itself.
	e.notifier.Notify(string(message.CodeUA), message.UserAreas{User: 5})
	e.notifier.Notify(string(message.CodeUA), message.UserAreas{User: 0})
	assert.Equal(t, 1, completions, "sync_complete must fire exactly once per sync() call")
}

func TestInstallerExitRearmsSyncSentinel(t *testing.T) {
	e, err := New("elk://panel.example:2101")
	require.NoError(t, err)

	var completions int
	e.AddHandler(message.EventSyncComplete, func(string, any) { completions++ })

	e.handleConnEvent(conn.Event{Kind: conn.EventConnected})
	e.notifier.Notify(string(message.CodeUA), message.UserAreas{User: 0})
	assert.Equal(t, 1, completions)

	e.notifier.Notify(string(message.CodeIE), message.InstallerExit{})
	e.notifier.Notify(string(message.CodeUA), message.UserAreas{User: 0})
	assert.Equal(t, 2, completions, "an installer-exit triggered resync must complete exactly once more")
}

func TestNonTLSLoginSynthesizedOnFirstVN(t *testing.T) {
	e, err := New("elk://panel.example:2101")
	require.NoError(t, err)

	var events []bool
	e.AddHandler(message.EventLogin, func(_ string, data any) {
		ev := data.(message.LoginEvent)
		events = append(events, ev.Succeeded)
	})

	e.notifier.Notify(string(message.CodeVN), message.Version{MainFirmware: "5.2.0", XEPFirmware: "2.0.0"})
	require.Len(t, events, 1)
	assert.True(t, events[0])

	// A second VN must not re-synthesize login.
	e.notifier.Notify(string(message.CodeVN), message.Version{MainFirmware: "5.2.0", XEPFirmware: "2.0.0"})
	assert.Len(t, events, 1)
}

func TestTLSSchemeDoesNotSynthesizeLogin(t *testing.T) {
	e, err := New("elks://panel.example:2601")
	require.NoError(t, err)

	var called bool
	e.AddHandler(message.EventLogin, func(string, any) { called = true })

	e.notifier.Notify(string(message.CodeVN), message.Version{})
	assert.False(t, called, "a TLS scheme already has an explicit login banner and must not synthesize one")
}

func TestFailedLoginDisconnects(t *testing.T) {
	e, err := New("elk://panel.example:2101")
	require.NoError(t, err)

	e.notifier.Notify(message.EventLogin, message.LoginEvent{Succeeded: false})
	assert.False(t, e.IsConnected())
}

func TestRemoteProgrammingPausesAndResumes(t *testing.T) {
	e, err := New("elk://panel.example:2101")
	require.NoError(t, err)

	e.notifier.Notify(string(message.CodeRP), message.RemoteProgramming{Status: message.RPConnected})
	assert.Equal(t, message.RPConnected, e.Panel.RPStatus)

	e.notifier.Notify(string(message.CodeRP), message.RemoteProgramming{Status: message.RPDisconnected})
	assert.Equal(t, message.RPDisconnected, e.Panel.RPStatus)
}
