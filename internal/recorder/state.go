// Package recorder stores viewing sessions: every committed turn, the phases
// reached and a small JSON state file for resuming.
package recorder

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// AppState represents the persistent application state.
type AppState struct {
	ActiveSessionID   string `json:"active_session_id,omitempty"`
	LastCube          string `json:"last_cube,omitempty"`
	LastDeviceAddress string `json:"last_device_address,omitempty"`
	LastDeviceName    string `json:"last_device_name,omitempty"`
}

// StateFile manages the application state file.
type StateFile struct {
	path  string
	state AppState
}

// DefaultStatePath returns the state file path inside a config directory.
func DefaultStatePath(configDir string) string {
	return filepath.Join(configDir, "state.json")
}

// NewStateFile creates a state file manager, loading the file if present.
func NewStateFile(path string) (*StateFile, error) {
	sf := &StateFile{path: path}

	if err := sf.Load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	return sf, nil
}

// Load loads the state from disk.
func (sf *StateFile) Load() error {
	data, err := os.ReadFile(sf.path)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, &sf.state); err != nil {
		return fmt.Errorf("failed to parse state file %s: %w", sf.path, err)
	}
	return nil
}

// Save saves the state to disk.
func (sf *StateFile) Save() error {
	data, err := json.MarshalIndent(sf.state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(sf.path), 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	if err := os.WriteFile(sf.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}

	return nil
}

// State returns the current state.
func (sf *StateFile) State() AppState {
	return sf.state
}

// SetActiveSession sets the active session ID.
func (sf *StateFile) SetActiveSession(sessionID string) error {
	sf.state.ActiveSessionID = sessionID
	return sf.Save()
}

// ClearActiveSession clears the active session ID and remembers the final
// cube.
func (sf *StateFile) ClearActiveSession(lastCube string) error {
	sf.state.ActiveSessionID = ""
	sf.state.LastCube = lastCube
	return sf.Save()
}

// SetLastDevice sets the last connected device.
func (sf *StateFile) SetLastDevice(address, name string) error {
	sf.state.LastDeviceAddress = address
	sf.state.LastDeviceName = name
	return sf.Save()
}

// HasActiveSession returns true if a session was left open.
func (sf *StateFile) HasActiveSession() bool {
	return sf.state.ActiveSessionID != ""
}

// ActiveSessionID returns the active session ID.
func (sf *StateFile) ActiveSessionID() string {
	return sf.state.ActiveSessionID
}

// LastDeviceAddress returns the last connected device address.
func (sf *StateFile) LastDeviceAddress() string {
	return sf.state.LastDeviceAddress
}
