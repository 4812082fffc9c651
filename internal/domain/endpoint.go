package domain

import (
	"fmt"
	"strings"
)

type ConnectionState string

const (
	StateDisconnected ConnectionState = "disconnected"
	StateConnecting   ConnectionState = "connecting"
	StateConnected    ConnectionState = "connected"
)

// Endpoint addresses one controlled console plus the backend server that
// performs the actual file work on it.
type Endpoint struct {
	ConsoleIP      string
	BackendBaseURL string
}

func (e Endpoint) Normalized() Endpoint {
	return Endpoint{
		ConsoleIP:      strings.TrimSpace(e.ConsoleIP),
		BackendBaseURL: strings.TrimSpace(e.BackendBaseURL),
	}
}

func (e Endpoint) Validate() error {
	if strings.TrimSpace(e.ConsoleIP) == "" {
		return fmt.Errorf("console ip is required: %w", ErrInvalidConfiguration)
	}
	if strings.TrimSpace(e.BackendBaseURL) == "" {
		return fmt.Errorf("backend url is required: %w", ErrInvalidConfiguration)
	}

	return nil
}

const (
	DefaultConsoleIPPrefix = "192.168.1."
	DefaultBackendBaseURL  = "http://192.168.1.100:5000"
	DefaultSourceFirmware  = "10.01"
	DefaultTargetFirmware  = "7.61"
)

// Preferences is the persisted local configuration: where to reach the
// console and which firmware pair setup operations translate between.
type Preferences struct {
	Endpoint       Endpoint
	SourceFirmware string
	TargetFirmware string
}

func DefaultPreferences() Preferences {
	return Preferences{
		Endpoint: Endpoint{
			ConsoleIP:      DefaultConsoleIPPrefix,
			BackendBaseURL: DefaultBackendBaseURL,
		},
		SourceFirmware: DefaultSourceFirmware,
		TargetFirmware: DefaultTargetFirmware,
	}
}
