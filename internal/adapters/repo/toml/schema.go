package toml

import (
	"fmt"

	"github.com/backpork/backpork-cli/internal/domain"
)

const currentSchemaVersion = 1

type fileSchema struct {
	Version  int            `toml:"version"`
	Console  consoleSchema  `toml:"console"`
	Firmware firmwareSchema `toml:"firmware"`
}

type consoleSchema struct {
	IP         string `toml:"ip"`
	BackendURL string `toml:"backend_url"`
}

type firmwareSchema struct {
	Source string `toml:"source"`
	Target string `toml:"target"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
	if s.Firmware.Source == "" {
		s.Firmware.Source = domain.DefaultSourceFirmware
	}
	if s.Firmware.Target == "" {
		s.Firmware.Target = domain.DefaultTargetFirmware
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported preferences schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

func toSchema(prefs domain.Preferences) fileSchema {
	return fileSchema{
		Version: currentSchemaVersion,
		Console: consoleSchema{
			IP:         prefs.Endpoint.ConsoleIP,
			BackendURL: prefs.Endpoint.BackendBaseURL,
		},
		Firmware: firmwareSchema{
			Source: prefs.SourceFirmware,
			Target: prefs.TargetFirmware,
		},
	}
}

func fromSchema(file fileSchema) domain.Preferences {
	return domain.Preferences{
		Endpoint: domain.Endpoint{
			ConsoleIP:      file.Console.IP,
			BackendBaseURL: file.Console.BackendURL,
		},
		SourceFirmware: file.Firmware.Source,
		TargetFirmware: file.Firmware.Target,
	}
}
