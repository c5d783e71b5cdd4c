// internal/defs/loader.go
package defs

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"

	"go-paper-airplane/internal/component"
)

// LoadZoneDefinitions reads a JSON array of zones from path.
func LoadZoneDefinitions(path string) ([]component.TurbulenceZone, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read zone definitions file: %w", err)
	}

	var zoneDefs []ZoneDefinition
	if err := json.Unmarshal(file, &zoneDefs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal zone definitions: %w", err)
	}
	if err := validateZones(zoneDefs); err != nil {
		return nil, fmt.Errorf("invalid zone definitions in %s: %w", path, err)
	}

	zones := make([]component.TurbulenceZone, 0, len(zoneDefs))
	for _, def := range zoneDefs {
		zones = append(zones, def.Zone())
	}
	return zones, nil
}

func validateZones(defs []ZoneDefinition) error {
	var result *multierror.Error
	if len(defs) == 0 {
		return errors.New("no zones defined")
	}

	primaries := 0
	seen := make(map[string]bool)
	for i, def := range defs {
		if def.Name == "" {
			result = multierror.Append(result, fmt.Errorf("zone %d: empty name", i))
		} else if seen[def.Name] {
			result = multierror.Append(result, fmt.Errorf("zone %q: duplicate name", def.Name))
		}
		seen[def.Name] = true
		if def.Radius <= 0 {
			result = multierror.Append(result, fmt.Errorf("zone %q: radius must be positive, got %v", def.Name, def.Radius))
		}
		if def.Primary {
			primaries++
		}
	}
	if primaries > 1 {
		result = multierror.Append(result, fmt.Errorf("%d primary zones, at most one allowed", primaries))
	}
	return result.ErrorOrNil()
}
