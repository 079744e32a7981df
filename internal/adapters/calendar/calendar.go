// Package calendar loads the season fixtures the pool runs against: the
// grand prix calendar and the driver list. Both are plain JSON files
// deployed next to the binary, edited once a season.
package calendar

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/birreros/porra/internal/domain/model"
)

// LoadRaces reads the race calendar. Order in the file is season order
// and is preserved.
func LoadRaces(path string) ([]model.Race, error) {
	if path == "" {
		return nil, ErrNoPath
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read calendar %s: %w", path, err)
	}
	var races []model.Race
	if err := json.Unmarshal(raw, &races); err != nil {
		return nil, fmt.Errorf("decode calendar %s: %w", path, err)
	}
	for i, r := range races {
		if r.Key == "" {
			return nil, fmt.Errorf("%w: race %d has no key", ErrBadCalendar, i)
		}
	}
	return races, nil
}

// LoadDrivers reads the driver list used to validate and display picks.
func LoadDrivers(path string) ([]string, error) {
	if path == "" {
		return nil, ErrNoPath
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read drivers %s: %w", path, err)
	}
	var drivers []string
	if err := json.Unmarshal(raw, &drivers); err != nil {
		return nil, fmt.Errorf("decode drivers %s: %w", path, err)
	}
	return drivers, nil
}
