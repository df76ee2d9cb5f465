package faction

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Faction is a parliamentary group of the German Bundestag.
// The set of values is closed; the data attached to each value lives in the
// lookup tables of registry.go.
type Faction int

const (
	CDUCSU Faction = iota
	SPD
	DieLinke
	Gruene
	AfD
	FDP
	Fraktionslos
	// Legacy marks historical or unrecognised factions.
	Legacy
)

var ErrUnknownFaction = errors.New("unknown faction")

// All returns every faction in registry order.
func All() []Faction {
	return []Faction{CDUCSU, SPD, DieLinke, Gruene, AfD, FDP, Fraktionslos, Legacy}
}

// ID returns the stable short code of the faction (F000, F001, ...).
func (f Faction) ID() string {
	return fmt.Sprintf("F%03d", int(f))
}

// Name returns the canonical display name.
func (f Faction) Name() string {
	if names, ok := alternativeNames[f]; ok && len(names) > 0 {
		return names[0]
	}
	return "Unbekannt"
}

func (f Faction) String() string {
	return f.Name()
}

func (f Faction) Valid() bool {
	return f >= CDUCSU && f <= Legacy
}

// FromID is the inverse of ID.
func FromID(id string) (Faction, error) {
	for _, f := range All() {
		if f.ID() == id {
			return f, nil
		}
	}
	return Legacy, fmt.Errorf("%w: %q", ErrUnknownFaction, id)
}

func (f Faction) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.ID())
}

func (f *Faction) UnmarshalJSON(data []byte) error {
	var id string
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	parsed, err := FromID(id)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
