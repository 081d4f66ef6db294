// Package deck reads and writes the Deck4 JSON format used by fleet
// planning tools to share an order of battle.
package deck

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"

	"github.com/tidwall/gjson"
)

// Version is the only deck format version this package reads and writes.
const Version = 4

var (
	// ErrUnsupportedVersion is returned for a deck whose version is not 4.
	ErrUnsupportedVersion = errors.New("unsupported deck version")
	// ErrMalformed is returned for input that is not a deck object.
	ErrMalformed = errors.New("malformed deck")
)

// Airbase modes as numbered by the deck format.
const (
	ModeStandby    = 0
	ModeSortie     = 1
	ModeAirDefense = 2
)

// Item is one equipped gear.
type Item struct {
	ID int `json:"id"`
	// Rf is the improvement level.
	Rf int `json:"rf,omitempty"`
	// Mas is the proficiency ace level; nil when not recorded.
	Mas *int `json:"mas,omitempty"`
}

// Ship is one fleet position. Luck, HP and ASW are displayed naked values
// and are nil when the deck leaves them at their defaults.
type Ship struct {
	ID    int             `json:"id"`
	Lv    int             `json:"lv"`
	Luck  *int            `json:"luck,omitempty"`
	HP    *int            `json:"hp,omitempty"`
	Asw   *int            `json:"asw,omitempty"`
	Items map[string]Item `json:"items"`
}

// Fleet is one fleet keyed s1..s7.
type Fleet struct {
	Name  string
	Ships map[string]Ship
}

// Airbase is one land-based air group keyed i1..i4.
type Airbase struct {
	Mode     int             `json:"mode"`
	Distance int             `json:"distance,omitempty"`
	Items    map[string]Item `json:"items"`
}

// Deck is a decoded Deck4 document.
type Deck struct {
	HQLevel  int
	Fleets   map[string]Fleet
	Airbases map[string]Airbase
}

var (
	fleetKey   = regexp.MustCompile(`^f[1-4]$`)
	airbaseKey = regexp.MustCompile(`^a[1-3]$`)
	shipKey    = regexp.MustCompile(`^s[1-7]$`)
	itemKey    = regexp.MustCompile(`^(i[1-5]|ix)$`)
)

// Parse decodes a Deck4 document. Unknown top-level and fleet keys are
// ignored; a ship or item without a positive id is malformed.
//
// Postcondition: Returns a non-nil Deck or an error wrapping ErrMalformed or
// ErrUnsupportedVersion.
func Parse(data []byte) (*Deck, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrMalformed)
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: not an object", ErrMalformed)
	}
	if v := root.Get("version"); v.Int() != Version {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedVersion, v.String())
	}

	d := &Deck{
		HQLevel:  int(root.Get("hqlv").Int()),
		Fleets:   make(map[string]Fleet),
		Airbases: make(map[string]Airbase),
	}
	var err error
	root.ForEach(func(k, v gjson.Result) bool {
		key := k.String()
		switch {
		case fleetKey.MatchString(key):
			var f Fleet
			if f, err = parseFleet(v); err != nil {
				err = fmt.Errorf("%s: %w", key, err)
				return false
			}
			d.Fleets[key] = f
		case airbaseKey.MatchString(key):
			var a Airbase
			if a, err = parseAirbase(v); err != nil {
				err = fmt.Errorf("%s: %w", key, err)
				return false
			}
			d.Airbases[key] = a
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

func parseFleet(v gjson.Result) (Fleet, error) {
	if !v.IsObject() {
		return Fleet{}, fmt.Errorf("%w: fleet is not an object", ErrMalformed)
	}
	f := Fleet{Name: v.Get("name").String(), Ships: make(map[string]Ship)}
	var err error
	v.ForEach(func(k, sv gjson.Result) bool {
		key := k.String()
		if !shipKey.MatchString(key) {
			return true
		}
		var s Ship
		if s, err = parseShip(sv); err != nil {
			err = fmt.Errorf("%s: %w", key, err)
			return false
		}
		f.Ships[key] = s
		return true
	})
	return f, err
}

// optional returns nil for an absent or negative value.
func optional(v gjson.Result) *int {
	if !v.Exists() || v.Type == gjson.Null {
		return nil
	}
	n := int(v.Int())
	if n < 0 {
		return nil
	}
	return &n
}

func parseShip(v gjson.Result) (Ship, error) {
	id := int(v.Get("id").Int())
	if id <= 0 {
		return Ship{}, fmt.Errorf("%w: ship id %q", ErrMalformed, v.Get("id").String())
	}
	items, err := parseItems(v.Get("items"))
	if err != nil {
		return Ship{}, err
	}
	return Ship{
		ID:    id,
		Lv:    max(int(v.Get("lv").Int()), 1),
		Luck:  optional(v.Get("luck")),
		HP:    optional(v.Get("hp")),
		Asw:   optional(v.Get("asw")),
		Items: items,
	}, nil
}

func parseAirbase(v gjson.Result) (Airbase, error) {
	if !v.IsObject() {
		return Airbase{}, fmt.Errorf("%w: air base is not an object", ErrMalformed)
	}
	items, err := parseItems(v.Get("items"))
	if err != nil {
		return Airbase{}, err
	}
	return Airbase{
		Mode:     int(v.Get("mode").Int()),
		Distance: int(v.Get("distance").Int()),
		Items:    items,
	}, nil
}

func parseItems(v gjson.Result) (map[string]Item, error) {
	items := make(map[string]Item)
	var err error
	v.ForEach(func(k, iv gjson.Result) bool {
		key := k.String()
		if !itemKey.MatchString(key) {
			return true
		}
		id := int(iv.Get("id").Int())
		if id <= 0 {
			err = fmt.Errorf("%w: %s: gear id %q", ErrMalformed, key, iv.Get("id").String())
			return false
		}
		items[key] = Item{ID: id, Rf: int(iv.Get("rf").Int()), Mas: optional(iv.Get("mas"))}
		return true
	})
	return items, err
}

// Marshal encodes d as a Deck4 document.
//
// Precondition: d must be non-nil.
func Marshal(d *Deck) ([]byte, error) {
	doc := map[string]any{
		"version": Version,
		"hqlv":    d.HQLevel,
	}
	for key, f := range d.Fleets {
		fm := map[string]any{"name": f.Name}
		for sk, s := range f.Ships {
			fm[sk] = s
		}
		doc[key] = fm
	}
	for key, a := range d.Airbases {
		doc[key] = a
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding deck: %w", err)
	}
	return out, nil
}
