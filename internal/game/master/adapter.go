package master

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// ErrMalformedRecords is returned when a raw master table is not a JSON array.
var ErrMalformedRecords = errors.New("master records must be a JSON array")

// GearRecord is one flat row of the raw gear table.
type GearRecord struct {
	ID         int
	Name       string
	CategoryID int
	Icon       int
	Improvable bool
	GearStats
}

// ShipRecord is one flat row of the raw ship table.
type ShipRecord struct {
	ID            int
	SortID        int
	Name          string
	ShipTypeID    int
	ShipClassID   int
	Slots         []int
	MaxHP         StatBound
	Firepower     StatBound
	Torpedo       StatBound
	AntiAir       StatBound
	Armor         StatBound
	Asw           StatBound
	Los           StatBound
	Evasion       StatBound
	Luck          StatBound
	Speed         int
	Range         int
	RemodelTarget int
}

// Adapter turns raw records into MasterGear and MasterShip values using the
// lookup tables it was built with.
type Adapter struct {
	categories  map[int]Category
	shipTypes   map[int]ShipType
	gearAttrIDs map[GearAttr]map[int]bool
	shipAttrIDs map[ShipAttr]map[int]bool
}

// NewAdapter resolves t into lookup maps.
//
// Postcondition: Returns a non-nil Adapter or an error naming the first
// unresolvable key.
func NewAdapter(t Tables) (*Adapter, error) {
	a := &Adapter{
		categories:  make(map[int]Category, len(defaultCategoryIDs)),
		shipTypes:   make(map[int]ShipType),
		gearAttrIDs: make(map[GearAttr]map[int]bool),
		shipAttrIDs: make(map[ShipAttr]map[int]bool),
	}
	for id, c := range defaultCategoryIDs {
		a.categories[id] = c
	}
	for id, key := range t.CategoryIDs {
		c, ok := ParseCategory(key)
		if !ok {
			return nil, fmt.Errorf("category id %d: unknown category %q", id, key)
		}
		a.categories[id] = c
	}
	for st := DE; st <= AO; st++ {
		a.shipTypes[int(st)] = st
	}
	for id, key := range t.ShipTypes {
		st, ok := ParseShipType(key)
		if !ok {
			return nil, fmt.Errorf("ship type id %d: unknown ship type %q", id, key)
		}
		a.shipTypes[id] = st
	}
	for key, ids := range t.GearAttributeIDs {
		attr, ok := ParseGearAttr(key)
		if !ok {
			return nil, fmt.Errorf("gear attribute %q is unknown", key)
		}
		a.gearAttrIDs[attr] = idSet(ids)
	}
	for key, ids := range t.ShipAttributeIDs {
		attr, ok := ParseShipAttr(key)
		if !ok {
			return nil, fmt.Errorf("ship attribute %q is unknown", key)
		}
		a.shipAttrIDs[attr] = idSet(ids)
	}
	return a, nil
}

func idSet(ids []int) map[int]bool {
	out := make(map[int]bool, len(ids))
	for _, id := range ids {
		out[id] = true
	}
	return out
}

// Gear builds the immutable specification for r.
//
// Postcondition: Category is CategoryUnknown when r.CategoryID is not in the table.
func (a *Adapter) Gear(r GearRecord) *MasterGear {
	g := &MasterGear{
		ID:         r.ID,
		Name:       r.Name,
		Category:   a.categories[r.CategoryID],
		Icon:       r.Icon,
		Improvable: r.Improvable,
		GearStats:  r.GearStats,
	}
	deriveGearAttrs(g, a.gearAttrIDs)
	return g
}

// Ship builds the immutable specification for r.
func (a *Adapter) Ship(r ShipRecord) *MasterShip {
	s := &MasterShip{
		ID:            r.ID,
		SortID:        r.SortID,
		Name:          r.Name,
		Type:          a.shipTypes[r.ShipTypeID],
		Class:         ShipClass(r.ShipClassID),
		Slots:         append([]int(nil), r.Slots...),
		MaxHP:         r.MaxHP,
		Firepower:     r.Firepower,
		Torpedo:       r.Torpedo,
		AntiAir:       r.AntiAir,
		Armor:         r.Armor,
		Asw:           r.Asw,
		Los:           r.Los,
		Evasion:       r.Evasion,
		Luck:          r.Luck,
		Speed:         r.Speed,
		Range:         r.Range,
		RemodelTarget: r.RemodelTarget,
	}
	deriveShipAttrs(s, a.shipAttrIDs)
	return s
}

// ParseGearRecords reads a JSON array of flat gear rows.
//
// Precondition: data is a JSON array of objects.
// Postcondition: Returns one record per array element or ErrMalformedRecords.
func ParseGearRecords(data []byte) ([]GearRecord, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("gears: %w", ErrMalformedRecords)
	}
	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		return nil, fmt.Errorf("gears: %w", ErrMalformedRecords)
	}
	var out []GearRecord
	root.ForEach(func(_, v gjson.Result) bool {
		out = append(out, GearRecord{
			ID:         int(v.Get("id").Int()),
			Name:       v.Get("name").String(),
			CategoryID: int(v.Get("category").Int()),
			Icon:       int(v.Get("icon").Int()),
			Improvable: v.Get("improvable").Bool(),
			GearStats: GearStats{
				Firepower:    int(v.Get("firepower").Int()),
				Torpedo:      int(v.Get("torpedo").Int()),
				AntiAir:      int(v.Get("antiAir").Int()),
				Bombing:      int(v.Get("bombing").Int()),
				Asw:          int(v.Get("asw").Int()),
				Los:          int(v.Get("los").Int()),
				Accuracy:     int(v.Get("accuracy").Int()),
				Evasion:      int(v.Get("evasion").Int()),
				Interception: int(v.Get("interception").Int()),
				AntiBomber:   int(v.Get("antiBomber").Int()),
				Armor:        int(v.Get("armor").Int()),
				Speed:        int(v.Get("speed").Int()),
				Range:        int(v.Get("range").Int()),
				Radius:       int(v.Get("radius").Int()),
			},
		})
		return true
	})
	return out, nil
}

// ParseShipRecords reads a JSON array of flat ship rows. Stat bounds are
// two-element arrays whose elements may be null.
//
// Precondition: data is a JSON array of objects.
// Postcondition: Returns one record per array element or ErrMalformedRecords.
func ParseShipRecords(data []byte) ([]ShipRecord, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("ships: %w", ErrMalformedRecords)
	}
	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		return nil, fmt.Errorf("ships: %w", ErrMalformedRecords)
	}
	var out []ShipRecord
	root.ForEach(func(_, v gjson.Result) bool {
		var slots []int
		v.Get("slots").ForEach(func(_, s gjson.Result) bool {
			slots = append(slots, int(s.Int()))
			return true
		})
		out = append(out, ShipRecord{
			ID:            int(v.Get("id").Int()),
			SortID:        int(v.Get("sortId").Int()),
			Name:          v.Get("name").String(),
			ShipTypeID:    int(v.Get("shipType").Int()),
			ShipClassID:   int(v.Get("shipClass").Int()),
			Slots:         slots,
			MaxHP:         parseBound(v.Get("maxHp")),
			Firepower:     parseBound(v.Get("firepower")),
			Torpedo:       parseBound(v.Get("torpedo")),
			AntiAir:       parseBound(v.Get("antiAir")),
			Armor:         parseBound(v.Get("armor")),
			Asw:           parseBound(v.Get("asw")),
			Los:           parseBound(v.Get("los")),
			Evasion:       parseBound(v.Get("evasion")),
			Luck:          parseBound(v.Get("luck")),
			Speed:         int(v.Get("speed").Int()),
			Range:         int(v.Get("range").Int()),
			RemodelTarget: int(v.Get("remodelTo").Int()),
		})
		return true
	})
	return out, nil
}

func parseBound(r gjson.Result) StatBound {
	if !r.IsArray() {
		return StatBound{}
	}
	arr := r.Array()
	var b StatBound
	if len(arr) > 0 && arr[0].Type == gjson.Number {
		v := int(arr[0].Int())
		b.Min = &v
	}
	if len(arr) > 1 && arr[1].Type == gjson.Number {
		v := int(arr[1].Int())
		b.Max = &v
	}
	return b
}
