// Package analysis evaluates a composed plan: per-ship attack, hit and
// special attack figures against a target, and the fleet aggregates.
package analysis

import (
	"errors"
	"fmt"

	"dario.cat/mergo"

	"github.com/cory-johannsen/fleetcalc/internal/game/antiair"
	"github.com/cory-johannsen/fleetcalc/internal/game/battle"
	"github.com/cory-johannsen/fleetcalc/internal/game/cutin"
	"github.com/cory-johannsen/fleetcalc/internal/game/fleet"
	"github.com/cory-johannsen/fleetcalc/internal/game/master"
	"github.com/cory-johannsen/fleetcalc/internal/game/rules"
	"github.com/cory-johannsen/fleetcalc/internal/game/ship"
)

var (
	// ErrUnknownFleet is returned when the requested fleet key is not f1..f4.
	ErrUnknownFleet = errors.New("unknown fleet")
	// ErrEmptyFleet is returned when the requested fleet has no ships.
	ErrEmptyFleet = errors.New("fleet has no ships")
	// ErrUnknownNode is returned when the requested node is out of range.
	ErrUnknownNode = errors.New("unknown node")
	// ErrUnknownFormation is returned for a formation missing from the rules.
	ErrUnknownFormation = errors.New("unknown formation")
)

// MapBonuses supplies the post-cap map bonus of a ship. A result of 0 or 1
// means no bonus.
type MapBonuses interface {
	MapBonus(s *ship.Ship) float64
}

// Request selects what to analyse within a plan.
type Request struct {
	// Fleet defaults to f1.
	Fleet fleet.FleetKey
	// Formation defaults to line ahead.
	Formation  rules.Formation
	Engagement battle.Engagement
	// AirState overrides the air state derived from fighter power.
	AirState *fleet.AirState
	// Node selects the enemy fleet the attacks are evaluated against.
	Node *int
	// Cn is the effective LoS node factor; 0 means 1.
	Cn float64
	// NightContact asserts that night reconnaissance made contact. It only
	// applies when the fleet carries a night recon plane able to trigger.
	NightContact bool
}

var defaultRequest = Request{
	Fleet:     fleet.FleetKeyAt(0),
	Formation: rules.LineAhead,
	Cn:        1,
}

// Analyzer evaluates plans under one rule set.
type Analyzer struct {
	rules   *rules.Set
	bonuses MapBonuses
}

// New returns an Analyzer. A nil set uses rules.Default; bonuses may be nil.
func New(set *rules.Set, bonuses MapBonuses) *Analyzer {
	if set == nil {
		set = rules.Default()
	}
	return &Analyzer{rules: set, bonuses: bonuses}
}

func (a *Analyzer) mapBonus(s *ship.Ship) float64 {
	if a.bonuses == nil {
		return 0
	}
	b := a.bonuses.MapBonus(s)
	if b == 1 {
		return 0
	}
	return b
}

// normalize fills the zero fields of req from defaultRequest.
func normalize(req Request) (Request, error) {
	if err := mergo.Merge(&req, defaultRequest); err != nil {
		return req, fmt.Errorf("normalizing request: %w", err)
	}
	return req, nil
}

// enemy is the resolved opposing fleet of a request.
type enemy struct {
	fleet     *fleet.Fleet
	formation rules.Formation
	target    *battle.Combatant
}

func (a *Analyzer) enemyOf(p *fleet.Plan, req Request) (*enemy, error) {
	if req.Node == nil {
		return nil, nil
	}
	i := *req.Node
	if i < 0 || i >= len(p.Nodes) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownNode, i)
	}
	n := p.Nodes[i]
	if n.Enemy == nil || n.Enemy.Len() == 0 {
		return nil, nil
	}
	formation := rules.Formation(n.Formation)
	if formation == "" {
		formation = rules.LineAhead
	}
	if _, ok := a.rules.Formation(formation); !ok {
		return nil, fmt.Errorf("%w: node %d: %q", ErrUnknownFormation, i, formation)
	}
	cs := battle.Combatants(n.Enemy, battle.FleetSpec{Side: battle.Enemy, Formation: formation})
	return &enemy{fleet: n.Enemy, formation: formation, target: &cs[0]}, nil
}

// Analyze evaluates the requested fleet of p.
//
// Precondition: p must be non-nil.
// Postcondition: Returns a Report with one ShipReport per occupied position,
// or an error wrapping one of the package sentinels.
func (a *Analyzer) Analyze(p *fleet.Plan, req Request) (*Report, error) {
	req, err := normalize(req)
	if err != nil {
		return nil, err
	}
	f := p.Fleet(req.Fleet)
	if f == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFleet, req.Fleet)
	}
	if f.Len() == 0 {
		return nil, fmt.Errorf("%w: %q", ErrEmptyFleet, req.Fleet)
	}
	form, ok := a.rules.Formation(req.Formation)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormation, req.Formation)
	}
	en, err := a.enemyOf(p, req)
	if err != nil {
		return nil, err
	}

	state := fleet.AirStateOf(f.FighterPower(), 0)
	if en != nil {
		state = fleet.AirStateOf(f.FighterPower(), en.fleet.FighterPower())
	}
	if req.AirState != nil {
		state = *req.AirState
	}

	report := &Report{
		Plan: p.Name,
		Fleet: FleetReport{
			Key:            string(req.Fleet),
			Formation:      string(req.Formation),
			Engagement:     req.Engagement.String(),
			AirState:       state.String(),
			FighterPower:   f.FighterPower(),
			AntiAir:        f.AntiAir(form.FleetAntiAir, false),
			LosModifier:    f.LosModifier(),
			EffectiveLos:   f.EffectiveLos(req.Cn, p.HQLevel),
			ContactTrigger: cutin.ContactTriggerRate(f, state),
			NightContact:   cutin.NightContactRate(f, state),
			Contact:        cutin.Contact(f, state),
			AntiAirCutins:  antiair.FleetRates(f),
		},
	}
	if en != nil {
		report.Target = &TargetReport{
			ID:        en.target.Ship.ID,
			Name:      en.target.Ship.Name,
			Formation: string(en.formation),
		}
	}

	ctx := shipContext{
		calc:     battle.NewCalculator(a.rules, req.Engagement),
		airState: state,
		losMod:   f.LosModifier(),
		contact:  req.NightContact && report.Fleet.NightContact > 0,
		fleetAA:  report.Fleet.AntiAir,
		night: cutin.NightInput{
			OwnSearchlight: hasGear(f, master.GearSearchlight),
			OwnStarShell:   hasGear(f, master.GearStarShell),
		},
	}
	if en != nil {
		ctx.target = en.target
		ctx.night.EnemySearchlight = hasGear(en.fleet, master.GearSearchlight)
		ctx.night.EnemyStarShell = hasGear(en.fleet, master.GearStarShell)
	}

	entries := f.Entries()
	for i, c := range battle.Combatants(f, battle.FleetSpec{Side: battle.Player, Formation: req.Formation}) {
		report.Ships = append(report.Ships, a.analyzeShip(ctx, string(entries[i].Key), c))
	}

	for i, ab := range p.Airbases {
		if ab == nil || len(ab.Equipment.Gears()) == 0 {
			continue
		}
		report.Airbases = append(report.Airbases, AirbaseReport{
			Key:             string(fleet.AirbaseKeyAt(i)),
			Mode:            string(ab.Mode),
			FighterPower:    ab.FighterPower(),
			AirDefensePower: ab.AirDefensePower(),
			Radius:          ab.Radius(),
		})
	}
	return report, nil
}

func hasGear(f *fleet.Fleet, attr master.GearAttr) bool {
	for _, s := range f.Ships() {
		if s.Has(attr) {
			return true
		}
	}
	return false
}

// shipContext is the per-request state shared by every ship analysis.
type shipContext struct {
	calc     *battle.Calculator
	airState fleet.AirState
	losMod   int
	contact  bool
	fleetAA  float64
	night    cutin.NightInput
	target   *battle.Combatant
}

func statsOf(s *ship.Ship) Stats {
	return Stats{
		HP:        s.Health.Max,
		Firepower: s.Firepower.Total(),
		Torpedo:   s.Torpedo.Total(),
		AntiAir:   s.AntiAir.Total(),
		Armor:     s.Armor.Total(),
		Asw:       s.Asw.Total(),
		Los:       s.Los.Total(),
		Evasion:   s.Evasion.Total(),
		Luck:      s.Luck.Total(),
		Accuracy:  s.Accuracy.Total(),
		Speed:     s.Speed,
		Range:     s.Range,
	}
}

func (a *Analyzer) analyzeShip(ctx shipContext, key string, c battle.Combatant) ShipReport {
	s := c.Ship
	bonus := a.mapBonus(s)
	r := ShipReport{
		Key:             key,
		ID:              s.ID,
		Name:            s.Name,
		Level:           s.Level,
		Stats:           statsOf(s),
		DamageState:     s.DamageState().String(),
		Morale:          s.Morale,
		Invalid:         s.InvalidSlots,
		MapBonus:        bonus,
		FighterPower:    s.Equipment.FighterPower(),
		AdjustedAntiAir: s.AdjustedAntiAir(),
		DayCutins: cutin.Day(a.rules, s, cutin.DayInput{
			AirState: ctx.airState,
			FleetLos: ctx.losMod,
			Flagship: c.Position.Flagship(),
		}),
		AntiAirCutins: antiair.ShipRates(s),
	}
	r.ShootDown = shootDownOf(r.AdjustedAntiAir, ctx.fleetAA, c.Position, r.AntiAirCutins)
	night := ctx.night
	night.Flagship = c.Position.Flagship()
	r.NightCutins = cutin.Night(a.rules, s, night)

	if ctx.target == nil {
		return r
	}
	def := *ctx.target
	opt := battle.Options{MapBonus: bonus}

	if def.Ship.Is(master.ShipSubmarine) {
		if s.Asw.Total() > 0 {
			atk := ctx.calc.Asw(c, def, opt)
			r.Asw = &atk
		}
		return r
	}

	if !s.Is(master.ShipSubmarine) {
		atk := ctx.calc.Shelling(c, def, opt)
		r.Shelling = &atk
		for _, e := range r.DayCutins.Entries() {
			sd, ok := a.rules.DaySpecial(e.Type)
			if !ok {
				continue
			}
			o := opt
			o.Special = &sd
			r.DaySpecials = append(r.DaySpecials, SpecialAttack[rules.DayAttack]{
				Type: e.Type, Rate: e.Rate, Attack: ctx.calc.Shelling(c, def, o),
			})
		}
	}
	if s.Torpedo.Total() > 0 && !s.Is(master.ShipCarrier) {
		atk := ctx.calc.Torpedo(c, def, opt)
		r.Torpedo = &atk
	}
	if cutin.CanAttackAtNight(s) {
		nopt := opt
		nopt.Contact = ctx.contact
		nopt.StarShell = ctx.night.OwnStarShell
		nopt.Searchlight = ctx.night.OwnSearchlight
		atk := ctx.calc.Night(c, def, nopt)
		r.Night = &atk
		for _, e := range r.NightCutins.Entries() {
			sd, ok := a.rules.NightSpecial(e.Type)
			if !ok {
				continue
			}
			o := nopt
			o.Special = &sd
			r.NightSpecials = append(r.NightSpecials, SpecialAttack[rules.NightAttack]{
				Type: e.Type, Rate: e.Rate, Attack: ctx.calc.Night(c, def, o),
			})
		}
	}
	return r
}

// shootDownOf evaluates the shoot-down of a ship at pos without a cutin and
// under the most likely cutin of rates.
func shootDownOf(adjusted, fleetAA float64, pos battle.Position, rates *cutin.RateMap[int]) ShootDownReport {
	in := antiair.Input{
		AdjustedAntiAir: adjusted,
		FleetAntiAir:    fleetAA,
		Side:            pos.Side,
		Combined:        antiair.CombinedModifier(pos),
	}
	r := ShootDownReport{Base: antiair.Calculate(in)}
	var top *cutin.Entry[int]
	for _, e := range rates.Entries() {
		if top == nil || e.Rate > top.Rate {
			top = &e
		}
	}
	if top == nil {
		return r
	}
	def, ok := antiair.Lookup(top.Type)
	if !ok {
		return r
	}
	in.Cutin = &def
	r.Cutin = &CutinShootDown{ID: def.ID, Rate: top.Rate, ShootDown: antiair.Calculate(in)}
	return r
}
