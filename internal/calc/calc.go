// Package calc is the calculator service shared by the HTTP, gRPC and
// command line surfaces: it imports a Deck4 document, composes the plan and
// runs the analyzer over it.
package calc

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/fleetcalc/internal/analysis"
	"github.com/cory-johannsen/fleetcalc/internal/deck"
	"github.com/cory-johannsen/fleetcalc/internal/game/battle"
	"github.com/cory-johannsen/fleetcalc/internal/game/fleet"
	"github.com/cory-johannsen/fleetcalc/internal/game/master"
	"github.com/cory-johannsen/fleetcalc/internal/game/roll"
	"github.com/cory-johannsen/fleetcalc/internal/game/rules"
	"github.com/cory-johannsen/fleetcalc/internal/game/ship"
)

// MaxTrials bounds the trials of one Sample call.
const MaxTrials = 100000

// ErrInvalidQuery is returned when a query option cannot be resolved.
var ErrInvalidQuery = errors.New("invalid query")

// Query is one analysis request against a Deck4 document.
type Query struct {
	Deck       json.RawMessage   `json:"deck"`
	Fleet      string            `json:"fleet,omitempty"`
	Formation  string            `json:"formation,omitempty"`
	Engagement string            `json:"engagement,omitempty"`
	AirState   string            `json:"air_state,omitempty"`
	Cn         float64           `json:"cn,omitempty"`
	Nodes      []fleet.NodeState `json:"nodes,omitempty"`
	Node       *int              `json:"node,omitempty"`
	// NightContact asserts a night recon contact.
	NightContact bool `json:"night_contact,omitempty"`
}

// Service evaluates queries. It is safe for concurrent use.
type Service struct {
	reg      *master.Registry
	composer *ship.Composer
	analyzer *analysis.Analyzer
	roller   *roll.Roller
	logger   *zap.Logger
}

// New builds a Service.
//
// Precondition: reg, analyzer, src and logger must be non-nil.
// Postcondition: Returns a ready Service or an error from the composer.
func New(reg *master.Registry, bonus ship.BonusRules, analyzer *analysis.Analyzer, src roll.Source, logger *zap.Logger) (*Service, error) {
	c, err := ship.NewComposer(reg, bonus)
	if err != nil {
		return nil, fmt.Errorf("building composer: %w", err)
	}
	return &Service{
		reg:      reg,
		composer: c,
		analyzer: analyzer,
		roller:   roll.NewLoggedRoller(src, logger),
		logger:   logger,
	}, nil
}

// Request resolves the string options of q.
func (q Query) Request() (analysis.Request, error) {
	req := analysis.Request{
		Fleet:        fleet.FleetKey(q.Fleet),
		Formation:    rules.Formation(q.Formation),
		Node:         q.Node,
		Cn:           q.Cn,
		NightContact: q.NightContact,
	}
	if q.Engagement != "" {
		e, ok := battle.ParseEngagement(q.Engagement)
		if !ok {
			return analysis.Request{}, fmt.Errorf("%w: engagement %q", ErrInvalidQuery, q.Engagement)
		}
		req.Engagement = e
	}
	if q.AirState != "" {
		s, ok := fleet.ParseAirState(q.AirState)
		if !ok {
			return analysis.Request{}, fmt.Errorf("%w: air state %q", ErrInvalidQuery, q.AirState)
		}
		req.AirState = &s
	}
	if q.Cn < 0 {
		return analysis.Request{}, fmt.Errorf("%w: cn %v", ErrInvalidQuery, q.Cn)
	}
	return req, nil
}

// Plan imports the deck of q and composes it with the query's nodes.
//
// Postcondition: Returns the composed plan or an error wrapping a deck sentinel.
func (s *Service) Plan(q Query) (*fleet.Plan, error) {
	st, err := deck.Import(q.Deck, s.reg)
	if err != nil {
		return nil, err
	}
	st.Nodes = q.Nodes
	return fleet.ComposePlan(s.composer, st), nil
}

// Analyze runs the full analysis of q.
//
// Postcondition: Returns a Report, or an error wrapping ErrInvalidQuery, a
// deck sentinel or an analysis sentinel.
func (s *Service) Analyze(q Query) (*analysis.Report, error) {
	start := time.Now()
	req, err := q.Request()
	if err != nil {
		return nil, err
	}
	p, err := s.Plan(q)
	if err != nil {
		return nil, err
	}
	r, err := s.analyzer.Analyze(p, req)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("plan analysed",
		zap.String("plan", r.Plan),
		zap.String("fleet", r.Fleet.Key),
		zap.Int("ships", len(r.Ships)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return r, nil
}

// Tally counts sampled shelling outcomes of one ship.
type Tally struct {
	Key      string `json:"key"`
	ID       int    `json:"id"`
	Miss     int    `json:"miss"`
	Normal   int    `json:"normal"`
	Critical int    `json:"critical"`
}

// Sample analyses q and draws trials shelling outcomes per ship from the
// service's random source.
//
// Precondition: 0 < trials <= MaxTrials; q must select a node.
// Postcondition: Every Tally sums to trials.
func (s *Service) Sample(q Query, trials int) ([]Tally, error) {
	if trials <= 0 || trials > MaxTrials {
		return nil, fmt.Errorf("%w: trials %d not in 1..%d", ErrInvalidQuery, trials, MaxTrials)
	}
	if q.Node == nil {
		return nil, fmt.Errorf("%w: sampling needs a node", ErrInvalidQuery)
	}
	r, err := s.Analyze(q)
	if err != nil {
		return nil, err
	}
	var out []Tally
	for _, sr := range r.Ships {
		if sr.Shelling == nil {
			continue
		}
		t := Tally{Key: sr.Key, ID: sr.ID}
		src := s.roller.Labeled(sr.Key)
		for range trials {
			switch battle.SampleOutcome(sr.Shelling.Hit, src) {
			case battle.Critical:
				t.Critical++
			case battle.Normal:
				t.Normal++
			default:
				t.Miss++
			}
		}
		out = append(out, t)
	}
	return out, nil
}

// MaxSlot bounds the squadron size of one ShootDown call.
const MaxSlot = 300

// ShootDownTally summarises sampled shoot-downs of one ship against an enemy
// squadron of Slot planes.
type ShootDownTally struct {
	Key  string  `json:"key"`
	ID   int     `json:"id"`
	Slot int     `json:"slot"`
	Min  int     `json:"min"`
	Max  int     `json:"max"`
	Mean float64 `json:"mean"`
	// Cutin is the anti-air cutin rolled each trial; Cutins counts the
	// trials it fired.
	Cutin  int `json:"cutin,omitempty"`
	Cutins int `json:"cutins,omitempty"`
	Trials int `json:"trials"`
}

// ShootDown analyses q and draws trials shoot-downs per ship against a
// squadron of slot planes. When the ship can trigger an anti-air cutin, each
// trial first rolls it at its composed rate and uses its figures on success.
//
// Precondition: 0 < trials <= MaxTrials; 0 < slot <= MaxSlot.
// Postcondition: Min <= Mean <= Max <= slot for every tally.
func (s *Service) ShootDown(q Query, slot, trials int) ([]ShootDownTally, error) {
	if trials <= 0 || trials > MaxTrials {
		return nil, fmt.Errorf("%w: trials %d not in 1..%d", ErrInvalidQuery, trials, MaxTrials)
	}
	if slot <= 0 || slot > MaxSlot {
		return nil, fmt.Errorf("%w: slot %d not in 1..%d", ErrInvalidQuery, slot, MaxSlot)
	}
	r, err := s.Analyze(q)
	if err != nil {
		return nil, err
	}
	out := make([]ShootDownTally, 0, len(r.Ships))
	for _, sr := range r.Ships {
		t := ShootDownTally{Key: sr.Key, ID: sr.ID, Slot: slot, Trials: trials, Min: slot}
		c := sr.ShootDown.Cutin
		if c != nil {
			t.Cutin = c.ID
		}
		src := s.roller.Labeled(sr.Key)
		total := 0
		for range trials {
			sd := sr.ShootDown.Base
			if c != nil && roll.Chance(c.Rate, src) {
				sd = c.ShootDown
				t.Cutins++
			}
			n := sd.Sample(slot, src)
			total += n
			t.Min = min(t.Min, n)
			t.Max = max(t.Max, n)
		}
		t.Mean = float64(total) / float64(trials)
		out = append(out, t)
	}
	return out, nil
}

// IsInputError reports whether err was caused by the caller's input rather
// than by the service.
func IsInputError(err error) bool {
	for _, target := range []error{
		ErrInvalidQuery,
		analysis.ErrUnknownFleet,
		analysis.ErrEmptyFleet,
		analysis.ErrUnknownNode,
		analysis.ErrUnknownFormation,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsDeckError reports whether err rejected the deck document itself.
func IsDeckError(err error) bool {
	return errors.Is(err, deck.ErrMalformed) || errors.Is(err, deck.ErrUnsupportedVersion)
}
