package calc

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/fleetcalc/internal/analysis"
	"github.com/cory-johannsen/fleetcalc/internal/config"
	"github.com/cory-johannsen/fleetcalc/internal/game/master"
	"github.com/cory-johannsen/fleetcalc/internal/game/roll"
	"github.com/cory-johannsen/fleetcalc/internal/game/rules"
	"github.com/cory-johannsen/fleetcalc/internal/game/ship"
	"github.com/cory-johannsen/fleetcalc/internal/scripting"
)

// Load builds a Service from the data and random configuration: the master
// snapshot, optional rule and bonus overrides, optional map bonus scripts and
// the sampling source. The returned func releases the script VM.
//
// Precondition: data.MasterDir holds a master snapshot; logger must be non-nil.
// Postcondition: Returns a ready Service and its closer, or a non-nil error.
func Load(data config.DataConfig, random config.RandomConfig, logger *zap.Logger) (*Service, func(), error) {
	start := time.Now()
	reg, err := master.LoadDir(data.MasterDir)
	if err != nil {
		return nil, nil, fmt.Errorf("loading master data: %w", err)
	}
	logger.Info("master data loaded",
		zap.String("dir", data.MasterDir),
		zap.Int("gears", len(reg.GearIDs())),
		zap.Int("ships", len(reg.ShipIDs())),
		zap.Duration("elapsed", time.Since(start)),
	)

	set := rules.Default()
	if data.RulesFile != "" {
		if set, err = rules.LoadFile(data.RulesFile); err != nil {
			return nil, nil, err
		}
		logger.Info("rule overrides loaded", zap.String("file", data.RulesFile))
	}

	bonus := ship.DefaultBonusRules()
	if data.BonusFile != "" {
		if bonus, err = ship.LoadBonusRules(data.BonusFile); err != nil {
			return nil, nil, err
		}
		logger.Info("bonus rules loaded", zap.String("file", data.BonusFile), zap.Int("count", len(bonus)))
	}

	closer := func() {}
	var bonuses analysis.MapBonuses
	if data.ScriptDir != "" {
		mgr := scripting.NewManager(data.ScriptInstructionLimit, logger)
		if err := mgr.LoadDir(data.ScriptDir); err != nil {
			mgr.Close()
			return nil, nil, fmt.Errorf("loading scripts: %w", err)
		}
		bonuses = mgr
		closer = mgr.Close
	}

	src := roll.NewCryptoSource()
	if random.Seed != 0 {
		src = roll.NewSeeded(random.Seed)
	}

	svc, err := New(reg, bonus, analysis.New(set, bonuses), src, logger)
	if err != nil {
		closer()
		return nil, nil, err
	}
	return svc, closer, nil
}
