package roll

import "go.uber.org/zap"

// Roller wraps a Source and logger so that every draw is auditable. Draws
// are logged at debug level with the label of the outcome they decide.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedRoller creates a Roller that samples with src and logs to logger.
//
// Precondition: src and logger must be non-nil.
func NewLoggedRoller(src Source, logger *zap.Logger) *Roller {
	return &Roller{src: src, logger: logger}
}

// Float64 forwards to the wrapped source without logging.
func (r *Roller) Float64() float64 {
	return r.src.Float64()
}

// Labeled returns a Source drawing from r that logs every draw under label.
// Pass it to the sampling functions of the battle packages.
func (r *Roller) Labeled(label string) Source {
	return labeled{r: r, label: label}
}

type labeled struct {
	r     *Roller
	label string
}

func (l labeled) Float64() float64 {
	v := l.r.src.Float64()
	l.r.logger.Debug("outcome sampled",
		zap.String("label", l.label),
		zap.Float64("draw", v),
	)
	return v
}
