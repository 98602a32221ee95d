package lifelike

import (
	"strconv"

	"lifelike/internal/core"
)

const (
	maxReapMargin   = 4
	maxReapInterval = 100
)

// Parameters reports the current tunables for display.
func (s *Simulator) Parameters() core.ParameterSnapshot {
	groups := []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				intParam("w", "Width", s.grid.w),
				intParam("h", "Height", s.grid.h),
				{Key: "seed", Label: "Seed", Type: core.ParamTypeInt, Value: strconv.FormatInt(s.cfg.Seed, 10)},
				intParam("generation", "Generation", s.gen),
				intParam("population", "Population", s.Population()),
				intParam("reseeds", "Reseeds", s.reseeds),
			},
		},
		{
			Name: "Rule",
			Params: []core.Parameter{
				{Key: "rule", Label: "Rule", Type: core.ParamTypeString, Value: s.rule.String()},
			},
		},
		{
			Name: "Reaper",
			Params: []core.Parameter{
				{Key: "auto_reap", Label: "Auto reap", Type: core.ParamTypeBool, Value: strconv.FormatBool(s.autoReap)},
				intParam("reap_interval", "Reap interval", s.reapInterval),
				intParam("reap_margin", "Reap margin", s.reaper.Margin),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the HUD-adjustable parameters.
func (s *Simulator) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "reap_interval", Label: "Reap interval", Type: core.ParamTypeInt, Step: 1, Min: 1, Max: maxReapInterval, HasMin: true, HasMax: true},
		{Key: "reap_margin", Label: "Reap margin", Type: core.ParamTypeInt, Step: 1, Min: 0, Max: maxReapMargin, HasMin: true, HasMax: true},
	}
}

// SetIntParameter updates an integer tunable, clamping to its bounds.
func (s *Simulator) SetIntParameter(key string, value int) bool {
	switch key {
	case "reap_interval":
		s.reapInterval = min(max(value, 1), maxReapInterval)
	case "reap_margin":
		s.reaper.Margin = min(max(value, 0), maxReapMargin)
	case "auto_reap":
		s.autoReap = value != 0
	default:
		return false
	}
	return true
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}
