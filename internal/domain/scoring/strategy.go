package scoring

import (
	"fmt"
	"strings"

	"github.com/okian/scoutrank/internal/domain/model"
)

// Preset strategy identifiers.
const (
	StrategyBalanced  = "balanced"
	StrategyOffensive = "offensive"
	StrategyDefensive = "defensive"
	StrategyReliable  = "reliable"
	StrategyCustom    = "custom"
)

// Strategy is a named weight configuration.
type Strategy struct {
	ID          string                    `json:"id"`
	Name        string                    `json:"name"`
	Description string                    `json:"description"`
	Weights     model.WeightConfiguration `json:"weights"`
}

// Each preset sums to 1.0.
var presets = []Strategy{
	{
		ID:          StrategyBalanced,
		Name:        "Balanced",
		Description: "Even emphasis on scoring, defense and consistency",
		Weights: model.WeightConfiguration{
			OPR:           0.20,
			DPR:           0.10,
			CCWM:          0.20,
			AutoScore:     0.10,
			TeleopScore:   0.10,
			EndgameScore:  0.10,
			Reliability:   0.10,
			DriverSkill:   0.05,
			DefenseRating: 0.025,
			SpeedRating:   0.025,
		},
	},
	{
		ID:          StrategyOffensive,
		Name:        "Offensive",
		Description: "Prioritizes raw scoring output in every phase",
		Weights: model.WeightConfiguration{
			OPR:          0.30,
			DPR:          0.05,
			CCWM:         0.15,
			AutoScore:    0.15,
			TeleopScore:  0.15,
			EndgameScore: 0.10,
			Reliability:  0.05,
			DriverSkill:  0.05,
		},
	},
	{
		ID:          StrategyDefensive,
		Name:        "Defensive",
		Description: "Prioritizes keeping opponent scores low",
		Weights: model.WeightConfiguration{
			OPR:           0.10,
			DPR:           0.30,
			CCWM:          0.15,
			AutoScore:     0.05,
			TeleopScore:   0.05,
			EndgameScore:  0.05,
			Reliability:   0.10,
			DriverSkill:   0.05,
			DefenseRating: 0.10,
			SpeedRating:   0.05,
		},
	},
	{
		ID:          StrategyReliable,
		Name:        "Reliable",
		Description: "Prioritizes robots that finish every match",
		Weights: model.WeightConfiguration{
			OPR:           0.15,
			DPR:           0.10,
			CCWM:          0.15,
			AutoScore:     0.05,
			TeleopScore:   0.05,
			EndgameScore:  0.10,
			Reliability:   0.30,
			DriverSkill:   0.05,
			DefenseRating: 0.025,
			SpeedRating:   0.025,
		},
	},
}

// Presets returns the built-in strategies in display order.
func Presets() []Strategy {
	out := make([]Strategy, len(presets))
	copy(out, presets)
	return out
}

// Preset looks up a built-in strategy by id (case-insensitive).
func Preset(id string) (Strategy, error) {
	key := strings.ToLower(strings.TrimSpace(id))
	for _, s := range presets {
		if s.ID == key {
			return s, nil
		}
	}
	return Strategy{}, fmt.Errorf("%w: %q", ErrUnknownStrategy, id)
}
