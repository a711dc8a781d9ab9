package engine

// Policy holds the tunable rule constants for movement and tile effects.
// Values are configuration, not hidden magic: commands load a Policy once
// and pass it to the engine.
type Policy struct {
	// MovementDice and MovementSides define the movement roll (2d6).
	MovementDice  int
	MovementSides int
	// ActionSides defines the action roll die (d20).
	ActionSides int

	// WrapBonus is the gold granted when a movement roll carries a player
	// past the end of the board back to the start.
	WrapBonus int

	// MaxHealth caps player health; gold is floored at zero.
	MaxHealth int

	// Monster tile thresholds and rewards.
	MonsterHighRoll      int
	MonsterLowRoll       int
	MonsterRewardBase    int
	MonsterRewardPerRoll int
	MonsterDamage        int

	// Treasure tile rewards.
	TreasureRewardBase    int
	TreasureRewardPerRoll int

	// Event tile thresholds and rewards.
	EventHighRoll int
	EventLowRoll  int
	EventReward   int
	EventPenalty  int
}

// DefaultPolicy returns the canonical rule constants.
func DefaultPolicy() Policy {
	return Policy{
		MovementDice:  2,
		MovementSides: 6,
		ActionSides:   20,

		WrapBonus: 200,
		MaxHealth: 100,

		MonsterHighRoll:      15,
		MonsterLowRoll:       8,
		MonsterRewardBase:    50,
		MonsterRewardPerRoll: 5,
		MonsterDamage:        15,

		TreasureRewardBase:    25,
		TreasureRewardPerRoll: 3,

		EventHighRoll: 12,
		EventLowRoll:  6,
		EventReward:   30,
		EventPenalty:  20,
	}
}
