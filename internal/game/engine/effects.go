package engine

import "github.com/louisbranch/ringfall/internal/game/domain/board"

// Effect is the resource delta a tile applies to the player standing on it.
type Effect struct {
	HealthDelta int
	GoldDelta   int
}

// ResolveTileEffect computes the effect of an action roll on a tile.
//
// It is a pure function of (tile type, roll, policy):
//
//	monster:  roll >= high grants gold, roll <= low costs health
//	treasure: always grants gold scaled by the roll
//	event:    roll >= high grants gold, roll <= low costs gold
//	property: no effect (purchase flow is not an engine concern)
//	start:    no effect
func ResolveTileEffect(tileType board.TileType, roll int, policy Policy) Effect {
	switch tileType {
	case board.TileTypeMonster:
		if roll >= policy.MonsterHighRoll {
			return Effect{GoldDelta: policy.MonsterRewardBase + roll*policy.MonsterRewardPerRoll}
		}
		if roll <= policy.MonsterLowRoll {
			return Effect{HealthDelta: -policy.MonsterDamage}
		}
		return Effect{}
	case board.TileTypeTreasure:
		return Effect{GoldDelta: policy.TreasureRewardBase + roll*policy.TreasureRewardPerRoll}
	case board.TileTypeEvent:
		if roll >= policy.EventHighRoll {
			return Effect{GoldDelta: policy.EventReward}
		}
		if roll <= policy.EventLowRoll {
			return Effect{GoldDelta: -policy.EventPenalty}
		}
		return Effect{}
	default:
		// start, property, and unknown tiles leave resources untouched.
		return Effect{}
	}
}
