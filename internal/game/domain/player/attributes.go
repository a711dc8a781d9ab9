package player

import (
	"math/rand"

	"github.com/louisbranch/ringfall/internal/core/dice"
)

// AttributeNames lists the six character attributes in rolling order.
var AttributeNames = []string{
	"strength",
	"dexterity",
	"constitution",
	"intelligence",
	"wisdom",
	"charisma",
}

// RollAttributes produces the six character-creation attribute scores
// using the 4d6-drop-lowest method. Scores appear in AttributeNames order
// and are deterministic with respect to the rng.
func RollAttributes(rng *rand.Rand) (map[string]int, error) {
	scores := make(map[string]int, len(AttributeNames))
	for _, name := range AttributeNames {
		result, err := dice.RollWithRng(rng, []dice.Spec{{Sides: 6, Count: 4}})
		if err != nil {
			return nil, err
		}

		values := result.Rolls[0].Results
		lowest := values[0]
		total := 0
		for _, value := range values {
			total += value
			if value < lowest {
				lowest = value
			}
		}
		scores[name] = total - lowest
	}
	return scores, nil
}
