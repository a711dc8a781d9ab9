// Package scenario loads and executes Lua game scripts against the game
// service. Scripts build a Scenario value declaratively; the Runner
// replays its steps and checks assertions.
package scenario

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/Shopify/go-lua"
)

const scenarioTypeName = "scenario"

// Scenario is an ordered list of steps produced by a Lua script.
type Scenario struct {
	Name  string
	Steps []Step
}

// Step is one declarative action or assertion in a scenario.
type Step struct {
	Kind string
	Args map[string]any
}

// LoadScenarioFromFile runs a Lua script and returns the Scenario it
// builds. The script must return the scenario value.
func LoadScenarioFromFile(path string) (*Scenario, error) {
	state := lua.NewState()
	lua.OpenLibraries(state)

	registerLuaTypes(state)

	if err := lua.LoadFile(state, path, ""); err != nil {
		return nil, fmt.Errorf("load lua: %w", err)
	}
	if err := state.ProtectedCall(0, 1, 0); err != nil {
		return nil, fmt.Errorf("run lua: %w", err)
	}

	if state.TypeOf(-1) != lua.TypeUserData {
		state.Pop(1)
		return nil, fmt.Errorf("scenario script must return Scenario")
	}
	ud := state.ToUserData(-1)
	state.Pop(1)
	scenario, ok := ud.(*Scenario)
	if !ok || scenario == nil {
		return nil, fmt.Errorf("scenario script returned invalid Scenario")
	}
	if strings.TrimSpace(scenario.Name) == "" {
		scenario.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return scenario, nil
}

func registerLuaTypes(state *lua.State) {
	registerScenarioType(state)
	registerScenarioConstructor(state)
}

func registerScenarioType(state *lua.State) {
	lua.NewMetaTable(state, scenarioTypeName)
	state.NewTable()
	lua.SetFunctions(state, scenarioMethods, 0)
	state.SetField(-2, "__index")
	state.Pop(1)
}

func registerScenarioConstructor(state *lua.State) {
	state.NewTable()
	lua.SetFunctions(state, scenarioConstructor, 0)
	state.SetGlobal("Scenario")
}

var scenarioConstructor = []lua.RegistryFunction{
	{Name: "new", Function: scenarioNew},
}

func scenarioNew(state *lua.State) int {
	name := lua.OptString(state, 1, "")
	scenario := &Scenario{Name: name}
	state.PushUserData(scenario)
	lua.SetMetaTableNamed(state, scenarioTypeName)
	return 1
}

var scenarioMethods = []lua.RegistryFunction{
	{Name: "session", Function: scenarioSession},
	{Name: "seat", Function: scenarioSeat},
	{Name: "start", Function: scenarioStart},
	{Name: "end_session", Function: scenarioEndSession},
	{Name: "roll_movement", Function: scenarioRollMovement},
	{Name: "roll_action", Function: scenarioRollAction},
	{Name: "end_turn", Function: scenarioEndTurn},
	{Name: "turn", Function: scenarioTurn},
	{Name: "assert_position", Function: scenarioAssertPosition},
	{Name: "assert_health", Function: scenarioAssertHealth},
	{Name: "assert_gold", Function: scenarioAssertGold},
	{Name: "assert_current_player", Function: scenarioAssertCurrentPlayer},
	{Name: "assert_turn", Function: scenarioAssertTurn},
}

func scenarioSession(state *lua.State) int {
	scenario := checkScenario(state)
	lua.CheckType(state, 2, lua.TypeTable)
	data := tableToMap(state, 2)
	appendStep(scenario, "session", data)
	return 0
}

func scenarioSeat(state *lua.State) int {
	scenario := checkScenario(state)
	name := lua.CheckString(state, 2)
	opts := optionalTable(state, 3)
	data := map[string]any{"name": name}
	for key, value := range opts {
		data[key] = value
	}
	appendStep(scenario, "seat", data)
	return 0
}

func scenarioStart(state *lua.State) int {
	scenario := checkScenario(state)
	appendStep(scenario, "start", nil)
	return 0
}

func scenarioEndSession(state *lua.State) int {
	scenario := checkScenario(state)
	appendStep(scenario, "end_session", nil)
	return 0
}

func scenarioRollMovement(state *lua.State) int {
	scenario := checkScenario(state)
	seat := lua.CheckInteger(state, 2)
	appendStep(scenario, "roll_movement", map[string]any{"seat": seat})
	return 0
}

func scenarioRollAction(state *lua.State) int {
	scenario := checkScenario(state)
	seat := lua.CheckInteger(state, 2)
	appendStep(scenario, "roll_action", map[string]any{"seat": seat})
	return 0
}

func scenarioEndTurn(state *lua.State) int {
	scenario := checkScenario(state)
	seat := lua.CheckInteger(state, 2)
	appendStep(scenario, "end_turn", map[string]any{"seat": seat})
	return 0
}

// scenarioTurn plays one full turn for a seat: movement, action, hand-off.
func scenarioTurn(state *lua.State) int {
	scenario := checkScenario(state)
	seat := lua.CheckInteger(state, 2)
	appendStep(scenario, "roll_movement", map[string]any{"seat": seat})
	appendStep(scenario, "roll_action", map[string]any{"seat": seat})
	appendStep(scenario, "end_turn", map[string]any{"seat": seat})
	return 0
}

func scenarioAssertPosition(state *lua.State) int {
	return appendSeatAssertion(state, "assert_position", "position")
}

func scenarioAssertHealth(state *lua.State) int {
	return appendSeatAssertion(state, "assert_health", "health")
}

func scenarioAssertGold(state *lua.State) int {
	return appendSeatAssertion(state, "assert_gold", "gold")
}

func scenarioAssertCurrentPlayer(state *lua.State) int {
	scenario := checkScenario(state)
	seat := lua.CheckInteger(state, 2)
	appendStep(scenario, "assert_current_player", map[string]any{"seat": seat})
	return 0
}

func scenarioAssertTurn(state *lua.State) int {
	scenario := checkScenario(state)
	number := lua.CheckInteger(state, 2)
	appendStep(scenario, "assert_turn", map[string]any{"number": number})
	return 0
}

func appendSeatAssertion(state *lua.State, kind, key string) int {
	scenario := checkScenario(state)
	seat := lua.CheckInteger(state, 2)
	value := lua.CheckInteger(state, 3)
	appendStep(scenario, kind, map[string]any{"seat": seat, key: value})
	return 0
}

func checkScenario(state *lua.State) *Scenario {
	ud := lua.CheckUserData(state, 1, scenarioTypeName)
	if scenario, ok := ud.(*Scenario); ok && scenario != nil {
		return scenario
	}
	lua.ArgumentError(state, 1, "scenario expected")
	return nil
}

func appendStep(scenario *Scenario, kind string, data map[string]any) {
	if scenario == nil {
		return
	}
	if data == nil {
		data = map[string]any{}
	}
	scenario.Steps = append(scenario.Steps, Step{Kind: kind, Args: data})
}

func optionalTable(state *lua.State, index int) map[string]any {
	if state.IsNoneOrNil(index) || state.TypeOf(index) != lua.TypeTable {
		return map[string]any{}
	}
	return tableToMap(state, index)
}

func tableToMap(state *lua.State, index int) map[string]any {
	output := map[string]any{}
	if state.TypeOf(index) != lua.TypeTable {
		return output
	}

	index = state.AbsIndex(index)
	state.PushNil()
	for state.Next(index) {
		if state.TypeOf(-2) == lua.TypeString {
			key, _ := state.ToString(-2)
			output[key] = luaToGo(state, -1)
		}
		state.Pop(1)
	}
	return output
}

func luaToGo(state *lua.State, index int) any {
	switch state.TypeOf(index) {
	case lua.TypeString:
		value, _ := state.ToString(index)
		return value
	case lua.TypeNumber:
		value, _ := state.ToNumber(index)
		return normalizeNumber(value)
	case lua.TypeBoolean:
		return state.ToBoolean(index)
	case lua.TypeTable:
		return tableToMap(state, index)
	default:
		return nil
	}
}

func normalizeNumber(value float64) any {
	if math.Mod(value, 1) == 0 {
		return int(value)
	}
	return value
}
