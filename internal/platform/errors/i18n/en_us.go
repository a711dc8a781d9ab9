package i18n

// Error codes must match the codes defined in internal/platform/errors/codes.go.
// These are duplicated as strings to avoid an import cycle.
const (
	CodeNotYourTurn              = "NOT_YOUR_TURN"
	CodeInvalidPhase             = "INVALID_PHASE"
	CodeSessionNotActive         = "SESSION_NOT_ACTIVE"
	CodeSessionEmptyName         = "SESSION_EMPTY_NAME"
	CodeSessionInvalidTransition = "SESSION_INVALID_STATUS_TRANSITION"
	CodeRosterInvalid            = "ROSTER_INVALID"
	CodePlayerEmptyName          = "PLAYER_EMPTY_NAME"
	CodePlayerNotFound           = "PLAYER_NOT_FOUND"
	CodeTileNotFound             = "TILE_NOT_FOUND"
	CodeBoardInvalid             = "BOARD_INVALID"
	CodeNotFound                 = "NOT_FOUND"
	CodeAlreadyExists            = "ALREADY_EXISTS"
	CodeDiceMissing              = "DICE_MISSING"
	CodeDiceInvalidSpec          = "DICE_INVALID_SPEC"
)

// messagesEnUS holds the en-US error message templates.
var messagesEnUS = map[Code]string{
	CodeNotYourTurn:              "It is not your turn{{if .player}} ({{.player}} is up){{end}}",
	CodeInvalidPhase:             "That action is not allowed right now{{if .phase}} (turn phase: {{.phase}}){{end}}",
	CodeSessionNotActive:         "The session is not active",
	CodeSessionEmptyName:         "Session name is required",
	CodeSessionInvalidTransition: "The session cannot change to that status",
	CodeRosterInvalid:            "The player roster is invalid{{if .reason}}: {{.reason}}{{end}}",
	CodePlayerEmptyName:          "Player name is required",
	CodePlayerNotFound:           "Player not found",
	CodeTileNotFound:             "No tile exists at that board position{{if .position}} ({{.position}}){{end}}",
	CodeBoardInvalid:             "The board definition is invalid{{if .reason}}: {{.reason}}{{end}}",
	CodeNotFound:                 "Record not found",
	CodeAlreadyExists:            "Record already exists",
	CodeDiceMissing:              "At least one die must be provided",
	CodeDiceInvalidSpec:          "Dice must have positive sides and count",
}
