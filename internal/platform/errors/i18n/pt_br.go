package i18n

// messagesPtBR holds the pt-BR error message templates.
var messagesPtBR = map[Code]string{
	CodeNotYourTurn:              "Não é a sua vez{{if .player}} (vez de {{.player}}){{end}}",
	CodeInvalidPhase:             "Essa ação não é permitida agora{{if .phase}} (fase do turno: {{.phase}}){{end}}",
	CodeSessionNotActive:         "A sessão não está ativa",
	CodeSessionEmptyName:         "O nome da sessão é obrigatório",
	CodeSessionInvalidTransition: "A sessão não pode mudar para esse status",
	CodeRosterInvalid:            "A lista de jogadores é inválida{{if .reason}}: {{.reason}}{{end}}",
	CodePlayerEmptyName:          "O nome do jogador é obrigatório",
	CodePlayerNotFound:           "Jogador não encontrado",
	CodeTileNotFound:             "Não existe casa nessa posição do tabuleiro{{if .position}} ({{.position}}){{end}}",
	CodeBoardInvalid:             "A definição do tabuleiro é inválida{{if .reason}}: {{.reason}}{{end}}",
	CodeNotFound:                 "Registro não encontrado",
	CodeAlreadyExists:            "Registro já existe",
	CodeDiceMissing:              "Pelo menos um dado deve ser informado",
	CodeDiceInvalidSpec:          "Os dados devem ter lados e quantidade positivos",
}
