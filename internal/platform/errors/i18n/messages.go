package i18n

// Error codes must match the codes defined in internal/platform/errors/codes.go.
// These are duplicated as strings to avoid an import cycle.
const (
	CodeGameInProgress        = "GAME_IN_PROGRESS"
	CodeGameAlreadyFinished   = "GAME_ALREADY_FINISHED"
	CodeInvalidAnswerKey      = "INVALID_ANSWER_KEY"
	CodeInsufficientQuestions = "INSUFFICIENT_QUESTIONS"
	CodeUserIDMissing         = "USER_ID_MISSING"
	CodeUserNotFound          = "USER_NOT_FOUND"
	CodeUserNameEmpty         = "USER_NAME_EMPTY"
	CodeNotFound              = "NOT_FOUND"
)

var enUS = map[Code]string{
	CodeGameInProgress:        "You have not finished your previous game yet.",
	CodeGameAlreadyFinished:   "This game is already over.",
	CodeInvalidAnswerKey:      "Answer {{.Key}} is not one of A, B, C or D.",
	CodeInsufficientQuestions: "Not enough questions to start a game (level {{.Level}} is empty).",
	CodeUserIDMissing:         "Sign in to play.",
	CodeUserNotFound:          "Player not found.",
	CodeUserNameEmpty:         "Player name is required.",
	CodeNotFound:              "Game not found.",
}

var ruRU = map[Code]string{
	CodeGameInProgress:        "Вы еще не завершили предыдущую игру.",
	CodeGameAlreadyFinished:   "Эта игра уже закончена.",
	CodeInvalidAnswerKey:      "Ответ {{.Key}} не входит в число вариантов A, B, C, D.",
	CodeInsufficientQuestions: "Недостаточно вопросов для начала игры (уровень {{.Level}} пуст).",
	CodeUserIDMissing:         "Войдите, чтобы играть.",
	CodeUserNotFound:          "Игрок не найден.",
	CodeUserNameEmpty:         "Укажите имя игрока.",
	CodeNotFound:              "Игра не найдена.",
}
