package millionaire

import "time"

// Answer is one displayed answer option.
type Answer struct {
	Key  string `json:"key"`
	Text string `json:"text"`
}

// Question is a game question as shown to the player. CorrectKey is only set
// once the game ended on this question.
type Question struct {
	Level      int32    `json:"level"`
	Text       string   `json:"text"`
	Answers    []Answer `json:"answers"`
	Prize      int64    `json:"prize"`
	CorrectKey string   `json:"correct_key,omitempty"`
}

// PrizeStep is one rung of the prize ladder.
type PrizeStep struct {
	Level      int32  `json:"level"`
	Amount     int64  `json:"amount"`
	Formatted  string `json:"formatted"`
	Guaranteed bool   `json:"guaranteed,omitempty"`
}

// Game is the player's view of one game.
type Game struct {
	ID              string      `json:"id"`
	Status          string      `json:"status"`
	CurrentLevel    int32       `json:"current_level"`
	Prize           int64       `json:"prize"`
	FormattedPrize  string      `json:"formatted_prize"`
	CreatedAt       time.Time   `json:"created_at"`
	FinishedAt      *time.Time  `json:"finished_at,omitempty"`
	CurrentQuestion *Question   `json:"current_question,omitempty"`
	PrizeLadder     []PrizeStep `json:"prize_ladder,omitempty"`
}

// GameSummary is a finished or running game in the player's history.
type GameSummary struct {
	ID             string     `json:"id"`
	Status         string     `json:"status"`
	CurrentLevel   int32      `json:"current_level"`
	Prize          int64      `json:"prize"`
	FormattedPrize string     `json:"formatted_prize"`
	CreatedAt      time.Time  `json:"created_at"`
	FinishedAt     *time.Time `json:"finished_at,omitempty"`
}

// Player is a registered player.
type Player struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Balance          int64  `json:"balance"`
	FormattedBalance string `json:"formatted_balance"`
}

type StartGameRequest struct{}

type StartGameResponse struct {
	Game *Game `json:"game"`
}

type GetGameRequest struct {
	GameID string `json:"game_id"`
}

type GetGameResponse struct {
	Game *Game `json:"game"`
}

type AnswerQuestionRequest struct {
	GameID    string `json:"game_id"`
	AnswerKey string `json:"answer_key"`
}

type AnswerQuestionResponse struct {
	Correct bool  `json:"correct"`
	Game    *Game `json:"game"`
}

type TakeMoneyRequest struct {
	GameID string `json:"game_id"`
}

type TakeMoneyResponse struct {
	Game *Game `json:"game"`
}

type ListGamesRequest struct{}

type ListGamesResponse struct {
	Games []GameSummary `json:"games"`
}

type GetLeaderboardRequest struct {
	PageSize  int32  `json:"page_size,omitempty"`
	PageToken string `json:"page_token,omitempty"`
}

type GetLeaderboardResponse struct {
	Players       []Player `json:"players"`
	NextPageToken string   `json:"next_page_token,omitempty"`
}

type RegisterPlayerRequest struct {
	Name string `json:"name"`
}

type RegisterPlayerResponse struct {
	Player *Player `json:"player"`
}
