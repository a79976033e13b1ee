package millionaire

import (
	"context"
	"strings"

	"github.com/louisbranch/millionaire/internal/platform/grpc/pagination"
	"github.com/louisbranch/millionaire/internal/platform/money"
	"github.com/louisbranch/millionaire/internal/services/millionaire/api/grpc/metadata"
	"github.com/louisbranch/millionaire/internal/services/millionaire/domain/game"
	"github.com/louisbranch/millionaire/internal/services/millionaire/domain/question"
	"github.com/louisbranch/millionaire/internal/services/millionaire/gameplay"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	defaultLeaderboardPageSize = 10
	maxLeaderboardPageSize     = 50
)

// Service exposes millionaire.v1 gRPC operations.
type Service struct {
	gameplay *gameplay.Service
}

// NewService creates a game service backed by gameplay.
func NewService(gp *gameplay.Service) *Service {
	return &Service{gameplay: gp}
}

var _ GameServiceServer = (*Service)(nil)

func (s *Service) ready() error {
	if s == nil || s.gameplay == nil {
		return status.Error(codes.Internal, "gameplay service is not configured")
	}
	return nil
}

// StartGame begins a new game for the calling player.
func (s *Service) StartGame(ctx context.Context, in *StartGameRequest) (*StartGameResponse, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	g, err := s.gameplay.CreateGameForUser(ctx, metadata.UserIDFromContext(ctx))
	if err != nil {
		return nil, toStatus(ctx, err, nil)
	}
	return &StartGameResponse{Game: s.gameView(ctx, g)}, nil
}

// GetGame returns one of the calling player's games.
func (s *Service) GetGame(ctx context.Context, in *GetGameRequest) (*GetGameResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "get game request is required")
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	g, err := s.gameplay.GetGame(ctx, metadata.UserIDFromContext(ctx), in.GameID)
	if err != nil {
		return nil, toStatus(ctx, err, nil)
	}
	return &GetGameResponse{Game: s.gameView(ctx, g)}, nil
}

// AnswerQuestion submits an answer key for the current question.
func (s *Service) AnswerQuestion(ctx context.Context, in *AnswerQuestionRequest) (*AnswerQuestionResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "answer question request is required")
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	res, err := s.gameplay.AnswerCurrentQuestion(ctx, metadata.UserIDFromContext(ctx), in.GameID, in.AnswerKey)
	if err != nil {
		return nil, toStatus(ctx, err, map[string]string{"Key": strings.TrimSpace(in.AnswerKey)})
	}
	return &AnswerQuestionResponse{Correct: res.Correct, Game: s.gameView(ctx, res.Game)}, nil
}

// TakeMoney ends a game and keeps the prize of the last answered level.
func (s *Service) TakeMoney(ctx context.Context, in *TakeMoneyRequest) (*TakeMoneyResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "take money request is required")
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	g, err := s.gameplay.TakeMoney(ctx, metadata.UserIDFromContext(ctx), in.GameID)
	if err != nil {
		return nil, toStatus(ctx, err, nil)
	}
	return &TakeMoneyResponse{Game: s.gameView(ctx, g)}, nil
}

// ListGames returns the calling player's games, newest first.
func (s *Service) ListGames(ctx context.Context, in *ListGamesRequest) (*ListGamesResponse, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	games, err := s.gameplay.ListUserGames(ctx, metadata.UserIDFromContext(ctx))
	if err != nil {
		return nil, toStatus(ctx, err, nil)
	}
	locale := metadata.LocaleFromContext(ctx)
	resp := &ListGamesResponse{Games: make([]GameSummary, 0, len(games))}
	for _, g := range games {
		resp.Games = append(resp.Games, GameSummary{
			ID:             g.ID,
			Status:         string(s.gameplay.Status(g)),
			CurrentLevel:   int32(g.CurrentLevel),
			Prize:          g.Prize,
			FormattedPrize: money.Format(locale, g.Prize),
			CreatedAt:      g.CreatedAt,
			FinishedAt:     g.FinishedAt,
		})
	}
	return resp, nil
}

// GetLeaderboard pages players by balance, richest first.
func (s *Service) GetLeaderboard(ctx context.Context, in *GetLeaderboardRequest) (*GetLeaderboardResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "get leaderboard request is required")
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	pageSize := pagination.ClampPageSize(in.PageSize, pagination.PageSizeConfig{
		Default: defaultLeaderboardPageSize,
		Max:     maxLeaderboardPageSize,
	})
	page, err := s.gameplay.Leaderboard(ctx, pageSize, in.PageToken, metadata.LocaleFromContext(ctx))
	if err != nil {
		return nil, toStatus(ctx, err, nil)
	}
	resp := &GetLeaderboardResponse{
		Players:       make([]Player, 0, len(page.Entries)),
		NextPageToken: page.NextPageToken,
	}
	for _, entry := range page.Entries {
		resp.Players = append(resp.Players, Player{
			ID:               entry.UserID,
			Name:             entry.Name,
			Balance:          entry.Balance,
			FormattedBalance: entry.FormattedBalance,
		})
	}
	return resp, nil
}

// RegisterPlayer records the calling player's display name.
func (s *Service) RegisterPlayer(ctx context.Context, in *RegisterPlayerRequest) (*RegisterPlayerResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "register player request is required")
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	u, err := s.gameplay.EnsureUser(ctx, metadata.UserIDFromContext(ctx), in.Name)
	if err != nil {
		return nil, toStatus(ctx, err, nil)
	}
	return &RegisterPlayerResponse{Player: &Player{
		ID:               u.ID,
		Name:             u.Name,
		Balance:          u.Balance,
		FormattedBalance: money.Format(metadata.LocaleFromContext(ctx), u.Balance),
	}}, nil
}

func (s *Service) gameView(ctx context.Context, g game.Game) *Game {
	locale := metadata.LocaleFromContext(ctx)
	rules := s.gameplay.Rules()
	st := rules.Status(g)

	view := &Game{
		ID:             g.ID,
		Status:         string(st),
		CurrentLevel:   int32(g.CurrentLevel),
		Prize:          g.Prize,
		FormattedPrize: money.Format(locale, g.Prize),
		CreatedAt:      g.CreatedAt,
		FinishedAt:     g.FinishedAt,
	}
	for level, amount := range rules.Prizes.Amounts() {
		view.PrizeLadder = append(view.PrizeLadder, PrizeStep{
			Level:      int32(level),
			Amount:     amount,
			Formatted:  money.Format(locale, amount),
			Guaranteed: rules.Prizes.IsGuaranteed(level),
		})
	}

	gq, ok := g.CurrentGameQuestion()
	if !ok {
		return view
	}
	q := &Question{
		Level: int32(gq.Level),
		Text:  gq.Question.Text,
		Prize: rules.Prizes.Amount(gq.Level),
	}
	for slot, text := range gq.Variants() {
		q.Answers = append(q.Answers, Answer{Key: string(question.Keys[slot]), Text: text})
	}
	switch st {
	case game.StatusFail, game.StatusTimeout:
		q.CorrectKey = string(gq.CorrectAnswerKey())
	}
	view.CurrentQuestion = q
	return view
}
