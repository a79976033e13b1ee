package millionaire

import (
	"context"

	"github.com/louisbranch/millionaire/internal/platform/grpc/jsoncodec"
	"google.golang.org/grpc"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "millionaire.v1.GameService"

const (
	StartGameFullMethodName      = "/" + ServiceName + "/StartGame"
	GetGameFullMethodName        = "/" + ServiceName + "/GetGame"
	AnswerQuestionFullMethodName = "/" + ServiceName + "/AnswerQuestion"
	TakeMoneyFullMethodName      = "/" + ServiceName + "/TakeMoney"
	ListGamesFullMethodName      = "/" + ServiceName + "/ListGames"
	GetLeaderboardFullMethodName = "/" + ServiceName + "/GetLeaderboard"
	RegisterPlayerFullMethodName = "/" + ServiceName + "/RegisterPlayer"
)

// GameServiceServer is the server API for the game service.
type GameServiceServer interface {
	StartGame(context.Context, *StartGameRequest) (*StartGameResponse, error)
	GetGame(context.Context, *GetGameRequest) (*GetGameResponse, error)
	AnswerQuestion(context.Context, *AnswerQuestionRequest) (*AnswerQuestionResponse, error)
	TakeMoney(context.Context, *TakeMoneyRequest) (*TakeMoneyResponse, error)
	ListGames(context.Context, *ListGamesRequest) (*ListGamesResponse, error)
	GetLeaderboard(context.Context, *GetLeaderboardRequest) (*GetLeaderboardResponse, error)
	RegisterPlayer(context.Context, *RegisterPlayerRequest) (*RegisterPlayerResponse, error)
}

// ServiceDesc describes the game service. Messages travel as JSON, so
// clients must call with jsoncodec.CallOption.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*GameServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "StartGame", Handler: unaryHandler(StartGameFullMethodName, GameServiceServer.StartGame)},
		{MethodName: "GetGame", Handler: unaryHandler(GetGameFullMethodName, GameServiceServer.GetGame)},
		{MethodName: "AnswerQuestion", Handler: unaryHandler(AnswerQuestionFullMethodName, GameServiceServer.AnswerQuestion)},
		{MethodName: "TakeMoney", Handler: unaryHandler(TakeMoneyFullMethodName, GameServiceServer.TakeMoney)},
		{MethodName: "ListGames", Handler: unaryHandler(ListGamesFullMethodName, GameServiceServer.ListGames)},
		{MethodName: "GetLeaderboard", Handler: unaryHandler(GetLeaderboardFullMethodName, GameServiceServer.GetLeaderboard)},
		{MethodName: "RegisterPlayer", Handler: unaryHandler(RegisterPlayerFullMethodName, GameServiceServer.RegisterPlayer)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "millionaire/v1/game.json",
}

// RegisterGameServiceServer registers srv on s.
func RegisterGameServiceServer(s grpc.ServiceRegistrar, srv GameServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func unaryHandler[Req, Resp any](fullMethod string, call func(GameServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(GameServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(GameServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// GameServiceClient is the client API for the game service.
type GameServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewGameServiceClient wraps a connection to the game service.
func NewGameServiceClient(cc grpc.ClientConnInterface) *GameServiceClient {
	return &GameServiceClient{cc: cc}
}

func invoke[Req, Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in *Req, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	callOpts := append([]grpc.CallOption{jsoncodec.CallOption()}, opts...)
	if err := cc.Invoke(ctx, method, in, out, callOpts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *GameServiceClient) StartGame(ctx context.Context, in *StartGameRequest, opts ...grpc.CallOption) (*StartGameResponse, error) {
	return invoke[StartGameRequest, StartGameResponse](ctx, c.cc, StartGameFullMethodName, in, opts)
}

func (c *GameServiceClient) GetGame(ctx context.Context, in *GetGameRequest, opts ...grpc.CallOption) (*GetGameResponse, error) {
	return invoke[GetGameRequest, GetGameResponse](ctx, c.cc, GetGameFullMethodName, in, opts)
}

func (c *GameServiceClient) AnswerQuestion(ctx context.Context, in *AnswerQuestionRequest, opts ...grpc.CallOption) (*AnswerQuestionResponse, error) {
	return invoke[AnswerQuestionRequest, AnswerQuestionResponse](ctx, c.cc, AnswerQuestionFullMethodName, in, opts)
}

func (c *GameServiceClient) TakeMoney(ctx context.Context, in *TakeMoneyRequest, opts ...grpc.CallOption) (*TakeMoneyResponse, error) {
	return invoke[TakeMoneyRequest, TakeMoneyResponse](ctx, c.cc, TakeMoneyFullMethodName, in, opts)
}

func (c *GameServiceClient) ListGames(ctx context.Context, in *ListGamesRequest, opts ...grpc.CallOption) (*ListGamesResponse, error) {
	return invoke[ListGamesRequest, ListGamesResponse](ctx, c.cc, ListGamesFullMethodName, in, opts)
}

func (c *GameServiceClient) GetLeaderboard(ctx context.Context, in *GetLeaderboardRequest, opts ...grpc.CallOption) (*GetLeaderboardResponse, error) {
	return invoke[GetLeaderboardRequest, GetLeaderboardResponse](ctx, c.cc, GetLeaderboardFullMethodName, in, opts)
}

func (c *GameServiceClient) RegisterPlayer(ctx context.Context, in *RegisterPlayerRequest, opts ...grpc.CallOption) (*RegisterPlayerResponse, error) {
	return invoke[RegisterPlayerRequest, RegisterPlayerResponse](ctx, c.cc, RegisterPlayerFullMethodName, in, opts)
}
