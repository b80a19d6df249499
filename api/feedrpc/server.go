package feedrpc

import (
	"context"
	"errors"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	api "github.com/etesami/earthquake-feed/api"
	"github.com/etesami/earthquake-feed/pkg/feed"
	"github.com/etesami/earthquake-feed/pkg/logging"
)

// ServiceName is the fully qualified gRPC service name, also used as the
// health check key.
const ServiceName = "quakefeed.FeedService"

const (
	snapshotMethod = "/" + ServiceName + "/Snapshot"
	refreshMethod  = "/" + ServiceName + "/Refresh"
	historyMethod  = "/" + ServiceName + "/History"
)

// DefaultHistoryLimit caps History when the request names no limit.
const DefaultHistoryLimit = 100

// Provider is what the service exposes over gRPC.
type Provider interface {
	// Latest returns the most recent snapshot, if one was built.
	Latest() (*api.Snapshot, bool)
	// Refresh reloads the feed, switching to summary first when it is set.
	Refresh(ctx context.Context, summary string) (*api.Snapshot, error)
	History(ctx context.Context, limit int) ([]api.EventRecord, error)
}

// FeedServiceServer is the handler interface registered with grpc.
type FeedServiceServer interface {
	Snapshot(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	Refresh(context.Context, *structpb.Struct) (*structpb.Struct, error)
	History(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type Server struct {
	Provider Provider
	Log      logging.Logger
}

func Register(s grpc.ServiceRegistrar, srv FeedServiceServer) {
	s.RegisterService(&feedServiceDesc, srv)
}

func (s *Server) Snapshot(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	snap, ok := s.Provider.Latest()
	if !ok {
		return nil, status.Error(codes.Unavailable, "no feed snapshot loaded yet")
	}
	return s.encode(snap)
}

func (s *Server) Refresh(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	summary := req.GetFields()["summary"].GetStringValue()
	snap, err := s.Provider.Refresh(ctx, summary)
	if err != nil {
		return nil, s.toStatus(err)
	}
	return s.encode(snap)
}

func (s *Server) History(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	limit := int(req.GetFields()["limit"].GetNumberValue())
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	events, err := s.Provider.History(ctx, limit)
	if err != nil {
		return nil, s.toStatus(err)
	}
	st, err := structpb.NewStruct(map[string]any{"events": eventsToList(events)})
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return st, nil
}

func (s *Server) encode(snap *api.Snapshot) (*structpb.Struct, error) {
	st, err := SnapshotToStruct(snap)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return st, nil
}

func (s *Server) toStatus(err error) error {
	code := codes.Internal
	switch {
	case errors.Is(err, feed.ErrUnknownSummary):
		code = codes.InvalidArgument
	case errors.Is(err, feed.ErrNoData):
		code = codes.Unavailable
	case errors.Is(err, feed.ErrMalformedHeader):
		code = codes.FailedPrecondition
	case errors.Is(err, context.Canceled):
		code = codes.Canceled
	case errors.Is(err, context.DeadlineExceeded):
		code = codes.DeadlineExceeded
	}
	if s.Log != nil && code == codes.Internal {
		s.Log.WithError(err).Error("Feed request failed")
	}
	return status.Error(code, err.Error())
}

func snapshotHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FeedServiceServer).Snapshot(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: snapshotMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(FeedServiceServer).Snapshot(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func refreshHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FeedServiceServer).Refresh(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: refreshMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(FeedServiceServer).Refresh(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func historyHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FeedServiceServer).History(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: historyMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(FeedServiceServer).History(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

var feedServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*FeedServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Snapshot", Handler: snapshotHandler},
		{MethodName: "Refresh", Handler: refreshHandler},
		{MethodName: "History", Handler: historyHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "quakefeed/feed.proto",
}
