package feedrpc

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	api "github.com/etesami/earthquake-feed/api"
)

// Client calls a FeedService over an established connection.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) Snapshot(ctx context.Context) (*api.Snapshot, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, snapshotMethod, &emptypb.Empty{}, out); err != nil {
		return nil, err
	}
	return SnapshotFromStruct(out)
}

// Refresh asks the service to reload. An empty summary keeps the current
// feed.
func (c *Client) Refresh(ctx context.Context, summary string) (*api.Snapshot, error) {
	req, err := structpb.NewStruct(map[string]any{"summary": summary})
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, refreshMethod, req, out); err != nil {
		return nil, err
	}
	return SnapshotFromStruct(out)
}

func (c *Client) History(ctx context.Context, limit int) ([]api.EventRecord, error) {
	req, err := structpb.NewStruct(map[string]any{"limit": limit})
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, historyMethod, req, out); err != nil {
		return nil, err
	}
	events, err := eventsFromList(out.AsMap()["events"])
	if err != nil {
		return nil, fmt.Errorf("decoding history: %w", err)
	}
	return events, nil
}
