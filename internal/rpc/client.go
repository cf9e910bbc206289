package rpc

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/xtding233/circle-curves/internal/curve"
)

// Client calls CurveService.
type Client struct {
	conn *grpc.ClientConn
}

// Dial connects to a CurveService at addr without transport security.
func Dial(addr string, opts ...grpc.DialOption) (*Client, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("grpc dial %s: %w", addr, err)
	}
	return &Client{conn: conn}, nil
}

// Close shuts down the gRPC connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// Evaluate sends req and decodes the returned samples.
func (c *Client) Evaluate(ctx context.Context, req Request) ([]curve.Sample, error) {
	in, err := req.Encode()
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, EvaluateMethod, in, out); err != nil {
		return nil, err
	}
	return DecodeSamples(out)
}
