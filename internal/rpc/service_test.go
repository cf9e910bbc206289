package rpc

import (
	"context"
	"math"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/xtding233/circle-curves/internal/curve"
)

func ptr[T any](v T) *T { return &v }

func startServer(t *testing.T) *Client {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	s := grpc.NewServer(grpc.UnaryInterceptor(LoggingInterceptor(zaptest.NewLogger(t))))
	Register(s, NewService(zaptest.NewLogger(t)))
	go func() { _ = s.Serve(lis) }()
	t.Cleanup(s.Stop)

	c, err := Dial("passthrough:///bufnet", grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
		return lis.DialContext(ctx)
	}))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestEvaluateOverGRPC(t *testing.T) {
	c := startServer(t)
	samples, err := c.Evaluate(context.Background(), Request{
		N:           ptr(5),
		Radii:       []float64{1, 1, 1},
		Frequencies: []float64{1, 2, 3},
		Phases:      []float64{0, 0, 0},
	})
	require.NoError(t, err)
	require.Len(t, samples, 5)
	assert.Equal(t, 0.0, samples[0].Y)
	assert.InDelta(t, math.Pi, samples[2].X, 1e-12)

	want, _ := curve.Evaluate(5, curve.Harmonics(0).Components)
	assert.Equal(t, want, samples)
}

func TestEvaluatePresetOverGRPC(t *testing.T) {
	c := startServer(t)
	samples, err := c.Evaluate(context.Background(), Request{Preset: "mountain", Target: ptr(3.0)})
	require.NoError(t, err)
	assert.Len(t, samples, 4)
}

func TestEvaluateStatusCodes(t *testing.T) {
	c := startServer(t)
	cases := []struct {
		req  Request
		code codes.Code
	}{
		{Request{N: ptr(0)}, codes.InvalidArgument},
		{Request{N: ptr(3), Radii: []float64{1}, Frequencies: []float64{1}}, codes.InvalidArgument},
		{Request{N: ptr(3), Formula: "square"}, codes.InvalidArgument},
		{Request{Preset: "volcano"}, codes.NotFound},
		{Request{Preset: "flat", N: ptr(MaxSamples + 1)}, codes.InvalidArgument},
		{Request{N: ptr(3), Radii: []float64{1e308, 1e308}, Frequencies: []float64{0, 0}, Phases: []float64{math.Pi / 2, math.Pi / 2}}, codes.InvalidArgument},
	}
	for _, tc := range cases {
		_, err := c.Evaluate(context.Background(), tc.req)
		assert.Equal(t, tc.code, status.Code(err), "req=%+v err=%v", tc.req, err)
	}
}

func TestDecodeRequestErrors(t *testing.T) {
	for _, m := range []map[string]any{
		{"n": "five"},
		{"n": 2.5},
		{"radii": "1,2"},
		{"phases": []any{"a"}},
		{"n": 1e17},
		{"n": -1e300},
	} {
		st, err := structpb.NewStruct(m)
		require.NoError(t, err)
		_, err = DecodeRequest(st)
		assert.Error(t, err, "%v", m)
	}
}

func TestServiceRejectsBadRequestDirectly(t *testing.T) {
	st, _ := structpb.NewStruct(map[string]any{"n": "x"})
	_, err := NewService(nil).Evaluate(context.Background(), st)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestServiceRejectsHugeSampleCount(t *testing.T) {
	st, err := structpb.NewStruct(map[string]any{"n": 1e17, "preset": "flat"})
	require.NoError(t, err)
	_, err = NewService(nil).Evaluate(context.Background(), st)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
	assert.ErrorContains(t, err, "too many samples")
}

func TestDecodeSamplesRejectsNonNumbers(t *testing.T) {
	st, err := structpb.NewStruct(map[string]any{"samples": []any{[]any{"a", 1.0}}})
	require.NoError(t, err)
	_, err = DecodeSamples(st)
	assert.Error(t, err)

	st, err = structpb.NewStruct(map[string]any{"samples": []any{[]any{0.0, 1.5}}})
	require.NoError(t, err)
	samples, err := DecodeSamples(st)
	require.NoError(t, err)
	assert.Equal(t, []curve.Sample{{X: 0, Y: 1.5}}, samples)
}

func TestEncodeSamplesRejectsNonFinite(t *testing.T) {
	_, err := EncodeSamples([]curve.Sample{{X: 0, Y: math.Inf(1)}})
	assert.ErrorIs(t, err, curve.ErrNonFiniteSample)
}

func TestRequestIDFromContext(t *testing.T) {
	assert.Equal(t, "", RequestIDFromContext(context.Background()))
	var seen string
	icpt := LoggingInterceptor(nil)
	_, err := icpt(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: EvaluateMethod},
		func(ctx context.Context, _ any) (any, error) {
			seen = RequestIDFromContext(ctx)
			return nil, nil
		})
	require.NoError(t, err)
	assert.NotEmpty(t, seen)
}
