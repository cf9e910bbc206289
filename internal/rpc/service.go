// Package rpc serves curve evaluation over gRPC.
//
// Messages are google.protobuf.Struct values so the service needs no generated
// code. A request carries either a preset name or the parallel lists
// radii/frequencies/phases, plus optional n, target, formula and unit:
//
//	{"n": 5, "radii": [1,1,1], "frequencies": [1,2,3], "phases": [0,0,0]}
//
// The response holds "samples" as a list of [x, y] pairs.
package rpc

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/xtding233/circle-curves/internal/curve"
)

const (
	ServiceName    = "curves.v1.CurveService"
	EvaluateMethod = "/" + ServiceName + "/Evaluate"
)

// CurveServiceServer is the server API for CurveService.
type CurveServiceServer interface {
	Evaluate(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// Service implements CurveServiceServer.
type Service struct {
	logger *zap.Logger
}

func NewService(logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{logger: logger}
}

// Register attaches the service to s.
func Register(s *grpc.Server, svc CurveServiceServer) {
	s.RegisterService(&serviceDesc, svc)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CurveServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Evaluate", Handler: evaluateHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "curves/v1/curve.proto",
}

func evaluateHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CurveServiceServer).Evaluate(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: EvaluateMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CurveServiceServer).Evaluate(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// Evaluate decodes the request, evaluates the curve and encodes the samples.
func (s *Service) Evaluate(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req, err := DecodeRequest(in)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	c, err := req.Curve()
	if err != nil {
		return nil, toStatus(err)
	}
	samples, err := c.Evaluate()
	if err != nil {
		return nil, toStatus(err)
	}
	out, err := EncodeSamples(samples)
	if err != nil {
		return nil, toStatus(err)
	}
	s.logger.Debug("curve evaluated",
		zap.String("request_id", RequestIDFromContext(ctx)),
		zap.Int("n", c.N),
		zap.Int("components", len(c.Components)))
	return out, nil
}

func toStatus(err error) error {
	switch {
	case errors.Is(err, curve.ErrInvalidSampleCount),
		errors.Is(err, curve.ErrInvalidCurve),
		errors.Is(err, curve.ErrNonFiniteSample),
		errors.Is(err, ErrMismatchedLists),
		errors.Is(err, ErrTooManySamples):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, ErrUnknownPreset):
		return status.Error(codes.NotFound, err.Error())
	}
	return status.Error(codes.Internal, err.Error())
}

// EncodeSamples packs samples as {"samples": [[x, y], ...]}.
// Non-finite values cannot be represented in JSON-like Structs and are rejected.
func EncodeSamples(samples []curve.Sample) (*structpb.Struct, error) {
	if err := curve.CheckFinite(samples); err != nil {
		return nil, err
	}
	pairs := make([]any, len(samples))
	for i, s := range samples {
		pairs[i] = []any{s.X, s.Y}
	}
	return structpb.NewStruct(map[string]any{"samples": pairs})
}

// DecodeSamples is the inverse of EncodeSamples.
func DecodeSamples(st *structpb.Struct) ([]curve.Sample, error) {
	list := st.GetFields()["samples"].GetListValue()
	if list == nil {
		return nil, errors.New("response has no samples list")
	}
	out := make([]curve.Sample, 0, len(list.GetValues()))
	for i, v := range list.GetValues() {
		pair := v.GetListValue().GetValues()
		if len(pair) != 2 {
			return nil, fmt.Errorf("sample %d: want [x, y]", i)
		}
		x, err := number(pair[0], fmt.Sprintf("samples[%d].x", i))
		if err != nil {
			return nil, err
		}
		y, err := number(pair[1], fmt.Sprintf("samples[%d].y", i))
		if err != nil {
			return nil, err
		}
		out = append(out, curve.Sample{X: x, Y: y})
	}
	return out, nil
}
