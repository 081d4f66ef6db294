// Package rpc exposes the calculator as the gRPC service fleetcalc.v1.Analysis.
// Requests and responses are google.protobuf.Struct documents carrying the
// same JSON shapes as the HTTP API, so no generated stubs are needed.
package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/cory-johannsen/fleetcalc/internal/calc"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "fleetcalc.v1.Analysis"

// Full method names.
const (
	AnalyzeMethod = "/" + ServiceName + "/Analyze"
	SampleMethod  = "/" + ServiceName + "/Sample"
)

// AnalysisServer is the server API of fleetcalc.v1.Analysis.
type AnalysisServer interface {
	Analyze(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	Sample(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
}

func unaryHandler(method string, call func(AnalysisServer, context.Context, *structpb.Struct) (*structpb.Struct, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(AnalysisServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: method}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(AnalysisServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// ServiceDesc describes fleetcalc.v1.Analysis for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AnalysisServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Analyze",
			Handler:    unaryHandler(AnalyzeMethod, AnalysisServer.Analyze),
		},
		{
			MethodName: "Sample",
			Handler:    unaryHandler(SampleMethod, AnalysisServer.Sample),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "fleetcalc/v1/analysis.proto",
}

// RegisterAnalysisServer registers srv on s.
func RegisterAnalysisServer(s grpc.ServiceRegistrar, srv AnalysisServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// Client is the client API of fleetcalc.v1.Analysis.
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient wraps cc.
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// Analyze calls fleetcalc.v1.Analysis/Analyze.
func (c *Client) Analyze(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, AnalyzeMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// Sample calls fleetcalc.v1.Analysis/Sample.
func (c *Client) Sample(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, SampleMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// Server implements AnalysisServer over a calc.Service.
type Server struct {
	svc    *calc.Service
	logger *zap.Logger
}

// NewServer creates a Server.
//
// Precondition: svc and logger must be non-nil.
func NewServer(svc *calc.Service, logger *zap.Logger) *Server {
	return &Server{svc: svc, logger: logger}
}

// sampleRequest is the Sample request document.
type sampleRequest struct {
	calc.Query
	Trials int `json:"trials"`
}

// Analyze evaluates a calc.Query document.
func (s *Server) Analyze(_ context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var q calc.Query
	if err := decodeStruct(in, &q); err != nil {
		return nil, err
	}
	rep, err := s.svc.Analyze(q)
	if err != nil {
		return nil, s.statusOf(AnalyzeMethod, err)
	}
	return encodeStruct(rep)
}

// Sample draws shelling outcomes for a calc.Query document with a trials field.
func (s *Server) Sample(_ context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req sampleRequest
	if err := decodeStruct(in, &req); err != nil {
		return nil, err
	}
	tallies, err := s.svc.Sample(req.Query, req.Trials)
	if err != nil {
		return nil, s.statusOf(SampleMethod, err)
	}
	return encodeStruct(map[string]any{"trials": req.Trials, "ships": tallies})
}

func (s *Server) statusOf(method string, err error) error {
	if calc.IsDeckError(err) || calc.IsInputError(err) {
		s.logger.Warn("rpc rejected", zap.String("method", method), zap.Error(err))
		return status.Error(codes.InvalidArgument, err.Error())
	}
	s.logger.Error("rpc failed", zap.String("method", method), zap.Error(err))
	return status.Error(codes.Internal, "internal error")
}

func decodeStruct(in *structpb.Struct, v any) error {
	raw, err := in.MarshalJSON()
	if err != nil {
		return status.Errorf(codes.InvalidArgument, "encoding request: %v", err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return status.Errorf(codes.InvalidArgument, "decoding request: %v", err)
	}
	return nil
}

func encodeStruct(v any) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encoding response: %v", err)
	}
	out := new(structpb.Struct)
	if err := out.UnmarshalJSON(raw); err != nil {
		return nil, status.Errorf(codes.Internal, "encoding response: %v", err)
	}
	return out, nil
}

// LoggingInterceptor logs every unary call with its status code at debug.
func LoggingInterceptor(logger *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		fields := []zap.Field{
			zap.String("method", info.FullMethod),
			zap.String("code", status.Code(err).String()),
			zap.Duration("elapsed", time.Since(start)),
		}
		if err != nil {
			logger.Debug("rpc call failed", append(fields, zap.Error(err))...)
		} else {
			logger.Debug("rpc call", fields...)
		}
		return resp, err
	}
}

// NewGRPCServer builds a grpc.Server with the analysis service registered.
func NewGRPCServer(svc *calc.Service, logger *zap.Logger) *grpc.Server {
	s := grpc.NewServer(grpc.ChainUnaryInterceptor(LoggingInterceptor(logger)))
	RegisterAnalysisServer(s, NewServer(svc, logger))
	return s
}

// Request builds a request document from q.
func Request(q calc.Query) (*structpb.Struct, error) {
	st, err := encodeStruct(q)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	return st, nil
}
