package instrument

import (
	"context"

	"github.com/jt828/observation/pkg/observation"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// UnaryServerInterceptor runs every unary RPC inside a "grpc.server"
// observation. The gRPC status code is always recorded as a
// low-cardinality key-value, OK included.
func UnaryServerInterceptor(reg *observation.Registry) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		octx, obs := observation.Start(ctx, "grpc.server", reg,
			observation.WithContextualName(info.FullMethod),
			observation.WithLowCardinalityKeyValue("rpc.method", info.FullMethod),
		)

		resp, err := handler(octx, req)

		obs.LowCardinalityKeyValue("rpc.status", status.Code(err).String())
		if err != nil {
			obs.Error(err)
		}
		obs.Stop()
		return resp, err
	}
}

// UnaryClientInterceptor mirrors UnaryServerInterceptor for outgoing
// calls, under the "grpc.client" observation.
func UnaryClientInterceptor(reg *observation.Registry) grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		octx, obs := observation.Start(ctx, "grpc.client", reg,
			observation.WithContextualName(method),
			observation.WithLowCardinalityKeyValue("rpc.method", method),
		)

		err := invoker(octx, method, req, reply, cc, opts...)

		obs.LowCardinalityKeyValue("rpc.status", status.Code(err).String())
		if err != nil {
			obs.Error(err)
		}
		obs.Stop()
		return err
	}
}
