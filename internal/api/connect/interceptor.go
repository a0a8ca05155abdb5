package connect

import (
	"context"
	"time"

	"connectrpc.com/connect"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/negativespace/internal/infra/metrics"
)

// NewObservabilityInterceptor creates an interceptor that logs unary calls
// at debug level and counts them by procedure and status code.
func NewObservabilityInterceptor(m *metrics.Metrics) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			procedure := req.Spec().Procedure

			resp, err := next(ctx, req)

			code := "ok"
			if err != nil {
				code = connect.CodeOf(err).String()
			}
			m.RPCs.WithLabelValues(procedure, code).Inc()
			zlog.Debug().Msgf("rpc: procedure=%s code=%s elapsed=%s", procedure, code, time.Since(start))

			return resp, err
		}
	}
}
