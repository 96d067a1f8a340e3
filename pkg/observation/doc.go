// Package observation provides a lifecycle-hook instrumentation API.
//
// Callers create named observations around units of work. An observation
// carries a mutable Context (key-values, arbitrary typed values, a captured
// error) and notifies the handlers registered on its Registry at each
// lifecycle point: start, events, error, stop. Handlers do the side work --
// metrics, tracing, logging -- so instrumented code states only WHAT
// happened, never how it is reported.
//
//	reg := observation.NewRegistry()
//	reg.RegisterHandler(bridge.NewLoggingHandler(logger))
//
//	ctx, obs := observation.Start(ctx, "user.create", reg)
//	defer obs.Stop()
//	obs.LowCardinalityKeyValue("user.type", "internal")
//	if err := doWork(ctx); err != nil {
//		obs.Error(err)
//	}
//
// The returned context.Context carries the observation, so nested
// observations find their parent and bridge handlers can nest spans.
package observation
