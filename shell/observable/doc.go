// Package observable wraps command and query handlers with metrics, tracing
// and logging while the handlers themselves stay free of instrumentation.
//
// Wrappers are applied at wiring time, so which concerns get observed is
// decided where the application is assembled and not inside the handlers:
//
//	coreHandler := checkoutbook.NewCommandHandler(libraryStore, policy)
//
//	observableHandler, err := observable.NewCommandWrapper(
//		coreHandler,
//		observable.WithCommandMetrics[checkoutbook.Command](metricsCollector),
//		observable.WithCommandTracing[checkoutbook.Command](tracingCollector),
//		observable.WithCommandContextualLogging[checkoutbook.Command](contextualLogger),
//	)
//
//	result, err := observableHandler.Handle(ctx, command)
//
// Every option is independent, so a wrapper can carry any subset of the
// collectors. Unit tests that only care about business behavior skip the
// wrapping and call the core handler directly.
package observable
