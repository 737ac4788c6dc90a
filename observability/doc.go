// Package observability provides OpenTelemetry tracing and metrics
// integration.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, cfg.TracerConfig("schoolauth"))
//	defer tp.Shutdown(ctx)
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, cfg.MeterConfig("schoolauth"))
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewMetrics(observability.Meter("schoolauth"))
//	metrics.RecordOperation(ctx, "schoolauth", "login", "ok", duration)
package observability
