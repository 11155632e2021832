// Package health defines the health reporting types shared by the
// connector packages.
//
// A Checker reports a Result with one of three statuses. A Connector is
// a Checker: it is healthy while its circuit breaker is closed (or when
// it has none), degraded while the breaker is probing and unhealthy
// while it is open.
//
//	r := conn.Check(ctx)
//	if r.Status == health.StatusUnhealthy {
//	    logger.Warn(ctx, "registry unavailable", observe.F("error", r.Err))
//	}
//
// Worst folds several results into one status:
//
//	overall := health.Worst(primary.Check(ctx), fallback.Check(ctx))
package health
