package nextdns

// Result is the outcome of a read that never fails. When Degraded is set, Data is
// the default value and Cause the error that was swallowed.
type Result[T any] struct {
	Data     T
	Degraded bool
	Cause    error
}

func degraded[T any](c *Client, op, profileID string, fallback T, err error) Result[T] {
	c.stats.degraded.Add(1)
	c.logger.Warn("upstream read degraded to default",
		"op", op,
		"profile", profileID,
		"err", err,
	)
	return Result[T]{Data: fallback, Degraded: true, Cause: err}
}
