// Package retry wraps fallible operations with bounded, constant-delay
// retries.
//
// It is a thin generic layer over github.com/cenkalti/backoff/v5 that adds
// per-attempt warning logs, an optional retry callback for metrics, and a
// composite final error naming the operation and the attempt count.
package retry
