// Package timeouts defines shared timeout constants used across services.
// Centralizing these values prevents drift between service boundaries and
// makes the durations discoverable.
package timeouts

import "time"

// GeneratorInvoke caps one attempt against the generation capability.
const GeneratorInvoke = 60 * time.Second

// GeneratorRetryCap bounds the total time the retry policy may spend on a
// single logical generator call, attempts and backoff included.
const GeneratorRetryCap = 3 * time.Minute

// ReadHeader limits how long the HTTP transport waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long an HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second
