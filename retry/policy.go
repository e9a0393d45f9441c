// This package contains the main [Policy] interface and several implementations.
package retry

import "github.com/teenjuna/ga/internal"

// Policy defines the retry behaviour of transport operations such as dialing
// and re-delivery.
//
// Attempt blocks until an attempt can be made or the context is cancelled,
// waiting between attempts according to the policy configuration, and reports
// whether an attempt should be made. Derive returns a fresh instance for a
// single operation.
//
// Implementations are not considered thread-safe and each instance is used by
// a single caller.
type Policy = internal.RetryPolicy
