// Package cache provides a read-through cache in front of a provider.Provider.
//
// Values are stored as JSON under "<prefix>:<kind>:<key>" with a fixed TTL.
// NotFound results are not cached, and a failing cache never fails a read:
// errors are logged and the call falls through to the wrapped provider.
package cache
