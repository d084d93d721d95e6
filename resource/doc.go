// Package resource provides global resource management: the memory pool
// that aggregator-owned arrays are acquired from and released to, query
// concurrency limits, and query admission rate limiting.
package resource
