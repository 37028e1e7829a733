/*
Package metrics defines Sodium's Prometheus instrumentation.

All collectors are package-level variables registered at init. The cache
executor feeds the hit/miss/keys series, the TCP server feeds the
connection and request series, and dispatch failures count tasks the worker
pool rejected. The /metrics endpoint is only exposed when the server is
started with --metrics-addr; the collectors are cheap enough to update
unconditionally.
*/
package metrics
