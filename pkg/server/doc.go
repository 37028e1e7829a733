/*
Package server implements Sodium's TCP front end.

One accept loop, one goroutine per connection. Each connection reads
LF-terminated lines (CR tolerated in trimming), skips empty lines, and for
every request writes exactly one response line before reading the next
request — strict 1:1 pipelining per connection, no ordering across
connections:

	read line ─► protocol.Parse ─► pool.Dispatch ─► await reply ─► write line

Parse failures answer "ERROR: Invalid endpoint format" and keep the
connection open. Dispatch failures answer "ERROR: Failed to queue task".
Network errors are logged and drop the connection; they never reach the
client or the accept loop. The loop itself exits on context cancellation
(SIGINT at the binary level), leaving in-flight workers to finish.
*/
package server
