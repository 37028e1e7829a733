/*
Package search implements the AND-of-substrings search over the cache.

A search takes a mode (key, value, key or value, key and value) and a
non-empty list of queries. A key matches when every lower-cased query is a
substring of the lower-cased key and/or value, per the mode's truth table.
Only ASCII case folding is applied.

Searches are full scans over the current key snapshot; callers should not
expect sub-linear latency.
*/
package search
