/*
Package config loads and heals the sodium.toml configuration file.

Recognized keys and defaults:

	bind-ip         = "0.0.0.0"
	bind-port       = 1123
	cluster_enabled = false
	whisper_timeout = 1

The file is self-healing: a missing file is created with defaults, and a file
that fails to decode has its recognized keys salvaged field-by-field from the
top-level table with everything else reverting to defaults. The healed result
is always written back, so the on-disk file converges on a valid config after
one startup.
*/
package config
