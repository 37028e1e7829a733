/*
Package log provides structured logging for Sodium using zerolog.

Init configures the global logger once at startup (level, JSON vs console,
output writer); every component then derives a child logger:

	serverLog := log.WithComponent("server")
	serverLog.Info().Str("address", addr).Msg("Sodium running")

Scope-specific context is chained on with zerolog's With(), as the TCP
server does for its per-connection loggers:

	connLog := serverLog.With().Str("conn_id", uuid.NewString()).Logger()
	connLog.Warn().Str("request", line).Msg("Invalid endpoint accessed")

# Integration Points

  - pkg/server: per-connection request and error logs
  - pkg/pool: worker lifecycle logs
  - pkg/config: config healing notices
  - pkg/cluster: manifest emission
*/
package log
