package defaults

import "time"

// Connection defaults.
const (
	// ZooHosts is the server list used when neither --zoo-hosts nor ZOO_HOSTS is set.
	ZooHosts = "127.0.0.1:2181"

	// ConnectTimeout bounds session establishment and each role probe.
	ConnectTimeout = 3000 * time.Millisecond

	// ConnectTimeoutMillis is ConnectTimeout expressed the way the CLI flag takes it.
	ConnectTimeoutMillis = 3000
)

// Batch defaults for value hydration and role probing.
const (
	// BatchConcurrency is the number of items worked on at once; 1 keeps the
	// traversal strictly sequential.
	BatchConcurrency = 1

	// MaxBatchConcurrency caps --concurrency.
	MaxBatchConcurrency = 64

	// HydrationRate is the default requests-per-second cap for value hydration; 0 disables it.
	HydrationRate = 0
)

// Environment variables.
const (
	// EnvZooHosts overrides the default server list.
	EnvZooHosts = "ZOO_HOSTS"

	// EnvConfig points at a TOML configuration file.
	EnvConfig = "ZZK_CONFIG"

	// EnvLogLevel sets logging verbosity (debug, info, warn, error).
	EnvLogLevel = "LOG_LEVEL"
)
