// Package defaults provides centralized configuration constants for zzk.
//
// This package defines connection timeouts, batch limits and other defaults used
// across the codebase. Centralizing these values keeps the CLI flags, the
// configuration file and the library packages in agreement.
//
// # Usage
//
// Import and use constants directly:
//
//	import "github.com/zzk-cli/zzk/pkg/defaults"
//
//	client := zookeeper.NewClient(hosts, zookeeper.WithTimeout(defaults.ConnectTimeout))
//
// # Timeout Guidelines
//
//   - Session connect: 3s, the time allowed to establish a session with any server
//   - Role probe: same as connect, applied per address to dial, write and read
package defaults
