// Package cli implements the zzk command-line interface.
//
// # Overview
//
// zzk is an administrative client for a ZooKeeper ensemble. Every command
// opens one session, performs one operation, closes the session and prints
// the result as a table, JSON or YAML.
//
// # Commands
//
// get - Read a node's value and stat fields:
//
//	zzk get /app/config
//	zzk get --watch /app/config
//
// list - List children by name, or every descendant by path:
//
//	zzk list /
//	zzk list --recursive --show-value /app
//
// set - Write a value, creating the node and its parents when missing:
//
//	zzk set /app/config 'replicas=3'
//	zzk -f json set -- /app/offset -1
//
// set reads its arguments verbatim, so a value may be empty or start with a
// dash. Global flags for set go before the command name.
//
// exists - Report whether a node exists:
//
//	zzk exists /app/config
//
// delete - Remove a node and its whole subtree:
//
//	zzk delete /app
//
// role - Ask every host for its role (Follower, Leader or Standalone):
//
//	zzk -z zk1:2181,zk2:2181,zk3:2181 role
//
// config - Print the effective configuration as TOML:
//
//	zzk config > zzk.toml
//
// # Global Flags
//
//	--format, -f     Output format: table, json, yaml (default: table)
//	--zoo-hosts, -z  Comma separated host:port list (default: 127.0.0.1:2181)
//	--timeout, -t    Connect timeout in milliseconds (default: 3000)
//	--quiet, -q      Print nothing; only the exit code reports the outcome
//	--output, -o     Output file path (default: stdout)
//	--on-error       abort, skip or collect failures of list values and role hosts
//	--concurrency    Values or hosts fetched in parallel (default: 1)
//	--rate           Maximum value fetches per second, 0 for unlimited
//	--config         TOML configuration file
//	--metrics-file   Write Prometheus metrics to a file when the command ends
//	--debug          Enable debug logging
//	--log-json       Output logs in JSON format
//
// # Failure Policies
//
// list --show-value and role work on many items. By default the first failure
// ends the command. With --on-error skip failed items are left out and logged
// as warnings. With --on-error collect every item is printed, failed ones with
// an error column, and the command still exits 1.
//
// # Environment Variables
//
//	ZOO_HOSTS   Default for --zoo-hosts
//	ZZK_CONFIG  Default for --config
//	LOG_LEVEL   Logging verbosity (debug, info, warn, error)
//
// # Exit Codes
//
//	0  Success
//	1  Any failure; unless --quiet is set the error is printed as "Error, <message>"
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/zzk-cli/zzk/pkg/cli.version=1.0.0'"
package cli
