// Package role discovers the role each ensemble member currently plays.
//
// Every address is asked with the "stat" four-letter word over a fresh TCP
// connection. The server answers with a plain text report and closes the
// connection; the report's "Mode:" line tells followers, the leader and
// standalone servers apart:
//
//	p := role.NewProber(role.WithTimeout(3 * time.Second))
//	results, err := p.Probe(ctx, []string{"zk1:2181", "zk2:2181"})
//
// Results come back in input order. Failures are PROBE errors naming the
// address; whether one failure ends the run is decided by the batch policy.
package role
