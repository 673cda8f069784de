// Package zookeeper is the namespace client behind the zzk commands.
//
// # Sessions
//
// Every Client operation opens its own session, performs exactly one logical
// operation and closes the session before returning, on success and on error:
//
//	c := zookeeper.NewClient([]string{"127.0.0.1:2181"}, zookeeper.WithTimeout(3*time.Second))
//	rec, err := c.Get(ctx, "/app/config", false)
//
// Sessions are created by a Connector. The default one, Connect, uses
// github.com/go-zookeeper/zk and waits until the session is established or the
// timeout elapses. Tests substitute an in-memory Connector.
//
// # Listing
//
// List returns direct children as bare names, or, recursively, every descendant
// as an absolute path in depth-first pre-order with siblings sorted. The root
// node is special: its children come back as bare names and are turned into
// absolute paths by Reroot before the walk descends into them.
//
// # Writes
//
// Set creates missing ancestors, then performs a read-modify-write conditioned
// on the data version it just read. A concurrent writer makes the write fail
// with a VERSION_CONFLICT error; it is never retried.
//
// Delete removes a whole subtree, children strictly before their parents.
package zookeeper
