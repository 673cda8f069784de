// Package batch runs an operation over a list of independent items and reports
// one outcome per item, in input order.
//
// Value hydration and role probing both work item by item, and an admin tool has
// to decide what a single failing item means for the whole command. That decision
// is a Policy, chosen by the caller:
//
//   - PolicyAbort: the first failure cancels the batch and is returned as the error.
//   - PolicySkip: failed items are logged and dropped, the rest are returned.
//   - PolicyCollect: every outcome is returned, failed ones carrying their error,
//     together with an error joining all failures.
//
// Items run with bounded concurrency via errgroup; results are stored by index,
// so ordering never depends on scheduling. An optional rate limiter paces item starts.
package batch
