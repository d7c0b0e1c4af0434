// Package sync implements the bulk state-reconciliation endpoint for
// the agent fleet.
//
// Remote agents deliver batches of heterogeneous updates (agents,
// executions, tasks, notifications) with at-least-once semantics. One
// batch is processed sequentially inside a single transaction, in fixed
// category order: agents first, so executions referencing an agent
// created in the same batch always resolve.
//
// # Per-item isolation
//
// A record that fails validation, identity resolution or persistence is
// dropped and reported in the batch result's errors list; the rest of
// the batch continues and the transaction still commits. Only
// infrastructure failures (store unreachable, deadline fired) roll the
// whole batch back.
//
// # Reconciliation rules
//
//   - Agents are upserted by unique name; dept is fixed at creation.
//   - Executions are create-only and must reference an existing agent.
//   - Tasks route on the presence of taskId: present means partial
//     update, absent means create. The two paths never overlap.
//   - Notifications are plain creates.
//
// The HTTP surface always answers 200 for a processed batch, even a
// partially failed one; callers must inspect the errors array.
package sync
