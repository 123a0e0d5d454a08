// Package orchestrator coordinates the conversation loop: input acquisition,
// Messages API calls, and sequential tool dispatch.
//
// Invariants:
//   - Tool invocations execute in response order, one at a time; their
//     results are appended as a single user turn in the same order.
//   - An assistant response without tool invocations puts the loop back in
//     the awaiting-input state before the next service call.
//   - Exactly one activity is in flight at any time; there is no overlap
//     between input reads, service calls, and tool executions.
package orchestrator
