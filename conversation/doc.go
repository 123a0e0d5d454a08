// Package conversation holds the dialogue data model.
//
// Invariants:
//   - The Log is append-only: no turn is removed, reordered, or mutated
//     after being added.
//   - Speakers need not alternate; a tool-result turn is recorded as a
//     user turn because that is how the service protocol expects it.
//
// Flow:
//
//	user(text) -> assistant(tool_use) -> user(tool_result) -> assistant(text)
package conversation
