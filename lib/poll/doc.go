// Package poll contains the domain rules of tallykv: creation, mutation and
// vote casting on poll records.
//
// Per record the lifecycle is Absent -> Created -> {Edited, Voted}* ->
// Deleted, where Deleted is terminal and the identifier is never reused.
// Edits replace question and options and reset the tally to zero over the
// new options; votes increment exactly one tally entry of a current option.
//
// Ownership is intentionally not enforced here. The access adapter in
// rpc/server applies a pluggable authorizer before invoking Edit or Delete,
// so the policy can vary per deployment without touching the domain rules.
package poll
