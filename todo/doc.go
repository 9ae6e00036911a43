// Package todo implements the checklist tree and its path-addressed cursor.
//
// A tree is a single exclusively owned root Item. Nodes are addressed by a
// Selection, the list of child indices from the root, never by pointers held
// across a mutation: after a delete the editor clamps its Selection back into
// bounds instead of keeping a reference to a node that may have moved.
package todo
