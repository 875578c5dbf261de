package store

import (
	"time"

	"github.com/jeerrry/gitlit/object"
)

// DefaultIdent is the author/committer identity used when the caller
// does not supply one, e.g. for commits synthesized in tests.
var DefaultIdent = object.Signature{
	Name:  "gitlit",
	Email: "gitlit@localhost",
}

// CommitTree builds and stores a commit object pointing at tree, with
// an optional parent (object.ZeroID for none) and the given message.
// ident's Date is set to now if it is zero.
func (s *Store) CommitTree(tree object.ID, parent object.ID, message string, ident object.Signature) (object.ID, error) {
	if ident.Date.IsZero() {
		ident.Date = time.Now()
	}
	c := &object.Commit{
		Tree:      tree,
		Author:    ident,
		Committer: ident,
		Message:   message,
	}
	if parent != object.ZeroID {
		c.Parent = []object.ID{parent}
	}
	return s.WriteObject(c)
}
