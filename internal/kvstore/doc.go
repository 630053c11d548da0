// Package kvstore provides a Badger-backed record.Store.
//
// Key layout:
//
//	rec/<id>         JSON entry {seq, record}
//	seq/<%020d seq>  id, one key per live record in insertion order
//	meta/seq         Badger sequence lease
//
// Every operation runs in a single Badger transaction. Put reads rec/<id> and
// writes both keys atomically, so concurrent Puts of the same identity
// conflict and exactly one commits. Sequence numbers come from a leased
// badger.Sequence; gaps are possible, order is not affected. ListAll iterates the seq/
// prefix inside one read transaction and sees a consistent snapshot.
package kvstore
