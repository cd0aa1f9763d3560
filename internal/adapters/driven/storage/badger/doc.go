// Package badger provides a BadgerDB-backed implementation of the document and
// embedding store ports, using badgerhold for typed records and secondary
// indexes.
//
// Documents are indexed by owner so ListByUser does not scan the whole store.
// Embedding writes run the dimension check and the upsert inside one Badger
// transaction, under a process-wide writer lock.
package badger
