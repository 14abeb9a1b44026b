// Package report persists batch validation runs in SQLite so repeated runs
// over a container library stay comparable over time.
//
// Each batch run becomes one row plus a per-file report row for every
// container examined. The store applies WAL mode and retries on SQLITE_BUSY
// with capped backoff; schema changes bump a version guard rather than
// migrating in place.
package report
