/*
Package dump reads and writes the mysqldump file format used for GLPI database
snapshots. A dump is a sequence of SQL statements: session pragmas up front, then per
table a DROP TABLE IF EXISTS, the CREATE TABLE, and the INSERT statements carrying the
seed rows between LOCK/UNLOCK brackets, then footer pragmas restoring the session.

Parse turns a dump stream into a schema.Snapshot. Write emits a snapshot back in the
same layout, such that a parsed table definition round-trips. The statement scanner is
also used on its own by the loader, which needs to replay statements against a live
server without building the in-memory model.
*/
package dump
