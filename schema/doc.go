/*
Package schema models a GLPI database snapshot: table definitions, indexes, and the
seed rows carried by a mysqldump export. It is the in-memory form produced by the dump
parser and consumed by the verify checks and the dump writer.

The package also encodes GLPI's schema conventions: integer surrogate keys, the
sentinel id 0 meaning "no relation", foreign-key-shaped columns named after the
referenced table (entities_id, users_id_tech), and the polymorphic itemtype/items_id
pair used by junction tables.
*/
package schema
