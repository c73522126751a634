/*
Package verify runs integrity checks over a parsed database snapshot: unique key
collisions, dangling relation ids, and the presence of consistent version markers in
glpi_configs. All checks work on the in-memory model, no database connection needed.
*/
package verify
