// Package rulestore persists user custom site rules in SQLite.
//
// Each row holds the full rule list for one hostname, serialized as
// JSON. The store applies migrations on open and takes a file lock next
// to the database so two processes never write concurrently. Custom
// rules win over built-in rules when the registry merges tables.
package rulestore
