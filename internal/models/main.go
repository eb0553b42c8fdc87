package models

// ModelRegistry lists the tables created by --auto-migrate.
var ModelRegistry = []any{
	&KVEntry{},
}
