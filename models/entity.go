package models

// Entity is implemented by every persisted record the admin surface manages.
// The store relies on it to run uniqueness and reference checks generically.
type Entity interface {
	TableName() string
	// PrimaryKey is the primary key column name.
	PrimaryKey() string
	EntityID() uint
	// UniqueFields lists columns that must not collide with another row.
	UniqueFields() []UniqueField
	// References lists foreign keys that must resolve to an existing row.
	References() []Reference
	// Normalize canonicalizes user-entered values. The store calls it before
	// every write so unique columns compare equal however they were entered.
	Normalize()
}

// UniqueField is a column value that must be unique across its table.
type UniqueField struct {
	Column string
	Value  string
}

// Reference is a foreign key value pointing at Table.Key.
type Reference struct {
	Column string
	Table  string
	Key    string
	ID     uint
}
