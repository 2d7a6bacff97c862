package repository

// Entity is a persisted record whose integer identity is assigned by the store.
type Entity interface {
	GetID() int
	SetID(id int)
}

// Table describes how an entity maps onto a table.
// T is normally a pointer type (*model.Author) so Fields can hand out scan targets.
type Table[T Entity] struct {
	// Name of the table; also used as the cache key prefix.
	Name string
	// Columns excluding "id", in the order Values returns them.
	Columns []string
	// New returns an empty entity ready to be scanned into.
	New func() T
	// Values returns the column values of e, matching Columns.
	Values func(e T) []any
	// Fields returns scan targets for "id" followed by Columns.
	Fields func(e T) []any
}
