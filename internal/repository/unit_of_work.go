package repository

// Operation is the kind of mutation staged in a UnitOfWork.
type Operation int

const (
	OpInsert Operation = iota + 1
	OpUpdate
	OpDelete
)

func (o Operation) String() string {
	switch o {
	case OpInsert:
		return "insert"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Change is one staged mutation.
type Change[T Entity] struct {
	Op     Operation
	Entity T
}

// UnitOfWork collects staged mutations that are committed together by Save.
// A unit is built per call and discarded after commit; it is not safe for
// concurrent use and must not be shared between requests.
type UnitOfWork[T Entity] struct {
	changes []Change[T]
}

func NewUnitOfWork[T Entity]() *UnitOfWork[T] {
	return &UnitOfWork[T]{}
}

// RegisterNew stages an insert. The entity id is replaced on commit.
func (u *UnitOfWork[T]) RegisterNew(e T) {
	u.changes = append(u.changes, Change[T]{Op: OpInsert, Entity: e})
}

// RegisterDirty stages a full replace keyed by the entity id.
func (u *UnitOfWork[T]) RegisterDirty(e T) {
	u.changes = append(u.changes, Change[T]{Op: OpUpdate, Entity: e})
}

// RegisterDeleted stages a removal keyed by the entity id.
func (u *UnitOfWork[T]) RegisterDeleted(e T) {
	u.changes = append(u.changes, Change[T]{Op: OpDelete, Entity: e})
}

// Changes returns the staged mutations in registration order.
func (u *UnitOfWork[T]) Changes() []Change[T] {
	return u.changes
}

func (u *UnitOfWork[T]) Len() int {
	return len(u.changes)
}
