package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"bookstore-api/internal/metrics"
	"bookstore-api/pkg/cache"
	"bookstore-api/pkg/database"
)

// ErrStoreUnavailable wraps read failures of the underlying store.
var ErrStoreUnavailable = errors.New("data store unavailable")

const defaultCacheTTL = 5 * time.Minute

type Option func(*options)

type options struct {
	cache cache.Cache
	ttl   time.Duration
}

// WithCache enables cache-aside reads for FindByID.
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(o *options) {
		if c != nil {
			o.cache = c
		}
		if ttl > 0 {
			o.ttl = ttl
		}
	}
}

// Repository mediates every persistence access for one entity type.
// It holds no per-request state: mutations go through a fresh UnitOfWork.
type Repository[T Entity] struct {
	store Store[T]
	table Table[T]
	cache cache.Cache
	ttl   time.Duration

	// generation moves on every commit that touches existing rows;
	// a read that overlapped one must not fill the cache
	generation atomic.Uint64
}

func New[T Entity](store Store[T], table Table[T], opts ...Option) *Repository[T] {
	o := options{cache: cache.Nop{}, ttl: defaultCacheTTL}
	for _, opt := range opts {
		opt(&o)
	}
	return &Repository[T]{
		store: store,
		table: table,
		cache: o.cache,
		ttl:   o.ttl,
	}
}

func (r *Repository[T]) FindAll(ctx context.Context) ([]T, error) {
	items, err := r.store.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return items, nil
}

// FindByID reports found=false without an error when no entity has the id.
func (r *Repository[T]) FindByID(ctx context.Context, id int) (T, bool, error) {
	var zero T
	key := r.cacheKey(id)

	cached := r.table.New()
	if hit, err := r.cache.Get(ctx, key, cached); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache get failed")
	} else if hit {
		return cached, true, nil
	}

	gen := r.generation.Load()
	e, err := r.store.FindByID(ctx, id)
	if errors.Is(err, database.ErrNoRows) {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	r.fill(ctx, key, e, gen)
	return e, true, nil
}

func (r *Repository[T]) Exists(ctx context.Context, id int) (bool, error) {
	ok, err := r.store.Exists(ctx, id)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return ok, nil
}

// Create inserts e and overwrites its id with the store-assigned one.
func (r *Repository[T]) Create(ctx context.Context, e T) (bool, error) {
	uow := NewUnitOfWork[T]()
	uow.RegisterNew(e)
	return r.Save(ctx, uow)
}

// Update replaces the row with e's id. The id is not re-checked here.
func (r *Repository[T]) Update(ctx context.Context, e T) (bool, error) {
	uow := NewUnitOfWork[T]()
	uow.RegisterDirty(e)
	return r.Save(ctx, uow)
}

func (r *Repository[T]) Delete(ctx context.Context, e T) (bool, error) {
	uow := NewUnitOfWork[T]()
	uow.RegisterDeleted(e)
	return r.Save(ctx, uow)
}

// Save commits every change staged in uow atomically.
// It returns true only when at least one row was affected; an empty unit is a no-op.
func (r *Repository[T]) Save(ctx context.Context, uow *UnitOfWork[T]) (bool, error) {
	if uow == nil || uow.Len() == 0 {
		return false, nil
	}

	mutatesRows := touchesExisting(uow)
	if mutatesRows {
		r.generation.Add(1)
	}

	affected, err := r.store.Commit(ctx, uow)
	if err != nil {
		metrics.IncCommit(r.table.Name, "failed")
		return false, err
	}

	if mutatesRows {
		r.generation.Add(1)
		r.invalidate(ctx, uow)
	}
	if affected == 0 {
		metrics.IncCommit(r.table.Name, "noop")
		return false, nil
	}
	metrics.IncCommit(r.table.Name, "affected")
	return true, nil
}

func (r *Repository[T]) invalidate(ctx context.Context, uow *UnitOfWork[T]) {
	keys := make([]string, 0, uow.Len())
	for _, c := range uow.Changes() {
		if c.Op == OpInsert {
			continue
		}
		keys = append(keys, r.cacheKey(c.Entity.GetID()))
	}
	if len(keys) == 0 {
		return
	}
	if err := r.cache.Delete(ctx, keys...); err != nil {
		log.Warn().Err(err).Strs("keys", keys).Msg("cache invalidation failed")
	}
}

// fill caches e unless a commit ran since gen was read. A commit that lands
// between the check and Set is caught by the second check.
func (r *Repository[T]) fill(ctx context.Context, key string, e T, gen uint64) {
	if r.generation.Load() != gen {
		return
	}
	if err := r.cache.Set(ctx, key, e, r.ttl); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache set failed")
		return
	}
	if r.generation.Load() != gen {
		if err := r.cache.Delete(ctx, key); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("cache evict failed")
		}
	}
}

func touchesExisting[T Entity](uow *UnitOfWork[T]) bool {
	for _, c := range uow.Changes() {
		if c.Op != OpInsert {
			return true
		}
	}
	return false
}

func (r *Repository[T]) cacheKey(id int) string {
	return r.table.Name + ":" + strconv.Itoa(id)
}
