package server

import (
	"errors"
	"fmt"

	"github.com/thebyteslayer/sodium/pkg/cache"
	"github.com/thebyteslayer/sodium/pkg/metrics"
	"github.com/thebyteslayer/sodium/pkg/pool"
	"github.com/thebyteslayer/sodium/pkg/protocol"
	"github.com/thebyteslayer/sodium/pkg/search"
)

// Executor runs parsed commands against the cache and search engine. It is
// handed to the worker pool, so Execute runs on worker goroutines.
type Executor struct {
	cache  *cache.Cache
	engine *search.Engine
}

// NewExecutor wires an executor over c and its search engine.
func NewExecutor(c *cache.Cache, engine *search.Engine) *Executor {
	return &Executor{cache: c, engine: engine}
}

// Execute dispatches on the command's concrete type. All outcomes travel in
// the Result; Err is reserved for internal failures.
func (e *Executor) Execute(cmd protocol.Command) pool.Result {
	switch cmd := cmd.(type) {
	case protocol.Set:
		e.cache.Set(cmd.Key, cmd.Value)
		metrics.OperationsTotal.Inc()
		metrics.KeysTotal.Set(float64(e.cache.Len()))
		return pool.Result{}
	case protocol.Get:
		metrics.OperationsTotal.Inc()
		value, err := e.cache.Get(cmd.Key)
		if err != nil {
			if errors.Is(err, cache.ErrKeyNotFound) {
				metrics.CacheMissesTotal.Inc()
				return pool.Result{Found: false}
			}
			return pool.Result{Err: err}
		}
		metrics.CacheHitsTotal.Inc()
		return pool.Result{Value: value, Found: true}
	case protocol.Delete:
		metrics.OperationsTotal.Inc()
		existed := e.cache.Delete(cmd.Key)
		metrics.KeysTotal.Set(float64(e.cache.Len()))
		return pool.Result{Existed: existed}
	case protocol.Keys:
		metrics.OperationsTotal.Inc()
		return pool.Result{Keys: e.cache.Keys()}
	case protocol.Search:
		metrics.OperationsTotal.Inc()
		return pool.Result{Keys: e.engine.Search(cmd.Mode, cmd.Queries)}
	default:
		return pool.Result{Err: fmt.Errorf("unsupported command type %T", cmd)}
	}
}
