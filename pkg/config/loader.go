package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type cacheEntry struct {
	once  sync.Once
	value any
	err   error
}

var (
	cacheMu sync.Mutex
	cache   = make(map[reflect.Type]*cacheEntry)

	dotenvOnce sync.Once
)

// Load parses environment variables into v. The first successful result for
// a given type T is cached and copied into v on subsequent calls.
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}

	dotenvOnce.Do(func() {
		_ = godotenv.Load()
	})

	entry := entryFor(reflect.TypeFor[T]())
	entry.once.Do(func() {
		var parsed T
		if err := env.Parse(&parsed); err != nil {
			entry.err = errors.Join(ErrParsingConfig, err)
			return
		}
		entry.value = parsed
	})

	if entry.err != nil {
		// Failed parses are not cached so a corrected environment can be retried.
		forget(reflect.TypeFor[T]())
		return entry.err
	}

	cached, ok := entry.value.(T)
	if !ok {
		return ErrConfigNotLoaded
	}
	*v = cached
	return nil
}

// MustLoad is like Load but panics on failure.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
}

// Reset clears all cached configurations.
func Reset() {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	cache = make(map[reflect.Type]*cacheEntry)
}

func entryFor(t reflect.Type) *cacheEntry {
	cacheMu.Lock()
	defer cacheMu.Unlock()

	e, ok := cache[t]
	if !ok {
		e = &cacheEntry{}
		cache[t] = e
	}
	return e
}

func forget(t reflect.Type) {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	delete(cache, t)
}
