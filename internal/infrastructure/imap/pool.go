package imap

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"
)

// DefaultKey clave de la conexión compartida por toda la aplicación.
const DefaultKey = "default"

// PoolConfig funciones que el pool necesita para administrar conexiones de tipo C.
type PoolConfig[C any] struct {
	Dial  func(ctx context.Context, key string) (C, error)
	Alive func(C) bool
	Close func(C) error
	// Retain informa si la conexión sigue siendo usable tras err (p. ej. una respuesta NO del servidor).
	// nil = toda operación fallida descarta la conexión.
	Retain func(err error) bool
}

// Pool mantiene una conexión perezosa por clave. Las operaciones sobre una misma conexión
// se serializan; las conexiones concurrentes a una clave se deduplican.
type Pool[C any] struct {
	cfg     PoolConfig[C]
	mu      sync.Mutex
	entries map[string]*entry[C]
	group   singleflight.Group
}

type entry[C any] struct {
	mu     sync.Mutex
	conn   C
	closed bool
}

// NewPool construye el pool.
func NewPool[C any](cfg PoolConfig[C]) *Pool[C] {
	return &Pool[C]{cfg: cfg, entries: make(map[string]*entry[C])}
}

// Do ejecuta fn con la conexión de key, conectando si hace falta.
func (p *Pool[C]) Do(ctx context.Context, key string, fn func(C) error) error {
	for attempt := 0; ; attempt++ {
		e, err := p.acquire(ctx, key)
		if err != nil {
			return err
		}
		e.mu.Lock()
		if e.closed || !p.cfg.Alive(e.conn) {
			p.evictLocked(key, e)
			e.mu.Unlock()
			if attempt > 0 {
				return fmt.Errorf("imap: conexión %q no disponible", key)
			}
			continue
		}
		err = fn(e.conn)
		if err != nil && (p.cfg.Retain == nil || !p.cfg.Retain(err) || !p.cfg.Alive(e.conn)) {
			p.evictLocked(key, e)
		}
		e.mu.Unlock()
		return err
	}
}

func (p *Pool[C]) acquire(ctx context.Context, key string) (*entry[C], error) {
	if e := p.lookup(key); e != nil {
		return e, nil
	}
	v, err, _ := p.group.Do(key, func() (any, error) {
		if e := p.lookup(key); e != nil {
			return e, nil
		}
		conn, err := p.cfg.Dial(ctx, key)
		if err != nil {
			return nil, err
		}
		e := &entry[C]{conn: conn}
		p.mu.Lock()
		p.entries[key] = e
		p.mu.Unlock()
		return e, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*entry[C]), nil
}

func (p *Pool[C]) lookup(key string) *entry[C] {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.entries[key]
}

// evictLocked quita e del mapa y cierra su conexión. Requiere e.mu tomado.
func (p *Pool[C]) evictLocked(key string, e *entry[C]) {
	p.mu.Lock()
	if p.entries[key] == e {
		delete(p.entries, key)
	}
	p.mu.Unlock()
	if !e.closed {
		e.closed = true
		_ = p.cfg.Close(e.conn)
	}
}

// Close cierra y olvida la conexión de key.
func (p *Pool[C]) Close(key string) {
	e := p.lookup(key)
	if e == nil {
		return
	}
	e.mu.Lock()
	p.evictLocked(key, e)
	e.mu.Unlock()
}

// CloseAll cierra todas las conexiones.
func (p *Pool[C]) CloseAll() {
	p.mu.Lock()
	keys := make([]string, 0, len(p.entries))
	for k := range p.entries {
		keys = append(keys, k)
	}
	p.mu.Unlock()
	for _, k := range keys {
		p.Close(k)
	}
}

// Len cantidad de conexiones abiertas.
func (p *Pool[C]) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.entries)
}
