package router

import (
	"io"
	"log/slog"
	"net/http"
	"runtime/debug"
	"sync"

	"github.com/dmitrymomot/headcount/core/handler"
)

type mux[C handler.Context] struct {
	mu           sync.RWMutex
	serveMux     *http.ServeMux
	middlewares  []handler.Middleware[C]
	errorHandler handler.ErrorHandler[C]
	newContext   func(http.ResponseWriter, *http.Request) C
	logger       *slog.Logger
	routes       []string
}

func newMux[C handler.Context](opts ...Option[C]) *mux[C] {
	m := &mux[C]{
		serveMux:     http.NewServeMux(),
		errorHandler: defaultErrorHandler[C],
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.newContext == nil {
		var zero C
		if _, ok := any(zero).(*Context); !ok {
			panic(ErrNoContextFactory)
		}
		m.newContext = func(w http.ResponseWriter, r *http.Request) C {
			return any(NewContext(w, r)).(C)
		}
	}

	m.serveMux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		m.errorHandler(m.newContext(w, r), ErrNotFound)
	})

	return m
}

// ServeHTTP implements http.Handler.
func (m *mux[C]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	m.serveMux.ServeHTTP(newResponseWriter(w), r)
}

func (m *mux[C]) Get(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodGet+" "+pattern, h)
}

func (m *mux[C]) Post(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodPost+" "+pattern, h)
}

func (m *mux[C]) Handle(pattern string, h handler.HandlerFunc[C]) {
	m.handle(pattern, h)
}

// Use appends middleware. Only routes registered afterwards are affected.
func (m *mux[C]) Use(middlewares ...handler.Middleware[C]) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.middlewares = append(m.middlewares, middlewares...)
}

// Routes returns registered patterns in registration order.
func (m *mux[C]) Routes() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.routes...)
}

func (m *mux[C]) handle(pattern string, h handler.HandlerFunc[C]) {
	m.mu.Lock()
	fn := handler.Chain(h, m.middlewares...)
	m.routes = append(m.routes, pattern)
	m.mu.Unlock()

	m.serveMux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		m.serve(w, r, fn)
	})
}

func (m *mux[C]) serve(w http.ResponseWriter, r *http.Request, fn handler.HandlerFunc[C]) {
	ctx := m.newContext(w, r)

	defer func() {
		if p := recover(); p != nil {
			panicErr := &panicError{value: p, stack: debug.Stack()}

			if ww, ok := w.(*responseWriter); ok && ww.Written() {
				m.logger.Error("panic after response written",
					"value", panicErr.value,
					"stack", string(panicErr.stack),
					"path", r.URL.Path,
					"method", r.Method,
				)
				return
			}
			m.errorHandler(ctx, panicErr)
		}
	}()

	response := fn(ctx)
	if response == nil {
		m.errorHandler(ctx, ErrNilResponse)
		return
	}

	if err := response(w, r); err != nil {
		m.errorHandler(ctx, err)
	}
}
