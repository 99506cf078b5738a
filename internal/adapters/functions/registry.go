package functions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"

	"hotel_booking/internal/adapters/observability"
	"hotel_booking/internal/domain"
)

var ErrUnknownFunction = fmt.Errorf("function %w", domain.ErrNotFound)

// Definition describes one callable function for tool registration.
type Definition struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Parameters  []Param `json:"parameters"`
}

type Param struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Format      string `json:"format,omitempty"`
	Required    bool   `json:"required"`
	Description string `json:"description,omitempty"`
}

// Call is one function invocation as sent by the orchestrator.
type Call struct {
	ID        string          `json:"id,omitempty"`
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

type Result struct {
	ID     string     `json:"id,omitempty"`
	Name   string     `json:"name"`
	Result any        `json:"result,omitempty"`
	Error  *CallError `json:"error,omitempty"`
}

type CallError struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type function struct {
	def  Definition
	call func(ctx context.Context, args json.RawMessage) (any, error)
}

// Registry maps function names to handlers over the booking services.
type Registry struct {
	funcs map[string]function
	sem   *semaphore.Weighted
	log   zerolog.Logger
}

func newRegistry(maxConcurrent int64, l zerolog.Logger) *Registry {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &Registry{funcs: map[string]function{}, sem: semaphore.NewWeighted(maxConcurrent), log: l}
}

// register binds name to fn. A is the argument struct; its json tags become the parameter list.
func register[A any](r *Registry, name, desc string, fn func(ctx context.Context, a A) (any, error)) {
	params := paramsOf[A]()
	r.funcs[name] = function{
		def: Definition{Name: name, Description: desc, Parameters: params},
		call: func(ctx context.Context, raw json.RawMessage) (any, error) {
			var a A
			if err := decodeArgs(raw, params, &a); err != nil {
				return nil, fmt.Errorf("%s: %w", name, err)
			}
			return fn(ctx, a)
		},
	}
}

// Definitions lists every function sorted by name.
func (r *Registry) Definitions() []Definition {
	out := make([]Definition, 0, len(r.funcs))
	for _, f := range r.funcs {
		out = append(out, f.def)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (r *Registry) Call(ctx context.Context, name string, args json.RawMessage) (any, error) {
	f, ok := r.funcs[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownFunction)
	}
	start := time.Now()
	res, err := f.call(ctx, args)
	dur := time.Since(start)
	observability.ObserveFunction(name, err, dur)

	ev := r.log.Info()
	if err != nil && domain.Kind(err) == "internal" {
		ev = r.log.Error().Err(err)
	}
	ev.Str("function", name).
		Str("status", observability.LabelErr(err)).
		Dur("duration", dur).
		Msg("function_call")
	return res, err
}

// CallBatch runs calls concurrently, at most maxConcurrent at a time, and returns results in call
// order. A failing call does not stop the others.
func (r *Registry) CallBatch(ctx context.Context, calls []Call) []Result {
	out := make([]Result, len(calls))
	var wg sync.WaitGroup
	for i, c := range calls {
		out[i] = Result{ID: c.ID, Name: c.Name}
		if err := r.sem.Acquire(ctx, 1); err != nil {
			out[i].Error = toCallError(err)
			continue
		}
		wg.Add(1)
		go func(i int, c Call) {
			defer wg.Done()
			defer r.sem.Release(1)
			res, err := r.Call(ctx, c.Name, c.Arguments)
			if err != nil {
				out[i].Error = toCallError(err)
				return
			}
			out[i].Result = res
		}(i, c)
	}
	wg.Wait()
	return out
}

func toCallError(err error) *CallError {
	kind := domain.Kind(err)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		kind = "cancelled"
	}
	return &CallError{Kind: kind, Message: err.Error()}
}
