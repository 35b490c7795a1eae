package handler

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/intelicop/console/internal/adapters/middleware"
)

// ErrUnknownCommand is returned by Dispatch when no pattern matches.
type ErrUnknownCommand struct {
	Args []string
}

func (e *ErrUnknownCommand) Error() string {
	return fmt.Sprintf("unknown command %q", strings.Join(e.Args, " "))
}

// Mux maps space separated command patterns to handlers. The longest
// pattern that prefixes the arguments wins.
type Mux struct {
	routes map[string]middleware.HandlerFunc
}

func NewMux() *Mux {
	return &Mux{routes: make(map[string]middleware.HandlerFunc)}
}

func (m *Mux) HandleFunc(pattern string, h middleware.HandlerFunc) {
	key := strings.Join(strings.Fields(pattern), " ")
	if _, dup := m.routes[key]; dup {
		panic("handler: duplicate command " + key)
	}
	m.routes[key] = h
}

func (m *Mux) Dispatch(ctx context.Context, args []string) error {
	for n := len(args); n > 0; n-- {
		if h, ok := m.routes[strings.Join(args[:n], " ")]; ok {
			return h(ctx, args[n:])
		}
	}
	return &ErrUnknownCommand{Args: args}
}

// Commands lists the registered patterns in sorted order.
func (m *Mux) Commands() []string {
	out := make([]string, 0, len(m.routes))
	for k := range m.routes {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
