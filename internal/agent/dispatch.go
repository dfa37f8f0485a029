// Package agent provides directive parsing and action dispatch.
package agent

import (
	"fmt"
	"log/slog"
	"strings"
)

// ActionHandler executes a registered action with the parsed directive
// parameters and returns renderable result text. Handlers report failures as
// error-labeled strings, never by aborting the turn.
type ActionHandler func(params map[string]string) string

type registeredAction struct {
	name    string
	handler ActionHandler
}

// ActionDispatcher parses directive strings of the form
// "<ActionName>: key1=value1, key2=value2" and invokes the matching
// registered action. It is stateless per call.
type ActionDispatcher struct {
	actions []registeredAction
}

// NewActionDispatcher creates an empty dispatcher.
func NewActionDispatcher() *ActionDispatcher {
	return &ActionDispatcher{}
}

// Register adds an action handler. Registrations are validated here rather
// than at call time; dispatch order follows registration order.
func (d *ActionDispatcher) Register(name string, handler ActionHandler) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("action name cannot be empty")
	}
	if handler == nil {
		return fmt.Errorf("action handler cannot be nil for %s", name)
	}
	for _, action := range d.actions {
		if action.name == name {
			return fmt.Errorf("action %s already registered", name)
		}
	}
	d.actions = append(d.actions, registeredAction{name: name, handler: handler})
	slog.Debug("ActionDispatcher.Register: action registered", "action", name)
	return nil
}

// ActionNames returns registered action names in registration order.
func (d *ActionDispatcher) ActionNames() []string {
	names := make([]string, len(d.actions))
	for i, action := range d.actions {
		names[i] = action.name
	}
	return names
}

// ParseDirective splits a directive into action name and parameters. The name
// is everything before the first colon, trimmed. The remainder is split on
// commas; each segment is split on the first "=" with trimmed key and value.
// Segments without "=" are ignored.
func ParseDirective(directive string) (string, map[string]string) {
	name := directive
	remainder := ""
	if idx := strings.Index(directive, ":"); idx >= 0 {
		name = directive[:idx]
		remainder = directive[idx+1:]
	}
	name = strings.TrimSpace(name)

	params := make(map[string]string)
	for _, segment := range strings.Split(remainder, ",") {
		key, value, found := strings.Cut(segment, "=")
		if !found {
			continue
		}
		params[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return name, params
}

// Dispatch parses the directive and invokes the first registered action with
// an exact name match. A miss returns an error-labeled string rather than an
// error value so the conversation always receives renderable text.
func (d *ActionDispatcher) Dispatch(directive string) string {
	slog.Debug("ActionDispatcher.Dispatch: dispatching directive", "directive", directive)

	name, params := ParseDirective(directive)
	for _, action := range d.actions {
		if action.name == name {
			result := action.handler(params)
			slog.Info("ActionDispatcher.Dispatch: action executed", "action", name, "params", len(params))
			return result
		}
	}

	slog.Error("ActionDispatcher.Dispatch: no action registered", "action", name)
	return fmt.Sprintf("Error: unknown action: %s", name)
}
