// Package avatar maps bot commands to DiceBear rendering styles and fetches
// the generated avatar images.
package avatar

import "fmt"

// Style binds a bot command token to a DiceBear style identifier.
type Style struct {
	Command string
	ID      string
}

// DefaultStyles is the fixed command table served by the bot.
var DefaultStyles = []Style{
	{Command: "/fun-emoji", ID: "fun-emoji"},
	{Command: "/avataaars", ID: "avataaars"},
	{Command: "/bottts", ID: "bottts"},
	{Command: "/pixel-art", ID: "pixel-art"},
}

// Registry is an immutable command to style lookup table.
// It is safe for concurrent use once constructed.
type Registry struct {
	styles   map[string]string
	commands []string
}

// NewRegistry builds a registry from the given styles. Command tokens must be
// unique and non-empty.
func NewRegistry(styles []Style) (*Registry, error) {
	r := &Registry{
		styles:   make(map[string]string, len(styles)),
		commands: make([]string, 0, len(styles)),
	}
	for _, s := range styles {
		if s.Command == "" || s.ID == "" {
			return nil, fmt.Errorf("style entry %+v has an empty command or id", s)
		}
		if _, dup := r.styles[s.Command]; dup {
			return nil, fmt.Errorf("duplicate style command %q", s.Command)
		}
		r.styles[s.Command] = s.ID
		r.commands = append(r.commands, s.Command)
	}
	return r, nil
}

// MustDefaultRegistry returns a registry holding DefaultStyles.
func MustDefaultRegistry() *Registry {
	r, err := NewRegistry(DefaultStyles)
	if err != nil {
		panic(err)
	}
	return r
}

// Resolve returns the style identifier for an exact, case-sensitive command
// match. The boolean is false for unrecognized commands.
func (r *Registry) Resolve(command string) (string, bool) {
	id, ok := r.styles[command]
	return id, ok
}

// Commands returns the supported command tokens in registration order.
func (r *Registry) Commands() []string {
	out := make([]string, len(r.commands))
	copy(out, r.commands)
	return out
}
