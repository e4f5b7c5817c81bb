package repl

import (
	"sort"
	"strings"
)

// Completer provides command completion for the REPL.
type Completer struct {
	commands []string
}

// NewCompleter creates a Completer knowing the libros-cli commands.
func NewCompleter() *Completer {
	return &Completer{
		commands: []string{
			"login", "logout", "status",
			"book", "book list", "book get", "book search", "book create", "book update", "book delete",
			"config", "config init", "config show", "config validate",
			"version", "help", "exit", "quit",
		},
	}
}

// Add registers an extra command, e.g. a shell built-in.
func (c *Completer) Add(cmd string) {
	for _, existing := range c.commands {
		if existing == cmd {
			return
		}
	}
	c.commands = append(c.commands, cmd)
}

// Complete returns completion suggestions for the given prefix, sorted.
func (c *Completer) Complete(prefix string) []string {
	var suggestions []string
	for _, cmd := range c.commands {
		if strings.HasPrefix(cmd, prefix) {
			suggestions = append(suggestions, cmd)
		}
	}
	sort.Strings(suggestions)
	return suggestions
}

// Known reports whether word is a top-level command. Leading flags
// ("-o json book list") are left for the command parser to judge.
func (c *Completer) Known(word string) bool {
	if strings.HasPrefix(word, "-") {
		return true
	}
	for _, cmd := range c.commands {
		if cmd == word {
			return true
		}
	}
	return false
}
