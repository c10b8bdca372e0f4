package output

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
)

// Formatter converts a document to formatted output bytes. Documents are
// plain structs carrying json tags; secrets must already be redacted.
type Formatter interface {
	Format(doc any, cfg Config) ([]byte, error)
}

var (
	formatters = make(map[string]Formatter)
	mu         sync.RWMutex
)

// RegisterFormatter registers a formatter by name.
// Called from init() in each formatter file.
func RegisterFormatter(name string, f Formatter) {
	mu.Lock()
	defer mu.Unlock()
	formatters[name] = f
}

// GetFormatter returns the formatter for the given name.
func GetFormatter(name string) (Formatter, bool) {
	mu.RLock()
	defer mu.RUnlock()
	f, ok := formatters[name]
	return f, ok
}

// FormatNames returns a sorted list of registered format names.
func FormatNames() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(formatters))
	for name := range formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FormatAndPrint formats doc with the configured formatter and writes it to w.
func FormatAndPrint(w io.Writer, doc any, cfg Config) error {
	formatter, ok := GetFormatter(cfg.Format)
	if !ok {
		return fmt.Errorf("unknown output format %q (available: %s)", cfg.Format, strings.Join(FormatNames(), ", "))
	}

	out, err := formatter.Format(doc, cfg)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(out))
	return err
}
