package snapshot

import (
	"context"
	"fmt"
)

// Options selects and configures a snapshot driver.
type Options struct {
	// Driver is one of "sqlite", "json", or "postgres".
	Driver string

	// SQLitePath is the database path for the sqlite driver.
	SQLitePath string

	// JSONPath is the file path for the json driver.
	JSONPath string

	// PostgresDSN is the connection string for the postgres driver.
	PostgresDSN string
}

// openers is populated by the driver packages via Register so that Open
// does not import every backend.
var openers = map[string]func(ctx context.Context, opts Options) (Store, error){}

// Register installs a driver constructor under the given name. Driver
// packages call it from an init function.
func Register(name string, open func(ctx context.Context, opts Options) (Store, error)) {
	openers[name] = open
}

// Open creates the snapshot store selected by opts.Driver.
func Open(ctx context.Context, opts Options) (Store, error) {
	open, ok := openers[opts.Driver]
	if !ok {
		return nil, fmt.Errorf("unknown snapshot driver: %q", opts.Driver)
	}

	return open(ctx, opts)
}
