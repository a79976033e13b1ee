// Package timeouts defines shared timeout constants used across commands.
package timeouts

import "time"

// Shutdown limits how long a command waits for in-flight work, such as
// gRPC requests or span exports, before forcing a stop.
const Shutdown = 5 * time.Second

// SQLiteBusy is how long SQLite waits on a locked database before failing.
const SQLiteBusy = 5 * time.Second
