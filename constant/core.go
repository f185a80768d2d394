package constant

import (
	"time"

	"github.com/c2h5oh/datasize"
)

// Event loop
const (
	// EventBufferSize is the capacity of the terminal event channel
	EventBufferSize = 256
)

// Logging
const (
	LogDir      = "logs"
	LogFileName = "rdk.log"
	// MaxLogSize triggers rotation of the previous log on startup
	MaxLogSize = 10 * datasize.MB
)

// Output
const (
	DefaultResultsPath = "results.txt"
)

// Screens
const (
	// EndScreenHold is how long the final accuracy stays up unless a key dismisses it
	EndScreenHold = 5 * time.Second
)
