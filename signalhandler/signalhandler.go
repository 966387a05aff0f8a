package signalhandler

import (
	"os"
	"os/signal"
	"sync"
	"syscall"
)

var (
	mu      sync.Mutex
	tracked = make(map[string]struct{})
	setup   sync.Once
)

// SetupHandler removes any tracked partial output and exits on SIGINT or SIGTERM
func SetupHandler() {
	setup.Do(func() {
		// Create a channel to receive OS signals
		sigChan := make(chan os.Signal, 1)

		// Register for specific signals
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

		// Handle signals in a separate goroutine
		go func() {
			sig := <-sigChan
			RemoveTracked()
			os.Exit(ExitCode(sig))
		}()
	})
}

// ExitCode follows the shell convention of 128 + signal number
func ExitCode(sig os.Signal) int {
	if s, ok := sig.(syscall.Signal); ok {
		return 128 + int(s)
	}
	return 1
}

// TrackFile marks path for removal if the process is interrupted.
// The returned function stops tracking it.
func TrackFile(path string) func() {
	mu.Lock()
	tracked[path] = struct{}{}
	mu.Unlock()

	return func() {
		mu.Lock()
		delete(tracked, path)
		mu.Unlock()
	}
}

// RemoveTracked deletes every tracked file and returns the paths removed
func RemoveTracked() []string {
	mu.Lock()
	defer mu.Unlock()

	var removed []string
	for path := range tracked {
		if err := os.Remove(path); err == nil {
			removed = append(removed, path)
		}
		delete(tracked, path)
	}
	return removed
}
