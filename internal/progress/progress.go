// Package progress shows a terminal spinner while the enrich loop works
// through the speaker list.
package progress

import (
	"fmt"
	"time"

	"github.com/briandowns/spinner"
)

// Tracker wraps a single spinner annotated with the record being processed.
type Tracker struct {
	spin *spinner.Spinner
}

// New creates a stopped Tracker.
func New() *Tracker {
	return &Tracker{spin: spinner.New(spinner.CharSets[9], 100*time.Millisecond)}
}

// Start begins the spinner animation.
func (t *Tracker) Start() {
	t.spin.Start()
}

// Update reflects the latest processed record in the spinner suffix.
func (t *Tracker) Update(done, total int, name string) {
	t.spin.Suffix = fmt.Sprintf(" [%d/%d] %s", done, total, name)
}

// Stop halts the spinner and clears its line.
func (t *Tracker) Stop() {
	t.spin.Stop()
}
