// Package usagelog keeps the append-only, human-readable history of user
// actions. Entries are opaque text; nothing parses them back.
package usagelog

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrNoHistory is returned by ReadAll when nothing has been recorded yet.
var ErrNoHistory = errors.New("no usage history")

// TimestampLayout formats entry timestamps in local time.
const TimestampLayout = "2006-01-02 15:04:05.000000000 -07:00"

// Origin tags which front-end issued an action.
type Origin string

const (
	OriginCLI  Origin = "cli"
	OriginHTTP Origin = "http"
)

// Entry is one recorded action.
type Entry struct {
	Description string
	Origin      Origin
	Time        time.Time
}

// String renders the entry as written to the log, including the trailing
// blank line that separates entries.
func (e Entry) String() string {
	return fmt.Sprintf("%s on %s [%s]\n\n", e.Description, e.Time.Format(TimestampLayout), e.Origin)
}

// Log is an append-only text sink. Implementations must preserve append
// order and never lose prior content on a write.
type Log interface {
	Append(ctx context.Context, e Entry) error
	ReadAll(ctx context.Context) (string, error)
}
