package notify

import (
	"fmt"
	"io"

	"github.com/rublebank/rubank/internal/model"
)

// Writer renders notifications to a terminal stream in display order.
// It keeps no queue and never retries; each notification is written
// once.
type Writer struct {
	out io.Writer
}

func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

func (w *Writer) Notify(n model.Notification) {
	prefix := "--"
	if n.Severity == model.SeverityDestructive {
		prefix = "!!"
	}
	if n.Description == "" {
		fmt.Fprintf(w.out, "%s %s\n", prefix, n.Title)
		return
	}
	fmt.Fprintf(w.out, "%s %s: %s\n", prefix, n.Title, n.Description)
}

// Recorder captures notifications for tests.
type Recorder struct {
	Notifications []model.Notification
}

func (r *Recorder) Notify(n model.Notification) {
	r.Notifications = append(r.Notifications, n)
}
