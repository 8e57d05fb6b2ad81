package kiosk

import "log/slog"

// NoticeLevel classifies user-facing notices, mirroring the kiosk display's
// toast styles.
type NoticeLevel string

const (
	NoticeInfo    NoticeLevel = "info"
	NoticeSuccess NoticeLevel = "success"
	NoticeError   NoticeLevel = "error"
)

// Notifier delivers user-facing notices to whatever front is attached to the
// screen (terminal, HTTP session, test collector).
type Notifier interface {
	Notify(level NoticeLevel, message string)
}

// LogNotifier writes notices to the structured log. Used when no display is
// attached, e.g. one-shot CLI flows with --quiet.
type LogNotifier struct{}

func (LogNotifier) Notify(level NoticeLevel, message string) {
	switch level {
	case NoticeError:
		slog.Warn(message)
	default:
		slog.Info(message)
	}
}

// ScanSource is the badge scanner as seen by a screen: an exclusive session
// delivering decoded payloads until stopped.
type ScanSource interface {
	Start(onDecode func(text string), onError func(err error)) error
	Stop()
}
