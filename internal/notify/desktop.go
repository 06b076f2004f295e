package notify

import "fyne.io/fyne/v2"

// DefaultTitle is the desktop notification title.
const DefaultTitle = "YourTimer"

// NotificationSender is the part of fyne.App used by Desktop.
type NotificationSender interface {
	SendNotification(*fyne.Notification)
}

// Desktop shows completion messages as operating system notifications.
type Desktop struct {
	sender NotificationSender
	title  string
}

// NewDesktop returns a notifier posting through sender, usually the fyne.App.
func NewDesktop(sender NotificationSender) *Desktop {
	return &Desktop{sender: sender, title: DefaultTitle}
}

func (desktop *Desktop) NotifyCompletion(message string) {
	if desktop == nil || desktop.sender == nil {
		return
	}
	desktop.sender.SendNotification(fyne.NewNotification(desktop.title, message))
}
