package constant

import "strings"

const (
	NotifyStreamName = "urlate-notifications"

	NotifySubjectPrefix      = "NOTIFY."
	NotifySubjectRecord      = NotifySubjectPrefix + "record"
	NotifySubjectAchievement = NotifySubjectPrefix + "achievement"

	NotifyQueueGroup = "notify-worker"

	// paths on the notification sink
	NotifyPathRecord      = "/emit/record"
	NotifyPathAchievement = "/emit/achievement"
)

// NotifyKind is the subject without the notification prefix, such as "record".
func NotifyKind(subject string) string {
	return strings.TrimPrefix(subject, NotifySubjectPrefix)
}
