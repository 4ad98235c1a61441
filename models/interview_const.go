package models

type SessionState string

const (
	SessionStateIdle           SessionState = "Idle"
	SessionStateProfileLoaded  SessionState = "ProfileLoaded"
	SessionStateAwaitingAnswer SessionState = "AwaitingAnswer"
)

type SessionEventCode string

const (
	EventProfileLoaded SessionEventCode = "ProfileLoaded"
	EventQuestion      SessionEventCode = "Question"
	EventReset         SessionEventCode = "Reset"
	EventError         SessionEventCode = "Error"
)

type File struct {
	FileName    string
	ContentType string
	Body        []byte
}
