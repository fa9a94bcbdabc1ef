package domain

import "time"

type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

// Notice is a transient message shown to the user after an action.
type Notice struct {
	Kind    NoticeKind `json:"kind"`
	Message string     `json:"message"`
}

func Success(msg string) Notice {
	return Notice{Kind: NoticeSuccess, Message: msg}
}

func Failure(msg string) Notice {
	return Notice{Kind: NoticeError, Message: msg}
}

type ChatSender string

const (
	ChatSenderUser ChatSender = "user"
	ChatSenderBot  ChatSender = "bot"
)

type ChatMessage struct {
	ID     int64      `json:"id"`
	Sender ChatSender `json:"type"`
	Text   string     `json:"message"`
	At     time.Time  `json:"timestamp"`
}
