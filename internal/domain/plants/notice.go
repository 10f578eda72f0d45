package plants

import "time"

// NoticeLevel es el color del banner en la UI.
type NoticeLevel string

const (
	NoticeInfo    NoticeLevel = "info"
	NoticeSuccess NoticeLevel = "success"
	NoticeError   NoticeLevel = "error"
)

// Notice es el banner transitorio que acompaña cada respuesta.
type Notice struct {
	Level        NoticeLevel
	Message      string
	DismissAfter time.Duration
}

func InfoNotice(msg string) Notice {
	return Notice{Level: NoticeInfo, Message: msg, DismissAfter: 2 * time.Second}
}

func SuccessNotice(msg string) Notice {
	return Notice{Level: NoticeSuccess, Message: msg, DismissAfter: 3 * time.Second}
}

func ErrorNotice(msg string) Notice {
	return Notice{Level: NoticeError, Message: msg, DismissAfter: 3 * time.Second}
}
