package send_reminders

import "errors"

// ErrInternal возвращается, когда не удалось получить список записей
var ErrInternal = errors.New("send_reminders: internal error")
