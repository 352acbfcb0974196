package cancel_booking

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Response данные записи для страницы отмены
type Response struct {
	ID          int64
	WorkerID    int64
	WorkerName  string
	ServiceID   *int64
	ServiceName string // пустая строка, если запись без услуги
	Date        time.Time
	StartTime   types.TimeString
	Cancelled   bool
}
