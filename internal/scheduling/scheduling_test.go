package scheduling

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

var salonTZ = mustLocation("Europe/Sofia")

func mustLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

func newWorker(id int64, start, end string) *domain.Worker {
	return &domain.Worker{
		ID:                id,
		FullName:          "Maria Ivanova",
		IsActive:          true,
		WorkingHoursStart: types.MustTimeString(start),
		WorkingHoursEnd:   types.MustTimeString(end),
	}
}

func newService(id int64, minutes int) *domain.Service {
	return &domain.Service{ID: id, Name: "Haircut", DurationMinutes: minutes}
}

func newBooking(id, workerID int64, serviceID *int64, date time.Time, start string) *domain.Booking {
	return &domain.Booking{
		ID:        id,
		WorkerID:  workerID,
		ServiceID: serviceID,
		Date:      date,
		StartTime: types.MustTimeString(start),
		Phone:     "+359 888 123 456",
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, salonTZ)
}

func at(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, salonTZ)
}

func idPtr(id int64) *int64 {
	return ptr.Ptr(id)
}
