package booking

import "github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"

// DBExecutor общий интерфейс исполнителя запросов (*sql.DB, *dbmetrics.DB, транзакция)
type DBExecutor = dbmetrics.DBExecutor
