package price

import "errors"

var (
	// ErrPriceNotFound возвращается, когда у мастера нет персональной настройки для услуги
	ErrPriceNotFound = errors.New("price.repository: worker service price not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("price.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("price.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("price.repository: failed to scan row")
)
