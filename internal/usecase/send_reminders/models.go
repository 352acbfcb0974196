package send_reminders

import "time"

// DefaultWindow горизонт напоминаний по умолчанию
const DefaultWindow = 24 * time.Hour

// Result итог одного прогона
type Result struct {
	Checked int // записей без напоминания в диапазоне дат
	Due     int // из них начинаются в пределах окна
	Sent    int // напоминание ушло хотя бы по одному каналу
	Failed  int // ни один канал не сработал, повтор на следующем прогоне
}
