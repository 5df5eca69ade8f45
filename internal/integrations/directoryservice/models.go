package directoryservice

// Resource модель бронируемого ресурса из DirectoryService
// (сотрудник, кабинет или групповое занятие)
type Resource struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Class    string `json:"class"` // класс ресурса, привязывает окна доступности
	Location string `json:"location,omitempty"`
	IsActive bool   `json:"isActive"`
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
