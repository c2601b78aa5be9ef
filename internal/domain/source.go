package domain

// Source определяет источник сообщений.
type Source string

const (
	// SourceArgs: сообщение собирается из аргументов командной строки.
	SourceArgs Source = "args"

	// SourceCSV: каждая строка CSV файла становится отдельным сообщением.
	SourceCSV Source = "csv"
)

// IsValid возвращает true для известных источников.
func (s Source) IsValid() bool {
	switch s {
	case SourceArgs, SourceCSV:
		return true
	default:
		return false
	}
}
