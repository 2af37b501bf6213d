package filestorage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"rightmove-parser-service/internal/core/domain"
)

// PropertyFileStorageAdapter реализует PropertyStoragePort для сохранения
// в файл формата JSON Lines: одна запись — одна строка.
type PropertyFileStorageAdapter struct {
	filename string
	mu       sync.Mutex // Для безопасной записи в файл из нескольких горутин
}

// NewPropertyFileStorageAdapter создает новый адаптер
func NewPropertyFileStorageAdapter(filename string) (*PropertyFileStorageAdapter, error) {
	if filename == "" {
		return nil, fmt.Errorf("filename cannot be empty")
	}
	return &PropertyFileStorageAdapter{
		filename: filename,
	}, nil
}

// Save дозаписывает PropertyRecord одной JSON-строкой. Файл открывается
// на каждую запись: при падении процесса уже сохранённые строки остаются
// валидными.
func (a *PropertyFileStorageAdapter) Save(_ context.Context, record domain.PropertyRecord) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	line, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record for URL %s: %w", record.URL, err)
	}

	file, err := os.OpenFile(a.filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open output file '%s': %w", a.filename, err)
	}
	defer file.Close()

	if _, err := file.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("failed to write to output file '%s': %w", a.filename, err)
	}

	return nil
}
