package usecases_port

import "context"

// RunCrawlPort — входной порт обхода. Возвращает количество
// сохранённых записей.
type RunCrawlPort interface {
	Execute(ctx context.Context) (int, error)
}
