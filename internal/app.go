package internal

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"rightmove-parser-service/internal/adapters/filestorage"
	logger_adapter "rightmove-parser-service/internal/adapters/logger"
	postgres_adapter "rightmove-parser-service/internal/adapters/postgres"
	"rightmove-parser-service/internal/adapters/rightmovefetcher"
	"rightmove-parser-service/internal/configs"
	"rightmove-parser-service/internal/constants"
	"rightmove-parser-service/internal/contextkeys"
	"rightmove-parser-service/internal/core/domain"
	"rightmove-parser-service/internal/core/port"
	usecases_port "rightmove-parser-service/internal/core/port/usecases"
	"rightmove-parser-service/internal/core/usecase"
	fluentlogger "rightmove-parser-service/pkg/fluent_logger"
	"rightmove-parser-service/pkg/postgres"
)

// App – структура приложения
type App struct {
	config       *configs.AppConfig
	dbPool       *pgxpool.Pool
	fluentClient *fluent.Fluent
	logger       port.LoggerPort
	baseLogger   port.LoggerPort

	runCrawlUseCase usecases_port.RunCrawlPort
}

// NewApp создает новый экземпляр приложения.
// Это "Composition Root", где все зависимости создаются и связываются.
func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	// --- 1. ИНИЦИАЛИЗАЦИЯ ЛОГГЕРОВ ---
	var activeLoggers []port.LoggerPort

	slogCfg := logger_adapter.SlogConfig{
		Level:    parseLogLevel(appConfig.StdoutLogger.Level),
		IsJSON:   false, // текстовый формат
		UseColor: true,
	}
	stdoutLogger := logger_adapter.NewSlogAdapter(slogCfg)
	activeLoggers = append(activeLoggers, stdoutLogger)

	// Добавляем Fluent Bit логгер, если он включен в конфигурации
	var fluentClient *fluent.Fluent
	if appConfig.FluentBit.Enabled {
		fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:      appConfig.FluentBit.Host,
			Port:      appConfig.FluentBit.Port,
			TagPrefix: appConfig.AppName, // Используем имя приложения как префикс
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, parseLogLevel(appConfig.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			fluentClient.Close()
			return nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	// Создаем наш композитный логгер
	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	// --- 2. СОЗДАЕМ БАЗОВЫЙ ЛОГГЕР ПРИЛОЖЕНИЯ С КОНТЕКСТОМ ---
	// run_id позволяет отделить записи разных запусков в общем потоке логов
	baseLogger := multiLogger.WithFields(port.Fields{
		"service_name": appConfig.AppName,
		"run_id":       uuid.NewString(),
	})

	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	appLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": appConfig.FluentBit.Enabled,
	})

	// --- 3. ИНИЦИАЛИЗАЦИЯ ИСХОДЯЩИХ АДАПТЕРОВ ---
	// Хранилище: по умолчанию jsonl-файл; при заданном DATABASE_URL — PostgreSQL.
	var propertyStorage port.PropertyStoragePort
	var dbPool *pgxpool.Pool
	if appConfig.Database.URL != "" {
		dbPool, err = postgres.NewClient(context.Background(), postgres.Config{DatabaseURL: appConfig.Database.URL})
		if err != nil {
			appLogger.Error("Failed to connect to PostgreSQL", err, nil)
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		appLogger.Info("Successfully connected to PostgreSQL pool!", nil)

		propertyStorage, err = postgres_adapter.NewPostgresStorageAdapter(dbPool)
		if err != nil {
			dbPool.Close()
			return nil, fmt.Errorf("failed to initialize postgres storage adapter: %w", err)
		}
	} else {
		propertyStorage, err = filestorage.NewPropertyFileStorageAdapter(appConfig.Output.File)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize file storage adapter: %w", err)
		}
		appLogger.Info("File storage initialized.", port.Fields{"file": appConfig.Output.File})
	}

	searchQuery := domain.NewSearchQuery(constants.DefaultSearchParams())
	rightmoveAdapter, err := rightmovefetcher.NewRightmoveFetcherAdapter(rightmovefetcher.Config{
		BaseSearchURL: constants.BaseSearchURL,
		UserAgent:     appConfig.Crawl.UserAgent,
		PropertyDelay: appConfig.Crawl.PropertyDelay,
		RandomDelay:   appConfig.Crawl.RandomDelay,
		RetryTimes:    appConfig.Crawl.RetryTimes,
	}, searchQuery)
	if err != nil {
		appLogger.Error("Failed to create Rightmove Fetcher Adapter", err, nil)
		if dbPool != nil {
			dbPool.Close()
		}
		return nil, fmt.Errorf("failed to initialize rightmove fetcher: %w", err)
	}
	appLogger.Info("Rightmove Fetcher Adapter initialized.", nil)

	// --- 4. ИНИЦИАЛИЗАЦИЯ USE CASES (ядра бизнес-логики) ---
	processLinkUseCase := usecase.NewProcessLinkUseCase(rightmoveAdapter, propertyStorage)
	runCrawlUseCase := usecase.NewRunCrawlUseCase(
		rightmoveAdapter,
		processLinkUseCase,
		appConfig.Crawl.MaxProperties,
		appConfig.Crawl.PageDelay,
	)
	appLogger.Info("All use cases initialized.", nil)

	// 5. Собираем приложение
	application := &App{
		config:          appConfig,
		dbPool:          dbPool,
		fluentClient:    fluentClient,
		logger:          appLogger,
		baseLogger:      baseLogger,
		runCrawlUseCase: runCrawlUseCase,
	}

	return application, nil
}

// Run запускает обход и управляет его жизненным циклом. В отличие от
// сервисов-слушателей этот процесс конечен: обход либо доходит до бюджета
// или конца выдачи, либо обрывается сигналом.
func (a *App) Run() error {
	appCtx, cancelApp := context.WithCancel(context.Background())
	defer cancelApp()

	defer func() {
		a.logger.Info("Shutdown sequence initiated...", nil)

		if a.dbPool != nil {
			a.dbPool.Close()
			a.logger.Info("PostgreSQL pool closed.", nil)
		}

		a.logger.Info("Application shut down gracefully.", nil)

		if a.fluentClient != nil {
			a.logger.Info("Closing Fluent Bit connection...", nil)
			if err := a.fluentClient.Close(); err != nil {
				log.Printf("App: Error closing fluent client: %v\n", err)
			}
		}
	}()

	a.logger.Info("Application is starting...", nil)

	// Логгер кладём в контекст: дальше по стеку все компоненты достают его оттуда
	crawlCtx := contextkeys.ContextWithLogger(appCtx, a.baseLogger)

	crawlDone := make(chan error, 1)
	go func() {
		scraped, err := a.runCrawlUseCase.Execute(crawlCtx)
		a.logger.Info("Crawl goroutine finished", port.Fields{"scraped": scraped})
		crawlDone <- err
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	a.logger.Info("Application running. Waiting for crawl completion or signal...", nil)
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received signal, shutting down", port.Fields{"signal": receivedSignal.String()})
		cancelApp()
		// Даем обходу завершить текущий шаг и выйти по контексту
		if err := <-crawlDone; err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	case err := <-crawlDone:
		if err != nil {
			a.logger.Error("Crawl finished with an error", err, nil)
			return err
		}
		return nil
	}
}

func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		// Возвращаем безопасное значение по умолчанию и логируем предупреждение
		log.Printf("Warning: Unknown log level '%s'. Defaulting to 'info'.", levelStr)
		return slog.LevelInfo
	}
}
