package configs

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"rightmove-parser-service/internal/constants"
)

// CrawlConfig хранит настройки обхода и "вежливости" к сайту.
type CrawlConfig struct {
	MaxProperties int           // бюджет записей за запуск
	PropertyDelay time.Duration // минимальная пауза между запросами страниц объектов
	RandomDelay   time.Duration // случайная добавка к паузе
	PageDelay     time.Duration // пауза перед переходом на следующую страницу выдачи
	RetryTimes    int           // повторы одного запроса после сетевой ошибки
	UserAgent     string
}

// OutputConfig хранит настройки файлового хранилища.
type OutputConfig struct {
	File string // jsonl-файл, по одной записи на строку
}

// DBconfig хранит конфигурацию для БД (опционально)
type DBconfig struct {
	URL string
}

type StdoutLogConfig struct {
	Level string
}

type FluentBitConfig struct {
	Host    string
	Port    int
	Enabled bool
	Level   string
}

// AppConfig хранит всю конфигурацию приложения
type AppConfig struct {
	AppName      string
	Crawl        CrawlConfig
	Output       OutputConfig
	Database     DBconfig
	FluentBit    FluentBitConfig
	StdoutLogger StdoutLogConfig
}

// LoadConfig загружает конфигурацию из переменных окружения. Отсутствие
// .env не фатально: у всех параметров есть значения по умолчанию.
func LoadConfig(envPath ...string) (*AppConfig, error) {
	var err error
	if len(envPath) > 0 {
		err = godotenv.Load(envPath[0])
	} else {
		err = godotenv.Load()
	}
	if err != nil {
		log.Printf("Info: Could not load .env file (path: %v): %v. Using process environment.\n", envPath, err)
	}

	cfg := &AppConfig{}

	cfg.AppName = getEnvAsString("APP_NAME", "rightmove-parser-service")

	cfg.Crawl.MaxProperties = getEnvAsInt("MAX_PROPERTIES", constants.DefaultMaxProperties)
	cfg.Crawl.PropertyDelay = time.Duration(getEnvAsInt("PROPERTY_DELAY_SECONDS", 2)) * time.Second
	cfg.Crawl.RandomDelay = time.Duration(getEnvAsInt("RANDOM_DELAY_SECONDS", 1)) * time.Second
	cfg.Crawl.PageDelay = time.Duration(getEnvAsInt("PAGE_DELAY_SECONDS", 3)) * time.Second
	cfg.Crawl.RetryTimes = getEnvAsInt("RETRY_TIMES", 2)
	cfg.Crawl.UserAgent = getEnvAsString("USER_AGENT", constants.DefaultUserAgent)

	cfg.Output.File = getEnvAsString("OUTPUT_FILE", "real_estate_properties.jsonl")

	// БД опциональна: пустой DATABASE_URL означает запись только в файл
	cfg.Database.URL = os.Getenv("DATABASE_URL")

	cfg.FluentBit.Enabled = getEnvAsBool("FLUENTBIT_ENABLED", false)
	if cfg.FluentBit.Enabled {
		cfg.FluentBit.Host = os.Getenv("FLUENTBIT_HOST")
		if cfg.FluentBit.Host == "" {
			log.Println("WARNING: FLUENTBIT_ENABLED is true, but FLUENTBIT_HOST is not set. Disabling Fluent Bit.")
			cfg.FluentBit.Enabled = false
		}

		cfg.FluentBit.Port = getEnvAsInt("FLUENTBIT_PORT", 24224)
		cfg.FluentBit.Level = getEnvAsString("FLUENTBIT_LOG_LEVEL", "info")
	}

	cfg.StdoutLogger.Level = getEnvAsString("STDOUT_LOG_LEVEL", "debug")

	return cfg, nil
}

// getEnvAsString читает переменную окружения как строку или возвращает значение по умолчанию
func getEnvAsString(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt читает переменную окружения как int или возвращает значение по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as int: %v. Using default value: %d\n", key, valueStr, err, defaultValue)
		return defaultValue
	}
	return valueInt
}

// getEnvAsBool читает переменную окружения как bool или возвращает значение по умолчанию
func getEnvAsBool(key string, defaultValue bool) bool {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valBool, err := strconv.ParseBool(valStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as bool: %v. Using default value: %t\n", key, valStr, err, defaultValue)
		return defaultValue
	}
	return valBool
}
