package settings

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"
)

var Settings *AppSettings

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

func NewSettings() *AppSettings {
	settings := AppSettings{
		Title:              getEnvOrDefault("SIMPLESHOP_TITLE", "RillShop"),
		SessionExpires:     time.Duration(30 * 24 * time.Hour),
		Domain:             getEnvOrDefault("SIMPLESHOP_DOMAIN", "localhost"),
		Port:               getEnvOrDefault("SIMPLESHOP_PORT", ":8080"),
		DBDriver:           getEnvOrDefault("SIMPLESHOP_DB_DRIVER", DriverSQLite),
		SQLiteDatabase:     getEnvOrDefault("SIMPLESHOP_DB_PATH", "file:.///db.sqlite"),
		PostgresDSN:        getEnvOrDefault("SIMPLESHOP_DATABASE_URL", ""),
		SuperAdminEmail:    getEnvOrDefault("SIMPLESHOP_SUPERADMIN_EMAIL", ""),
		SuperAdminPassword: getEnvOrDefault("SIMPLESHOP_SUPERADMIN_PASSWORD", ""),
		AdminKey:           getEnvOrDefault("SIMPLESHOP_ADMIN_KEY", ""),
		OpenAIKey:          getEnvOrDefault("OPENAI_API_KEY", ""),
		OpenAIModel:        getEnvOrDefault("SIMPLESHOP_OPENAI_MODEL", "gpt-4o-mini"),
		AITimeout:          30 * time.Second,
	}
	if !strings.HasPrefix(settings.Port, ":") {
		settings.Port = ":" + settings.Port
	}
	if v, ok := os.LookupEnv("SIMPLESHOP_AI_TIMEOUT"); ok {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			settings.AITimeout = d
		} else {
			log.Printf("ignoring invalid SIMPLESHOP_AI_TIMEOUT %q\n", v)
		}
	}
	return &settings
}

func getEnvOrDefault(key, defaultValue string) string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	return value
}

type AppSettings struct {
	Title              string
	DBDriver           string
	SQLiteDatabase     string
	PostgresDSN        string
	Domain             string
	Port               string
	SessionExpires     time.Duration
	SuperAdminEmail    string
	SuperAdminPassword string
	AdminKey           string
	OpenAIKey          string
	OpenAIModel        string
	AITimeout          time.Duration
}

func (as *AppSettings) BaseURL() string {
	if as.Domain == "localhost" {
		return fmt.Sprintf("http://%s%s", as.Domain, as.Port)
	} else {
		return fmt.Sprintf("https://%s", as.Domain)
	}
}

func (as *AppSettings) IsPostgres() bool {
	return as.DBDriver == DriverPostgres
}

// DataSourceName returns the DSN handed to sql.Open for the configured driver.
func (as *AppSettings) DataSourceName(readonly bool) string {
	if as.IsPostgres() {
		return as.PostgresDSN
	}
	return as.SQLiteDbString(readonly)
}

func (as *AppSettings) SQLiteDbString(readonly bool) string {
	params := make(url.Values)
	params.Add("_journal_mode", "WAL")
	params.Add("_busy_timeout", "5000")
	params.Add("_synchronous", "NORMAL")
	params.Add("_cache_size", "-20000")
	params.Add("_foreign_keys", "ON")
	if readonly {
		params.Add("mode", "ro")
	} else {
		params.Add("_txlock", "IMMEDIATE")
		params.Add("mode", "rwc")
	}

	return as.SQLiteDatabase + "?" + params.Encode()
}

// ReadDotenv loads KEY=value lines from path into the environment. A missing
// file is not an error, the environment is used as is.
func ReadDotenv(path string) {
	re := regexp.MustCompile(`^[^0-9][A-Z0-9_]+=.+$`)
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return
		}
		log.Fatal("err opening dotenv: ", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) > 0 && line[0] != '#' && re.Match(line) {
			name, value, _ := strings.Cut(string(line), "=")
			name = strings.TrimSpace(name)
			value = strings.TrimSpace(value)
			value = strings.Trim(value, `"`)
			os.Setenv(name, value)
		}
	}
}
