package config

import (
	"encoding/json"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/linesmerrill/municipal-services-api/models"
)

// Storage backends
const (
	StorageFilesystem = "filesystem"
	StorageCloudinary = "cloudinary"
)

// Config holds the project config values
type Config struct {
	Port    string
	BaseURL string
	Env     string

	UploadsDir        string
	UploadsPublicPath string
	StorageBackend    string
	CloudinaryURL     string
	CloudinaryFolder  string
	MaxUploadBytes    int64
	RequestTimeout    time.Duration

	RedisAddress     string
	RedisPassword    string
	SubmitRateLimit  int
	SubmitRateWindow time.Duration
	TrustedProxies   []string

	SendgridAPIKey   string
	MailFromName     string
	MailFromEmail    string
	DepartmentEmails map[string]string
	DigestSchedule   string
}

// New loads .env when present, installs the global logger and reads the
// config from the environment
func New() *Config {
	// a missing .env is normal outside local development
	_ = godotenv.Load()

	env := getEnv("ENV", "local")
	logger, err := setLogger(env)
	if err != nil {
		logger = zap.NewExample()
	}
	_ = zap.ReplaceGlobals(logger)

	return &Config{
		Port:    getEnv("PORT", "8080"),
		BaseURL: os.Getenv("BASE_URL"),
		Env:     env,

		UploadsDir:        getEnv("UPLOADS_DIR", "wwwroot/uploads"),
		UploadsPublicPath: getEnv("UPLOADS_PUBLIC_PATH", "/uploads"),
		StorageBackend:    strings.ToLower(getEnv("STORAGE_BACKEND", StorageFilesystem)),
		CloudinaryURL:     os.Getenv("CLOUDINARY_URL"),
		CloudinaryFolder:  getEnv("CLOUDINARY_FOLDER", "issue-attachments"),
		MaxUploadBytes:    int64(getEnvInt("MAX_UPLOAD_MB", 25)) << 20,
		RequestTimeout:    time.Duration(getEnvInt("REQUEST_TIMEOUT_SECONDS", 30)) * time.Second,

		RedisAddress:     os.Getenv("REDIS_ADDRESS"),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		SubmitRateLimit:  getEnvInt("SUBMIT_RATE_LIMIT", 20),
		SubmitRateWindow: time.Duration(getEnvInt("SUBMIT_RATE_WINDOW_MINUTES", 1440)) * time.Minute,
		TrustedProxies:   splitList(os.Getenv("TRUSTED_PROXIES")),

		SendgridAPIKey:   os.Getenv("SENDGRID_API_KEY"),
		MailFromName:     getEnv("MAIL_FROM_NAME", "Municipal Services"),
		MailFromEmail:    getEnv("MAIL_FROM_EMAIL", "no-reply@municipal-services.local"),
		DepartmentEmails: ParseDepartmentEmails(os.Getenv("DEPARTMENT_EMAILS")),
		DigestSchedule:   getEnv("DIGEST_SCHEDULE", "0 7 * * *"),
	}
}

// ParseDepartmentEmails reads "Department=email;Department=email". Entries
// without an "=" or with an empty side are ignored.
func ParseDepartmentEmails(raw string) map[string]string {
	emails := map[string]string{}
	for _, entry := range strings.Split(raw, ";") {
		department, email, ok := strings.Cut(entry, "=")
		department = strings.TrimSpace(department)
		email = strings.TrimSpace(email)
		if !ok || department == "" || email == "" {
			continue
		}
		emails[department] = email
	}
	return emails
}

// splitList reads a comma separated setting, skipping empty entries
func splitList(raw string) []string {
	var items []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil || i <= 0 {
		zap.S().Warnw("ignoring invalid integer setting", "key", key, "value", v)
		return fallback
	}
	return i
}

// ErrorStatus is a useful function that will log, write http headers and body for a
// give message, status code and err
func ErrorStatus(message string, httpStatusCode int, w http.ResponseWriter, err error) {
	zap.S().Errorw(message, "error", err)

	resp := models.ErrorMessageResponse{Response: models.MessageError{Message: message}}
	if err != nil {
		resp.Response.Error = err.Error()
	}
	b, _ := json.Marshal(resp)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatusCode)
	w.Write(b)
}
