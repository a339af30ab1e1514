package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/linesmerrill/municipal-services-api/api"
	"github.com/linesmerrill/municipal-services-api/config"
	"github.com/linesmerrill/municipal-services-api/databases"
	"github.com/linesmerrill/municipal-services-api/models"
	"github.com/linesmerrill/municipal-services-api/services"
	"github.com/linesmerrill/municipal-services-api/storage"
)

// App stores the router and the in-memory store, so they can be reused
type App struct {
	Router  *mux.Router
	Config  config.Config
	Store   *databases.Store
	Service *services.IssueService
	Feed    *IssueFeed
	Limiter func(http.Handler) http.Handler
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	r := mux.NewRouter()
	r.Use(api.RequestLogger)

	i := Issue{Service: a.Service, MaxUploadBytes: a.Config.MaxUploadBytes}
	c := Category{Service: a.Service}

	// healthchex
	r.HandleFunc("/health", healthCheckHandler).Methods("GET")

	if a.Feed != nil {
		r.HandleFunc("/ws/issues", a.Feed.HandleIssueFeed)
	}

	apiCreate := r.PathPrefix("/api/v1").Subrouter()
	apiCreate.Use(api.TimeoutMiddleware(a.Config.RequestTimeout))

	apiCreate.Handle("/categories", http.HandlerFunc(c.CategoriesHandler)).Methods("GET")

	submit := http.Handler(http.HandlerFunc(i.SubmitIssueHandler))
	if a.Limiter != nil {
		submit = a.Limiter(submit)
	}
	apiCreate.Handle("/issues", submit).Methods("POST")
	apiCreate.Handle("/issues", http.HandlerFunc(i.IssuesHandler)).Methods("GET")
	apiCreate.Handle("/issues/category/{category_id}", http.HandlerFunc(i.IssuesByCategoryHandler)).Methods("GET")
	apiCreate.Handle("/issues/{issue_id}", http.HandlerFunc(i.IssueByIDHandler)).Methods("GET")
	apiCreate.Handle("/issues/{issue_id}/attachments", http.HandlerFunc(i.IssueAttachmentsHandler)).Methods("GET")

	apiCreate.Handle("/stats/engagement", http.HandlerFunc(i.EngagementStatsHandler)).Methods("GET")

	if a.Config.StorageBackend == config.StorageFilesystem && a.Config.UploadsPublicPath != "" {
		prefix := a.Config.UploadsPublicPath + "/"
		r.PathPrefix(prefix).Handler(http.StripPrefix(prefix, http.FileServer(http.Dir(a.Config.UploadsDir))))
	}
	return r
}

// Initialize is invoked by main to build the store, the attachment storage and the router
func (a *App) Initialize() error {
	attachments, err := newAttachmentStore(&a.Config)
	if err != nil {
		zap.S().Errorw("failed to configure attachment storage", "error", err)
		return err
	}

	a.Store = databases.NewStore()
	a.Feed = NewIssueFeed()
	a.Service = services.NewIssueService(
		databases.NewIssueDatabase(a.Store),
		databases.NewCategoryDatabase(a.Store),
		attachments,
	)
	a.Service.Publisher = a.Feed

	if err := a.Service.EnsureCategories(context.Background()); err != nil {
		return err
	}

	if a.Config.RedisAddress != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     a.Config.RedisAddress,
			Password: a.Config.RedisPassword,
			DB:       0,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			zap.S().Warnw("redis unreachable, submissions are not rate limited", "error", err)
		} else {
			a.Limiter = api.SubmissionRateLimiter(client, "issue-submissions", a.Config.SubmitRateLimit, a.Config.SubmitRateWindow, a.Config.TrustedProxies...)
			zap.S().Infow("submission rate limiting enabled", "limit", a.Config.SubmitRateLimit, "window", a.Config.SubmitRateWindow)
		}
	}

	// initialize api router
	a.initializeRoutes()
	return nil
}

func newAttachmentStore(conf *config.Config) (storage.AttachmentStore, error) {
	switch conf.StorageBackend {
	case config.StorageCloudinary:
		return storage.NewCloudinaryStore(conf.CloudinaryURL, conf.CloudinaryFolder)
	case config.StorageFilesystem, "":
		return storage.NewFilesystemStore(conf.UploadsDir, conf.UploadsPublicPath), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", conf.StorageBackend)
	}
}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	b, _ := json.Marshal(models.HealthCheckResponse{
		Alive: true,
	})
	_, _ = io.WriteString(w, string(b))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(b)
}
