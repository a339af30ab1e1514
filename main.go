package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/linesmerrill/municipal-services-api/api/handlers"
	"github.com/linesmerrill/municipal-services-api/api/scheduler"
	"github.com/linesmerrill/municipal-services-api/config"
	"github.com/linesmerrill/municipal-services-api/databases"
)

func main() {
	a := handlers.App{}
	a.Config = *config.New()

	if err := a.Initialize(); err != nil { //initialize store and router
		log.Fatal(err)
	}

	var digest *scheduler.Scheduler
	if a.Config.SendgridAPIKey != "" && len(a.Config.DepartmentEmails) > 0 {
		mailer := scheduler.NewSendgridMailer(a.Config.SendgridAPIKey, a.Config.MailFromName, a.Config.MailFromEmail)
		digest = scheduler.NewScheduler(databases.NewIssueDatabase(a.Store), mailer, a.Config.DepartmentEmails, a.Config.DigestSchedule)
		if err := digest.Start(); err != nil {
			digest = nil
		}
	} else {
		zap.S().Info("department digest disabled, SENDGRID_API_KEY or DEPARTMENT_EMAILS not set")
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%v", a.Config.Port),
		Handler: a.Router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		zap.S().Infow("municipal-services-api is up and running",
			"port", a.Config.Port,
			"url", a.Config.BaseURL,
			"storage", a.Config.StorageBackend,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	zap.S().Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.S().Errorw("server shutdown failed", "error", err)
	}
	if digest != nil {
		digest.Stop()
	}
	_ = zap.L().Sync()
}
