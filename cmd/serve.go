// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"

	"github.com/canonical/content-platform/internal/authorization"
	"github.com/canonical/content-platform/internal/config"
	"github.com/canonical/content-platform/internal/kratos"
	"github.com/canonical/content-platform/internal/logging"
	"github.com/canonical/content-platform/internal/mail"
	"github.com/canonical/content-platform/internal/monitoring"
	"github.com/canonical/content-platform/internal/monitoring/prometheus"
	"github.com/canonical/content-platform/internal/qstash"
	"github.com/canonical/content-platform/internal/storage"
	"github.com/canonical/content-platform/internal/tracing"
	"github.com/canonical/content-platform/pkg/accounts"
	"github.com/canonical/content-platform/pkg/authentication"
	"github.com/canonical/content-platform/pkg/content"
	"github.com/canonical/content-platform/pkg/invites"
	"github.com/canonical/content-platform/pkg/tasks"
	"github.com/canonical/content-platform/pkg/web"
	"github.com/canonical/content-platform/pkg/webhooks"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "serve starts the web server",
	Long:  `Launch the web application, list of environment variables is available in the readme`,
	Run: func(cmd *cobra.Command, args []string) {
		main()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// directory resolves identities for both invites and welcome emails.
type directory interface {
	GetIdentityIDByEmail(ctx context.Context, email string) (string, error)
	GetIdentityEmail(ctx context.Context, id string) (string, error)
}

func serve() error {
	specs := new(config.EnvSpec)
	if err := envconfig.Process("", specs); err != nil {
		panic(fmt.Errorf("issues with environment sourcing: %s", err))
	}

	logger := logging.NewLogger(specs.LogLevel)
	logger.Debugf("env vars: %v", specs)
	defer logger.Sync()

	monitor := prometheus.NewMonitor("content-platform", logger)
	tracer := tracing.NewTracer(tracing.NewConfig(specs.TracingEnabled, specs.OtelGRPCEndpoint, specs.OtelHTTPEndpoint, specs.TracingSampleRate, logger))

	store, closeStore, err := newStore(specs, tracer, monitor, logger)
	if err != nil {
		return fmt.Errorf("failed to create store: %v", err)
	}
	defer closeStore()

	s := storage.NewStorage(store, tracer, monitor, logger)
	authorizer := authorization.NewAuthorizer(s, tracer, monitor, logger)

	var dir directory = kratos.NewNoopDirectory()
	if specs.KratosAdminURL != "" {
		dir = kratos.NewClient(specs.KratosAdminURL, tracer, monitor, logger)
	} else {
		logger.Info("Kratos admin URL not set, identities are not resolved")
	}

	var mailer mail.MailerInterface = mail.NewLogMailer(specs.MailerFrom, logger)
	if specs.MailerWebhookURL != "" {
		mailer = mail.NewWebhookMailer(specs.MailerWebhookURL, specs.MailerFrom, tracer, monitor, logger)
	}

	broker := qstash.NewClient(specs.QStashURL, specs.QStashToken, specs.QStashRetries, tracer, monitor, logger)
	publisher := content.NewPublisher(s, authorizer, tracer, monitor, logger)
	scheduler := tasks.NewScheduler(s, broker, publisher, authorizer, specs.PublicURL, specs.TaskListLimit, tracer, monitor, logger)

	accountsService := accounts.NewService(s, authorizer, scheduler, tracer, monitor, logger)
	invitesService := invites.NewService(s, authorizer, accountsService, dir, scheduler, specs.InvitationLifetime, tracer, monitor, logger)
	contentService := content.NewService(s, authorizer, scheduler, tracer, monitor, logger)

	executor := tasks.NewExecutor(s, mailer, publisher, dir, tracer, monitor, logger)
	verifier := webhooks.NewVerifier(specs.QStashCurrentSigningKey, specs.QStashNextSigningKey, tracer, logger)
	webhookService := webhooks.NewService(verifier, executor, tracer, monitor, logger)

	tokenVerifier, err := newTokenVerifier(specs, tracer, monitor, logger)
	if err != nil {
		return fmt.Errorf("failed to create token verifier: %v", err)
	}

	router := web.NewRouter(
		&web.Services{
			Store:          s,
			Verifier:       tokenVerifier,
			Accounts:       accountsService,
			Invites:        invitesService,
			Content:        contentService,
			Scheduler:      scheduler,
			Webhooks:       webhookService,
			PublicURL:      specs.PublicURL,
			AllowedOrigins: specs.CORSAllowedOrigins,
		},
		tracer,
		monitor,
		logger,
	)
	logger.Infof("Starting HTTP server on port %v", specs.Port)

	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%v", specs.Port),
		WriteTimeout: time.Second * 60,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		Handler:      router,
	}

	var serverError error
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Security().SystemStartup()
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError = fmt.Errorf("server error: %w", err)
			c <- os.Interrupt
		}
	}()

	<-c

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logger.Security().SystemShutdown()
	if err := srv.Shutdown(ctx); err != nil {
		serverError = fmt.Errorf("server shutdown error: %w", err)
	}

	return serverError
}

func newTokenVerifier(specs *config.EnvSpec, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) (authentication.TokenVerifierInterface, error) {
	if !specs.AuthenticationEnabled {
		logger.Warn("Authentication is disabled, bearer tokens are read as user ids")
		return authentication.NewNoopVerifier(), nil
	}

	return authentication.NewJWTAuthenticator(
		context.Background(),
		specs.OIDCIssuer,
		specs.OIDCJWKSURL,
		specs.OIDCClientID,
		specs.OIDCRequiredScope,
		tracer,
		monitor,
		logger,
	)
}

func main() {
	if err := serve(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}
