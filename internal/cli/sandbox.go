package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/zensend/zensend-go/internal/config"
	Iservices "github.com/zensend/zensend-go/internal/domain/interfaces/services"
	"github.com/zensend/zensend-go/internal/infra/handlers"
	"github.com/zensend/zensend-go/internal/infra/routes"
	"github.com/zensend/zensend-go/internal/infra/services"
	"github.com/zensend/zensend-go/internal/middleware"
)

const shutdownTimeout = 5 * time.Second

func (c *Commands) sandboxCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sandbox",
		Short: "Serve a local imitation of the ZenSend API",
		Long: `Serve the /v3 API from memory. Requests must carry SANDBOX_API_KEY in
the X-API-KEY header. SANDBOX_SEED optionally names a YAML file with the
starting balance, prices and operators.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return c.runSandbox(ctx)
		},
	}

	cmd.Flags().IntVar(&c.Config.Sandbox.Port, "port", c.Config.Sandbox.Port, "Port to listen on")
	cmd.Flags().StringVar(&c.Config.Sandbox.SeedFile, "seed", c.Config.Sandbox.SeedFile, "YAML account seed file")

	return cmd
}

// NewSandboxRouter builds the sandbox HTTP handler around svc.
func (c *Commands) NewSandboxRouter(svc Iservices.ISandboxService) *mux.Router {
	router := mux.NewRouter()
	router.Use(middleware.LoggingMiddleware(c.Logger))

	sandboxHandlers := handlers.NewSandboxHandlers(c.Logger, svc)
	routes.NewRoutes(router, sandboxHandlers, c.Logger, c.Config.Sandbox.APIKey).Init()
	return router
}

func (c *Commands) runSandbox(ctx context.Context) error {
	account, err := config.LoadSeed(c.Config.Sandbox.SeedFile)
	if err != nil {
		return err
	}

	svc, err := services.NewSandboxService(ctx, services.NewMemoryRepositories(), account, c.Logger)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", c.Config.Sandbox.Port),
		Handler: c.NewSandboxRouter(svc),
	}

	serveErr := make(chan error, 1)
	go func() {
		c.Logger.Info("Sandbox is running", logrus.Fields{"port": c.Config.Sandbox.Port})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			c.Logger.Error("Error running HTTP server", logrus.Fields{"error": err.Error()})
			return err
		}
		return nil
	case <-ctx.Done():
	}

	c.Logger.Info("Shutting down sandbox...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		c.Logger.Error("Sandbox forced to shutdown", logrus.Fields{"error": err.Error()})
		return err
	}

	c.Logger.Info("Sandbox stopped gracefully.")
	return nil
}
