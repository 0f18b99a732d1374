package app

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/spf13/viper"

	"github.com/bwaremarkt/storefront/internal/catalog"
	"github.com/bwaremarkt/storefront/internal/dal/bolt"
	addressrepo "github.com/bwaremarkt/storefront/internal/dal/repositories/address"
	cartrepo "github.com/bwaremarkt/storefront/internal/dal/repositories/cart"
	orderrepo "github.com/bwaremarkt/storefront/internal/dal/repositories/order"
	userrepo "github.com/bwaremarkt/storefront/internal/dal/repositories/user"
	"github.com/bwaremarkt/storefront/internal/dal/storage"
	"github.com/bwaremarkt/storefront/internal/notifier"
	"github.com/bwaremarkt/storefront/internal/otel"
	"github.com/bwaremarkt/storefront/internal/service/services/addresssvc"
	"github.com/bwaremarkt/storefront/internal/service/services/cartsvc"
	"github.com/bwaremarkt/storefront/internal/service/services/ordersvc"
	"github.com/bwaremarkt/storefront/internal/service/services/usersvc"
	httptransport "github.com/bwaremarkt/storefront/internal/transport/http"
	statusworker "github.com/bwaremarkt/storefront/internal/worker/status"
	"github.com/bwaremarkt/storefront/pkg/events"
)

// App represents the application.
type App struct {
	orderSvc     *ordersvc.OrderService
	transport    *httptransport.HTTPTransport
	statusWorker *statusworker.Worker
	boltClient   *bolt.Client
	pubSub       *gochannel.GoChannel
	otel         *otel.OtelController
}

// MustNewApp creates a new application.
func MustNewApp() *App {
	boltClient := bolt.MustNewClient()
	bus := events.NewBus()
	store := storage.NewStore(boltClient, bus)

	productCatalog := catalog.MustLoad()

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewSlogLogger(slog.Default()))

	cartSvc := cartsvc.MustNewCartService(
		cartsvc.WithCartRepository(cartrepo.NewCartRepository(store)),
	)
	addressSvc := addresssvc.MustNewAddressService(
		addresssvc.WithAddressRepository(addressrepo.NewAddressRepository(store)),
	)
	userSvc := usersvc.MustNewUserService(
		usersvc.WithUserRepository(userrepo.NewUserRepository(store)),
	)
	orderSvc := ordersvc.MustNewOrderService(
		ordersvc.WithOrderRepository(orderrepo.NewOrderRepository(store)),
		ordersvc.WithAddressBook(addressSvc),
		ordersvc.WithCart(cartSvc),
		ordersvc.WithCatalog(productCatalog),
		ordersvc.WithSession(userSvc),
		ordersvc.WithConfirmationSender(notifier.NewPublisher(pubSub)),
	)

	transport := httptransport.NewHTTPTransport(orderSvc, cartSvc, addressSvc, userSvc, productCatalog)
	transport.RegisterRoutes()

	app := &App{
		orderSvc:     orderSvc,
		transport:    transport,
		statusWorker: statusworker.NewWorker(orderSvc),
		boltClient:   boltClient,
		pubSub:       pubSub,
	}

	if viper.GetBool("tracing.enabled") {
		app.otel = otel.MustInitOtel()
	}

	return app
}

// Run starts the application.
// Tracks interrupt signal to gracefully shut down the application.
func (a *App) Run() {
	// Create a channel to receive OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	workerCtx, cancelWorker := context.WithCancel(context.Background())
	defer cancelWorker()

	consumer := notifier.NewConsumer(a.pubSub, notifier.LogSender{})
	if err := consumer.Start(workerCtx); err != nil {
		slog.Error("Failed to start confirmation consumer", "error", err)
	}

	go a.statusWorker.Start(workerCtx)

	go func() {
		slog.Info("Starting HTTP server")
		if err := a.transport.Run(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	<-stop
	slog.Info("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.transport.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped gracefully")
	}

	cancelWorker()

	if err := a.pubSub.Close(); err != nil {
		slog.Error("Pub/sub close error", "error", err)
	}

	if a.otel != nil {
		if err := a.otel.Shutdown(); err != nil {
			slog.Error("Trace provider shutdown error", "error", err)
		}
	}

	if err := a.boltClient.Close(); err != nil {
		slog.Error("Storage close error", "error", err)
	} else {
		slog.Info("Storage closed gracefully")
	}

	slog.Info("Application shutdown complete")
}
