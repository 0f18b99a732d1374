package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/viper"

	"github.com/bwaremarkt/storefront/internal/service/models/address"
	"github.com/bwaremarkt/storefront/internal/service/models/cart"
	"github.com/bwaremarkt/storefront/internal/service/models/order"
	"github.com/bwaremarkt/storefront/internal/service/models/product"
	"github.com/bwaremarkt/storefront/internal/service/models/user"
	"github.com/bwaremarkt/storefront/internal/service/services/ordersvc"
	addresseshandler "github.com/bwaremarkt/storefront/internal/transport/http/addresses"
	cancelorder "github.com/bwaremarkt/storefront/internal/transport/http/cancel_order"
	carthandler "github.com/bwaremarkt/storefront/internal/transport/http/cart"
	createorder "github.com/bwaremarkt/storefront/internal/transport/http/create_order"
	getorder "github.com/bwaremarkt/storefront/internal/transport/http/get_order"
	listorders "github.com/bwaremarkt/storefront/internal/transport/http/list_orders"
	productshandler "github.com/bwaremarkt/storefront/internal/transport/http/products"
	userhandler "github.com/bwaremarkt/storefront/internal/transport/http/user"
	"github.com/bwaremarkt/storefront/pkg/http/middleware/trace"
	"github.com/bwaremarkt/storefront/pkg/logger"
)

type orderService interface {
	Checkout(ctx context.Context, form ordersvc.CheckoutForm) (order.Order, error)
	List(ctx context.Context, q order.Query) []order.Order
	GetByID(ctx context.Context, id string) (order.Order, bool)
	GetByOrderNumber(ctx context.Context, number string) (order.Order, bool)
	Cancel(ctx context.Context, id string) (order.Order, error)
}

type cartService interface {
	Items(ctx context.Context) []cart.Item
	ItemCount(ctx context.Context) int
	AddToCart(ctx context.Context, productID string, quantity int)
	UpdateQuantity(ctx context.Context, productID string, quantity int)
	RemoveFromCart(ctx context.Context, productID string)
	Clear(ctx context.Context)
}

type addressService interface {
	List(ctx context.Context) []address.Address
	Add(ctx context.Context, d address.Draft) address.Address
	Update(ctx context.Context, id string, d address.Draft) (address.Address, error)
	Remove(ctx context.Context, id string) error
	SetDefault(ctx context.Context, id string) error
}

type userService interface {
	Get(ctx context.Context) (user.UserData, bool)
	Set(ctx context.Context, u user.UserData)
	Clear(ctx context.Context)
}

type catalog interface {
	ProductByID(id string) (product.Product, bool)
	List() []product.Product
}

type HTTPTransport struct {
	server    *http.Server
	router    *chi.Mux
	orders    orderService
	cart      cartService
	addresses addressService
	user      userService
	catalog   catalog
}

func NewHTTPTransport(
	orders orderService,
	cartSvc cartService,
	addresses addressService,
	userSvc userService,
	catalog catalog,
) *HTTPTransport {
	router := newRouter()
	server := newServer(router)
	return &HTTPTransport{
		server:    server,
		router:    router,
		orders:    orders,
		cart:      cartSvc,
		addresses: addresses,
		user:      userSvc,
		catalog:   catalog,
	}
}

func (h *HTTPTransport) Run() error {
	return h.server.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (h *HTTPTransport) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// Handler returns the underlying router, for tests.
func (h *HTTPTransport) Handler() http.Handler {
	return h.router
}

// RegisterRoutes registers the routes for the HTTPTransport.
func (h *HTTPTransport) RegisterRoutes() {
	h.router.Route("/api", func(r chi.Router) {
		r.Get("/products", h.listProducts)
		r.Get("/products/{id}", h.getProduct)

		r.Get("/cart", h.getCart)
		r.Post("/cart/items", h.addCartItem)
		r.Patch("/cart/items/{productID}", h.updateCartItem)
		r.Delete("/cart/items/{productID}", h.removeCartItem)
		r.Delete("/cart", h.clearCart)

		r.Get("/orders", h.listOrders)
		r.Post("/orders", h.createOrder)
		r.Get("/orders/{id}", h.getOrder)
		r.Get("/orders/number/{orderNumber}", h.getOrderByNumber)
		r.Post("/orders/{id}/cancel", h.cancelOrder)

		r.Get("/addresses", h.listAddresses)
		r.Post("/addresses", h.addAddress)
		r.Patch("/addresses/{id}", h.updateAddress)
		r.Delete("/addresses/{id}", h.removeAddress)
		r.Post("/addresses/{id}/default", h.setDefaultAddress)

		r.Get("/user", h.getUser)
		r.Put("/user", h.setUser)
		r.Delete("/user", h.clearUser)
	})
}

func (h *HTTPTransport) createOrder(w http.ResponseWriter, r *http.Request) {
	createorder.Checkout(w, r, h.orders)
}

func (h *HTTPTransport) listOrders(w http.ResponseWriter, r *http.Request) {
	listorders.ListOrders(w, r, h.orders)
}

func (h *HTTPTransport) getOrder(w http.ResponseWriter, r *http.Request) {
	getorder.GetByID(w, r, h.orders)
}

func (h *HTTPTransport) getOrderByNumber(w http.ResponseWriter, r *http.Request) {
	getorder.GetByOrderNumber(w, r, h.orders)
}

func (h *HTTPTransport) cancelOrder(w http.ResponseWriter, r *http.Request) {
	cancelorder.Cancel(w, r, h.orders)
}

func (h *HTTPTransport) getCart(w http.ResponseWriter, r *http.Request) {
	carthandler.Get(w, r, h.cart, h.catalog)
}

func (h *HTTPTransport) addCartItem(w http.ResponseWriter, r *http.Request) {
	carthandler.AddItem(w, r, h.cart)
}

func (h *HTTPTransport) updateCartItem(w http.ResponseWriter, r *http.Request) {
	carthandler.UpdateItem(w, r, h.cart)
}

func (h *HTTPTransport) removeCartItem(w http.ResponseWriter, r *http.Request) {
	carthandler.RemoveItem(w, r, h.cart)
}

func (h *HTTPTransport) clearCart(w http.ResponseWriter, r *http.Request) {
	carthandler.Clear(w, r, h.cart)
}

func (h *HTTPTransport) listAddresses(w http.ResponseWriter, r *http.Request) {
	addresseshandler.List(w, r, h.addresses)
}

func (h *HTTPTransport) addAddress(w http.ResponseWriter, r *http.Request) {
	addresseshandler.Add(w, r, h.addresses)
}

func (h *HTTPTransport) updateAddress(w http.ResponseWriter, r *http.Request) {
	addresseshandler.Update(w, r, h.addresses)
}

func (h *HTTPTransport) removeAddress(w http.ResponseWriter, r *http.Request) {
	addresseshandler.Remove(w, r, h.addresses)
}

func (h *HTTPTransport) setDefaultAddress(w http.ResponseWriter, r *http.Request) {
	addresseshandler.SetDefault(w, r, h.addresses)
}

func (h *HTTPTransport) getUser(w http.ResponseWriter, r *http.Request) {
	userhandler.Get(w, r, h.user)
}

func (h *HTTPTransport) setUser(w http.ResponseWriter, r *http.Request) {
	userhandler.Set(w, r, h.user)
}

func (h *HTTPTransport) clearUser(w http.ResponseWriter, r *http.Request) {
	userhandler.Clear(w, r, h.user)
}

func (h *HTTPTransport) listProducts(w http.ResponseWriter, r *http.Request) {
	productshandler.List(w, r, h.catalog)
}

func (h *HTTPTransport) getProduct(w http.ResponseWriter, r *http.Request) {
	productshandler.Get(w, r, h.catalog)
}

func newRouter() *chi.Mux {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(logger.NewLoggerMiddleware(slog.Default()))
	router.Use(trace.NewTraceMiddleware)

	allowedOrigins := viper.GetStringSlice("server.http.cors.allowed_origins")
	allowedMethods := viper.GetStringSlice("server.http.cors.allowed_methods")
	allowedHeaders := viper.GetStringSlice("server.http.cors.allowed_headers")
	exposedHeaders := viper.GetStringSlice("server.http.cors.exposed_headers")
	allowCredentials := viper.GetBool("server.http.cors.allow_credentials")
	maxAge := viper.GetInt("server.http.cors.max_age")

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   allowedMethods,
		AllowedHeaders:   allowedHeaders,
		ExposedHeaders:   exposedHeaders,
		AllowCredentials: allowCredentials,
		MaxAge:           maxAge,
	})

	router.Use(c.Handler)

	return router
}

func newServer(router http.Handler) *http.Server {
	port := viper.GetString("server.http.port")
	if port == "" {
		port = "8080"
	}

	return &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
}
