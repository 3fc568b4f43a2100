// Package shopfront is the entry point for the storefront client. It wires
// the resilient API client, the session manager, and the cart container into
// one explicitly constructed App. Build the App once at process start and
// inject it into the view layer; none of the components are singletons.
//
// Users needing only one piece should import the specific package:
//   - github.com/mnorrell/shopfront/api - resilient backend client
//   - github.com/mnorrell/shopfront/cart - cart state container
//   - github.com/mnorrell/shopfront/session - auth/session state
package shopfront

import (
	"context"

	"github.com/mnorrell/shopfront/api"
	"github.com/mnorrell/shopfront/cart"
	"github.com/mnorrell/shopfront/core"
	"github.com/mnorrell/shopfront/session"
)

// Re-export core types so simple integrations only import this package
type (
	Config        = core.Config
	Option        = core.Option
	LoggingConfig = core.LoggingConfig
	RedisConfig   = core.RedisConfig

	Logger          = core.Logger
	CredentialStore = core.CredentialStore
	HTTPError       = core.HTTPError

	Product    = api.Product
	Category   = api.Category
	Review     = api.Review
	Cart       = api.Cart
	CartItem   = api.CartItem
	User       = api.User
	Order      = api.Order
	PriceAlert = api.PriceAlert

	RegisterRequest     = api.RegisterRequest
	LoginRequest        = api.LoginRequest
	PlaceOrderRequest   = api.PlaceOrderRequest
	CreateReviewRequest = api.CreateReviewRequest
)

// Re-export configuration options
var (
	NewConfig          = core.NewConfig
	DefaultConfig      = core.DefaultConfig
	WithName           = core.WithName
	WithBaseURL        = core.WithBaseURL
	WithProbeTimeout   = core.WithProbeTimeout
	WithRequestTimeout = core.WithRequestTimeout
	WithMockLatency    = core.WithMockLatency
	WithLogLevel       = core.WithLogLevel
	WithLogFormat      = core.WithLogFormat
	WithRedisURL       = core.WithRedisURL
	WithTelemetry      = core.WithTelemetry
	WithConfigFile     = core.WithConfigFile
)

// App bundles the wired storefront components. The view layer reads Cart's
// derived values and calls its mutators; everything else flows through API.
type App struct {
	Config      *core.Config
	Logger      core.Logger
	Credentials core.CredentialStore
	API         *api.Client
	Session     *session.Manager
	Cart        *cart.Container
}

// New constructs the application graph from configuration options. When a
// Redis URL is configured the credential store persists tokens there;
// otherwise tokens live in process memory.
func New(opts ...core.Option) (*App, error) {
	cfg, err := core.NewConfig(opts...)
	if err != nil {
		return nil, err
	}

	logger := core.NewLogger(cfg.Logging, cfg.Name)

	var creds core.CredentialStore
	if cfg.Redis.URL != "" {
		store, err := core.NewRedisCredentialStore(cfg.Redis)
		if err != nil {
			return nil, err
		}
		creds = store
	} else {
		creds = core.NewMemoryCredentialStore()
	}

	client := api.NewClient(cfg, creds, logger)
	sess := session.NewManager(client, creds, logger)
	container := cart.NewContainer(client, logger)
	container.BindSession(sess)

	return &App{
		Config:      cfg,
		Logger:      logger,
		Credentials: creds,
		API:         client,
		Session:     sess,
		Cart:        container,
	}, nil
}

// Start probes backend availability and resumes a persisted session if the
// credential store holds a token. Other operations behave correctly even if
// Start never ran; the API client begins optimistic.
func (a *App) Start(ctx context.Context) error {
	a.API.Initialize(ctx)
	return a.Session.Resume(ctx)
}

// Close releases resources held by the credential store, if any
func (a *App) Close() error {
	if closer, ok := a.Credentials.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}
