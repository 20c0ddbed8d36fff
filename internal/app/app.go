package app

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sentraid/sentra/internal/auth/outbound/cache"
	"github.com/sentraid/sentra/internal/pkg/clock"
	"github.com/sentraid/sentra/internal/pkg/config"
	"github.com/sentraid/sentra/internal/pkg/goroutine"
	"github.com/sentraid/sentra/internal/pkg/hash"
	"github.com/sentraid/sentra/internal/pkg/instrument"
	"github.com/sentraid/sentra/internal/pkg/jwt"
	"github.com/sentraid/sentra/internal/pkg/messaging"
	"github.com/sentraid/sentra/internal/pkg/mfa"
	"github.com/sentraid/sentra/internal/pkg/otp"
	"github.com/sentraid/sentra/internal/pkg/router"
	"github.com/sentraid/sentra/internal/pkg/uid"
	"github.com/sentraid/sentra/internal/pkg/validator"
)

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	goroutine    *goroutine.Manager
	validator    validator.Validator
	clock        clock.Clocker
	bcrypt       hash.Hash
	hmac         hash.Hash
	uid          uid.NumberID
	uuid         uid.StringID
	totp         otp.OTP
	jwt          jwt.JWT
	mfaEncryptor mfa.Encryptor

	// resources
	dbConn    *pgxpool.Pool
	cacheConn *redis.Client
	cache     cache.Cache
	messaging messaging.Publisher

	// server
	router     *router.Router
	httpServer *http.Server

	//
	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application with default wiring and returns an App instance.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initJWT()
	app.initDatabase()
	app.initCache()
	app.initMessaging()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
