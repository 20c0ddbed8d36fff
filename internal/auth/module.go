package auth

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sentraid/sentra/internal/auth/inbound"
	"github.com/sentraid/sentra/internal/auth/outbound/cache"
	"github.com/sentraid/sentra/internal/auth/outbound/db"
	"github.com/sentraid/sentra/internal/auth/outbound/mq"
	"github.com/sentraid/sentra/internal/auth/usecase"
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

type Dependency struct {
	DBConn       *pgxpool.Pool              `validate:"required"`
	Cache        cache.Cache                `validate:"required"`
	Goroutine    *goroutine.Manager         `validate:"required"`
	Router       *router.Router             `validate:"required"`
	Messaging    messaging.Publisher        `validate:"required"`
	Config       config.Config              `validate:"required"`
	Instrument   instrument.Instrumentation `validate:"required"`
	UID          uid.NumberID               `validate:"required"`
	UUID         uid.StringID               `validate:"required"`
	Bcrypt       hash.Hash                  `validate:"required"`
	HMAC         hash.Hash                  `validate:"required"`
	MFAEncryptor mfa.Encryptor              `validate:"required"`
	Clock        clock.Clocker              `validate:"required"`
	Totp         otp.OTP                    `validate:"required"`
	Validator    validator.Validator        `validate:"required"`
	JWT          jwt.JWT                    `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	dbAuth := db.New(dep.Instrument, dep.DBConn)
	repoMsg := mq.NewMessaging(dep.Messaging, dep.Instrument, dep.UID)

	uc := usecase.New(usecase.Dependency{
		RepoDB:        dbAuth,
		RepoCache:     dep.Cache,
		RepoMessaging: repoMsg,
		Validator:     dep.Validator,
		Config:        dep.Config,
		Bcrypt:        dep.Bcrypt,
		HMAC:          dep.HMAC,
		MFAEncryptor:  dep.MFAEncryptor,
		Totp:          dep.Totp,
		Clock:         dep.Clock,
		UUID:          dep.UUID,
		JWT:           dep.JWT,
		Instrument:    dep.Instrument,
		Goroutine:     dep.Goroutine,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
