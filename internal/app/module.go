package app

import (
	"log/slog"
	"os"

	"github.com/sentraid/sentra/internal/auth"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.auth.enabled") {
		if err := auth.New(auth.Dependency{
			Config:       a.config,
			Instrument:   a.ins,
			UID:          a.uid,
			UUID:         a.uuid,
			Bcrypt:       a.bcrypt,
			HMAC:         a.hmac,
			MFAEncryptor: a.mfaEncryptor,
			Clock:        a.clock,
			Validator:    a.validator,
			Router:       a.router,
			Totp:         a.totp,
			DBConn:       a.dbConn,
			Cache:        a.cache,
			Messaging:    a.messaging,
			Goroutine:    a.goroutine,
			JWT:          a.jwt,
		}); err != nil {
			slog.Error("failed to init module auth", "error", err)
			os.Exit(1)
		}
	}
}
