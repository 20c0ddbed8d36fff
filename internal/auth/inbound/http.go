package inbound

import (
	"context"

	"github.com/sentraid/sentra/internal/auth/usecase"
	"github.com/sentraid/sentra/internal/pkg/router"
)

type uc interface {
	Login(ctx context.Context, in usecase.LoginInput) (*usecase.LoginOutput, error)
	OTPLogin(ctx context.Context, in usecase.OTPLoginInput) (*usecase.OTPLoginOutput, error)
	OTPStatus(ctx context.Context) (*usecase.OTPStatusOutput, error)
	Info(ctx context.Context) (*usecase.InfoOutput, error)
	Logout(ctx context.Context) (*usecase.LogoutOutput, error)
	ResetOTP(ctx context.Context) (*usecase.ResetOTPOutput, error)
	CheckLogin(ctx context.Context) (*usecase.CheckLoginOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// First factor
	r.POST("/api/v1/auth/login", end.Login)
	r.GET("/api/v1/auth/check-login", end.CheckLogin)

	// Second factor (need authenticated)
	r.POST("/api/v1/auth/otp-login", end.OTPLogin)
	r.GET("/api/v1/auth/otp-status", end.OTPStatus)
	r.POST("/api/v1/auth/reset-otp", end.ResetOTP)

	// Session (need authenticated)
	r.GET("/api/v1/auth/info", end.Info)
	r.POST("/api/v1/auth/logout", end.Logout)
}
