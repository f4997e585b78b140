package app

import (
	"net/http"
	"time"

	"tickex/internal/app/deps"
	"tickex/internal/app/services"
	handlerInitPasswordReset "tickex/internal/http/handlers/auth/init_password_reset"
	handlerResetPassword "tickex/internal/http/handlers/auth/reset_password"
	handlerSendOTP "tickex/internal/http/handlers/auth/send_password_reset_otp"
	handlerVerifyOTP "tickex/internal/http/handlers/auth/verify_password_reset_otp"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func InitHttpServer(deps *deps.Deps, s *services.Services) *http.Server {
	isTestMode := deps.Config.IsTestMode

	authRouter := chi.NewRouter()
	authRouter.Method(
		http.MethodPost,
		"/password_reset/init",
		handlerInitPasswordReset.New(s.InitPasswordReset, isTestMode),
	)
	authRouter.Method(http.MethodPost, "/password_reset/send_otp", handlerSendOTP.New(s.SendPasswordResetOTP))
	authRouter.Method(http.MethodPost, "/password_reset/verify_otp", handlerVerifyOTP.New(s.VerifyPasswordResetOTP))
	authRouter.Method(http.MethodPut, "/password_reset", handlerResetPassword.New(s.ResetPassword))

	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"https://*", "http://*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	router.Mount("/auth", authRouter)

	return &http.Server{
		Handler:           router,
		Addr:              deps.Config.HTTPAddress,
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      5 * time.Second,
		IdleTimeout:       5 * time.Second,
	}
}
