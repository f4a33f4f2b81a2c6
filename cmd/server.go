package main

import (
	"log/slog"
	"net/http"

	"chayen/internal/handler"
	"chayen/internal/middleware"
	"chayen/internal/service"
)

func NewRouter(
	logger *slog.Logger,
	authService service.AuthService,
	orderHandler *handler.OrderHandler,
	shiftHandler *handler.ShiftHandler,
	memberHandler *handler.MemberHandler,
	voucherHandler *handler.VoucherHandler,
	reportHandler *handler.ReportHandler,
	authHandler *handler.AuthHandler,
) http.Handler {
	mux := http.NewServeMux()
	requireSession := middleware.Auth(authService)

	// Auth routes
	mux.HandleFunc("POST /api/v1/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/v1/auth/logout", authHandler.Logout)

	// Order routes
	mux.HandleFunc("POST /api/v1/orders", orderHandler.CreateOrder)
	mux.HandleFunc("GET /api/v1/orders", orderHandler.ListOrders)
	mux.HandleFunc("GET /api/v1/orders/{id}", orderHandler.GetOrder)
	mux.HandleFunc("PATCH /api/v1/orders/{id}/status", orderHandler.UpdateStatus)

	// Shift routes
	mux.HandleFunc("POST /api/v1/shifts", shiftHandler.OpenShift)
	mux.HandleFunc("GET /api/v1/shifts", shiftHandler.ListShifts)
	mux.HandleFunc("GET /api/v1/shifts/{id}", shiftHandler.GetShift)
	mux.HandleFunc("GET /api/v1/shifts/{id}/summary", shiftHandler.GetSummary)
	mux.HandleFunc("POST /api/v1/shifts/{id}/close", shiftHandler.CloseShift)

	// Member routes
	mux.HandleFunc("POST /api/v1/members", memberHandler.Register)
	mux.HandleFunc("GET /api/v1/members/lookup", memberHandler.LookupByPhone)
	mux.HandleFunc("GET /api/v1/members/{id}", memberHandler.GetMember)
	mux.HandleFunc("GET /api/v1/members/{id}/benefits", memberHandler.GetBenefits)

	// Voucher routes
	mux.HandleFunc("POST /api/v1/members/{id}/vouchers", voucherHandler.Issue)
	mux.HandleFunc("GET /api/v1/members/{id}/vouchers", voucherHandler.ListForMember)
	mux.HandleFunc("GET /api/v1/vouchers/{code}", voucherHandler.Validate)
	mux.HandleFunc("POST /api/v1/vouchers/{code}/redeem", voucherHandler.Redeem)

	// Report routes require a staff session
	mux.Handle("GET /api/v1/reports/sales", requireSession(http.HandlerFunc(reportHandler.GetSalesReport)))
	mux.Handle("GET /api/v1/reports/bestsellers", requireSession(http.HandlerFunc(reportHandler.GetBestsellers)))
	mux.Handle("GET /api/v1/reports/categories", requireSession(http.HandlerFunc(reportHandler.GetCategorySales)))

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Middleware chain
	var h http.Handler = mux
	h = middleware.Logging(logger, h)
	h = middleware.Recovery(logger, h)

	return h
}
