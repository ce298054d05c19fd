package http

import (
	"net/http"

	"locagora-backend/internal/security"
	"locagora-backend/internal/service"

	"github.com/gorilla/mux"
)

// Services bundles everything the HTTP layer depends on.
type Services struct {
	Auth         service.AuthService
	Calendar     service.CalendarService
	Availability service.AvailabilityService
	Inventory    service.InventoryService
	Order        service.OrderService
}

// NewRouter builds the full route table. Equipment browsing, availability and
// calendar reads are public; everything else requires a bearer token.
func NewRouter(svcs Services, tokens security.TokenManager) *mux.Router {
	authHandler := NewAuthHandler(svcs.Auth)
	equipmentHandler := NewEquipmentHandler(svcs.Inventory)
	availabilityHandler := NewAvailabilityHandler(svcs.Availability)
	orderHandler := NewOrderHandler(svcs.Order)
	calendarHandler := NewCalendarHandler(svcs.Calendar)
	authMW := NewAuthMiddleware(tokens)

	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	// Public routes
	api.HandleFunc("/auth/signup", authHandler.Signup).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)

	api.HandleFunc("/equipment", equipmentHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/equipment/{id:[0-9]+}", equipmentHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/equipment/{id:[0-9]+}/availability", availabilityHandler.CheckRange).Methods(http.MethodGet)
	api.HandleFunc("/equipment/{id:[0-9]+}/availability/daily", availabilityHandler.Daily).Methods(http.MethodGet)

	api.HandleFunc("/calendar/{year:[0-9]+}/{month:[0-9]+}", calendarHandler.MonthStatus).Methods(http.MethodGet)
	api.HandleFunc("/calendar/published", calendarHandler.ListPublishedMonths).Methods(http.MethodGet)

	// Authenticated routes
	auth := api.NewRoute().Subrouter()
	auth.Use(authMW.Authenticate)

	auth.HandleFunc("/orders", orderHandler.Create).Methods(http.MethodPost)
	auth.HandleFunc("/orders", orderHandler.List).Methods(http.MethodGet)
	auth.HandleFunc("/orders/{id:[0-9]+}", orderHandler.Get).Methods(http.MethodGet)
	auth.HandleFunc("/orders/{id:[0-9]+}/transition", orderHandler.Transition).Methods(http.MethodPost)
	auth.HandleFunc("/orders/{id:[0-9]+}/cancel", orderHandler.Cancel).Methods(http.MethodPost)
	auth.HandleFunc("/orders/{id:[0-9]+}/fees", orderHandler.AddFees).Methods(http.MethodPost)
	auth.HandleFunc("/orders/{id:[0-9]+}/items/{itemId:[0-9]+}/loss", orderHandler.CloseItemWithLoss).Methods(http.MethodPost)
	auth.HandleFunc("/orders/{id:[0-9]+}/items/{itemId:[0-9]+}/return", orderHandler.MarkItemReturned).Methods(http.MethodPost)

	// Admin-gated operations; role checks live in the services.
	auth.HandleFunc("/equipment", equipmentHandler.Create).Methods(http.MethodPost)
	auth.HandleFunc("/equipment/{id:[0-9]+}", equipmentHandler.Update).Methods(http.MethodPut)
	auth.HandleFunc("/equipment/{id:[0-9]+}", equipmentHandler.Delete).Methods(http.MethodDelete)
	auth.HandleFunc("/equipment/{id:[0-9]+}/units", equipmentHandler.ListUnits).Methods(http.MethodGet)
	auth.HandleFunc("/equipment/{id:[0-9]+}/units", equipmentHandler.AddUnits).Methods(http.MethodPost)
	auth.HandleFunc("/units/{unitId:[0-9]+}/status", equipmentHandler.SetUnitStatus).Methods(http.MethodPut)
	auth.HandleFunc("/units/{unitId:[0-9]+}", equipmentHandler.RemoveUnit).Methods(http.MethodDelete)

	auth.HandleFunc("/calendar/{year:[0-9]+}/{month:[0-9]+}/publish", calendarHandler.PublishMonth).Methods(http.MethodPost)
	auth.HandleFunc("/calendar/exceptions", calendarHandler.SetException).Methods(http.MethodPut)
	auth.HandleFunc("/calendar/exceptions/{date}", calendarHandler.RemoveException).Methods(http.MethodDelete)
	auth.HandleFunc("/calendar/weekly", calendarHandler.SetWeeklyEntry).Methods(http.MethodPut)

	return r
}
