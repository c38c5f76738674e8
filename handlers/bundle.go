package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Catalog endpoints
	GetCatalogHandler   gin.HandlerFunc
	GetTimeSlotsHandler gin.HandlerFunc

	// Session endpoints
	GetStateHandler       gin.HandlerFunc
	NavigateHandler       gin.HandlerFunc
	AddToCartHandler      gin.HandlerFunc
	RemoveFromCartHandler gin.HandlerFunc
	UpdateDraftHandler    gin.HandlerFunc
	DetectLocationHandler gin.HandlerFunc
	LoginHandler          gin.HandlerFunc
	LogoutHandler         gin.HandlerFunc
	SubmitFeedbackHandler gin.HandlerFunc
	MarkInstalledHandler  gin.HandlerFunc

	// Booking endpoints
	ListBookingsHandler     gin.HandlerFunc
	GetActiveBookingHandler gin.HandlerFunc
	SelectBookingHandler    gin.HandlerFunc
	AdvanceBookingHandler   gin.HandlerFunc
	DownloadReportHandler   gin.HandlerFunc

	// Checkout endpoints
	BeginCheckoutHandler  gin.HandlerFunc
	GetCheckoutHandler    gin.HandlerFunc
	CancelCheckoutHandler gin.HandlerFunc

	// AI endpoints
	AdviceHandler gin.HandlerFunc

	// View endpoints
	HomeViewHandler         gin.HandlerFunc
	BookingViewHandler      gin.HandlerFunc
	ConfirmationViewHandler gin.HandlerFunc
	TrackingViewHandler     gin.HandlerFunc
	ReportsViewHandler      gin.HandlerFunc
}

// NewHandlerBundle wires every handler method into the bundle.
func NewHandlerBundle(sh *SessionHandler, ch *CheckoutHandler, ah *AdviceHandler, vh *ViewHandler) *HandlerBundle {
	return &HandlerBundle{
		GetCatalogHandler:   GetCatalog,
		GetTimeSlotsHandler: GetTimeSlots,

		GetStateHandler:       sh.GetState,
		NavigateHandler:       sh.Navigate,
		AddToCartHandler:      sh.AddToCart,
		RemoveFromCartHandler: sh.RemoveFromCart,
		UpdateDraftHandler:    sh.UpdateDraft,
		DetectLocationHandler: sh.DetectLocation,
		LoginHandler:          sh.Login,
		LogoutHandler:         sh.Logout,
		SubmitFeedbackHandler: sh.SubmitFeedback,
		MarkInstalledHandler:  sh.MarkInstalled,

		ListBookingsHandler:     sh.ListBookings,
		GetActiveBookingHandler: sh.GetActiveBooking,
		SelectBookingHandler:    sh.SelectBooking,
		AdvanceBookingHandler:   sh.AdvanceBooking,
		DownloadReportHandler:   sh.DownloadReport,

		BeginCheckoutHandler:  ch.BeginCheckout,
		GetCheckoutHandler:    ch.GetCheckout,
		CancelCheckoutHandler: ch.CancelCheckout,

		AdviceHandler: ah.GetAdvice,

		HomeViewHandler:         vh.Home,
		BookingViewHandler:      vh.Booking,
		ConfirmationViewHandler: vh.Confirmation,
		TrackingViewHandler:     vh.Tracking,
		ReportsViewHandler:      vh.Reports,
	}
}
