package router

import (
	"suburban/internal/handlers/accessory"
	"suburban/internal/handlers/activity"
	"suburban/internal/handlers/allocation"
	"suburban/internal/handlers/auth"
	"suburban/internal/handlers/booking"
	"suburban/internal/handlers/conference"
	"suburban/internal/handlers/conferencebooking"
	"suburban/internal/handlers/guest"
	"suburban/internal/handlers/inventory"
	"suburban/internal/handlers/officeusage"
	"suburban/internal/handlers/room"
	"suburban/internal/handlers/user"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth              auth.Handler
	Guest             guest.Handler
	Room              room.Handler
	Booking           booking.Handler
	Conference        conference.Handler
	ConferenceBooking conferencebooking.Handler
	Accessory         accessory.Handler
	Allocation        allocation.Handler
	Inventory         inventory.Handler
	OfficeUsage       officeusage.Handler
	Activity          activity.Handler
	User              user.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Guest.Router(routerGroup)
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Conference.Router(routerGroup)
		r.DomainHandlers.ConferenceBooking.Router(routerGroup)
		r.DomainHandlers.Accessory.Router(routerGroup)
		r.DomainHandlers.Allocation.Router(routerGroup)
		r.DomainHandlers.Inventory.Router(routerGroup)
		r.DomainHandlers.OfficeUsage.Router(routerGroup)
		r.DomainHandlers.Activity.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
