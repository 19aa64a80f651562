package wire

import (
	"dropship-store/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireTicket(r chi.Router, ticketHandler *adaptor.TicketHandler, g guards) {
	r.Route("/ticket", func(r chi.Router) {
		r.Use(g.signIn)

		r.Post("/create-ticket", ticketHandler.CreateTicket)
		r.Get("/my-tickets", ticketHandler.GetMyTickets)
		r.Get("/get-ticket/{id}", ticketHandler.GetTicket)

		r.Group(func(r chi.Router) {
			r.Use(g.admin)

			r.Get("/get-tickets", ticketHandler.GetAllTickets)
			r.Put("/update-ticket/{id}", ticketHandler.UpdateTicket)
			r.Delete("/delete-ticket/{id}", ticketHandler.DeleteTicket)
		})
	})
}
