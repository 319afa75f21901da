package handlers

import (
	"fmt"

	"carrental/internal/middleware"
	"carrental/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RentalHandler handles HTTP requests for rentals.
type RentalHandler struct {
	service *services.RentalService
	log     *zap.Logger
}

// NewRentalHandler creates a new RentalHandler.
func NewRentalHandler(service *services.RentalService, log *zap.Logger) *RentalHandler {
	return &RentalHandler{
		service: service,
		log:     log,
	}
}

// RegisterRoutes registers the rental routes; all of them require auth.
func (h *RentalHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	router.Post("/cars/:id/rent", auth, h.HandleRentCar)
	router.Get("/rentals", auth, h.HandleListRentals)
	router.Get("/rentals/:id", auth, h.HandleGetRental)
}

// HandleRentCar rents the car in the path for the authenticated customer.
func (h *RentalHandler) HandleRentCar(c *fiber.Ctx) error {
	// Reject the wrong role before the path and body are looked at, so an
	// ADMIN gets 403 rather than 404 or 422. RentCar checks again.
	claims := middleware.Claims(c)
	if err := services.Authorize(claims, services.ActionRentCar); err != nil {
		return writeError(c, h.log, err)
	}

	id, err := c.ParamsInt("id")
	if err != nil {
		return writeError(c, h.log, fmt.Errorf("car %q: %w", c.Params("id"), services.ErrCarNotFound))
	}

	var input services.RentCarInput
	if err := c.BodyParser(&input); err != nil {
		return invalidBody(c, err)
	}

	rental, err := h.service.RentCar(int64(id), claims, input)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(rental)
}

// HandleListRentals lists the rentals visible to the caller.
func (h *RentalHandler) HandleListRentals(c *fiber.Ctx) error {
	rentals, err := h.service.ListRentals(middleware.Claims(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(rentals)
}

// HandleGetRental returns one rental visible to the caller.
func (h *RentalHandler) HandleGetRental(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return writeError(c, h.log, fmt.Errorf("rental %q: %w", c.Params("id"), services.ErrRentalNotFound))
	}

	rental, err := h.service.GetRental(int64(id), middleware.Claims(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(rental)
}
