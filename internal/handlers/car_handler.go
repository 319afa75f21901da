package handlers

import (
	"fmt"

	"carrental/internal/middleware"
	"carrental/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CarHandler handles HTTP requests for cars.
type CarHandler struct {
	service *services.CarService
	log     *zap.Logger
}

// NewCarHandler creates a new CarHandler.
func NewCarHandler(service *services.CarService, log *zap.Logger) *CarHandler {
	return &CarHandler{
		service: service,
		log:     log,
	}
}

// RegisterRoutes registers the car routes. auth guards the mutating routes.
func (h *CarHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	carRoutes := router.Group("/cars")
	carRoutes.Get("", h.HandleListCars)
	carRoutes.Get("/:id", h.HandleGetCar)
	carRoutes.Post("", auth, h.HandleCreateCar)
	carRoutes.Delete("/:id", auth, h.HandleDeleteCar)
}

// HandleListCars returns every car.
func (h *CarHandler) HandleListCars(c *fiber.Ctx) error {
	cars, err := h.service.ListCars()
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(cars)
}

// HandleGetCar returns a single car.
func (h *CarHandler) HandleGetCar(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return writeError(c, h.log, fmt.Errorf("car %q: %w", c.Params("id"), services.ErrCarNotFound))
	}
	car, err := h.service.GetCar(int64(id))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(car)
}

// HandleCreateCar creates a car from the JSON body.
func (h *CarHandler) HandleCreateCar(c *fiber.Ctx) error {
	var input services.CreateCarInput
	if err := c.BodyParser(&input); err != nil {
		return invalidBody(c, err)
	}

	car, err := h.service.CreateCar(input, middleware.Claims(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(car)
}

// HandleDeleteCar deletes a car. The response is 204 whether or not the car existed.
func (h *CarHandler) HandleDeleteCar(c *fiber.Ctx) error {
	claims := middleware.Claims(c)
	id, err := c.ParamsInt("id")
	if err != nil {
		// A non-numeric ID can never exist; authorize anyway so customers still get 403.
		if authErr := services.Authorize(claims, services.ActionDeleteCar); authErr != nil {
			return writeError(c, h.log, authErr)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}

	if err := h.service.DeleteCar(int64(id), claims); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
