package httpapi

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/JusticeO21/weather-app-pma-assessment/internal/store"
	"github.com/JusticeO21/weather-app-pma-assessment/internal/weather"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service, records *store.Store) {
	app.Post("/weather", currentWeather(service))
	app.Post("/forecast", weeklyForecast(service))

	rec := app.Group("/records")
	rec.Get("", listRecords(records))
	// filter and export must be registered before the :id route.
	rec.Get("/filter", filterRecords(records))
	rec.Get("/export", exportRecords(records))
	rec.Get("/:id", getRecord(records))
	rec.Post("/save", saveRecord(records))
	rec.Put("/:id", updateRecord(records))
	rec.Delete("/:id", deleteRecord(records))
}

// locationRequest is the body of the weather and forecast endpoints.
type locationRequest struct {
	Location string `json:"location" validate:"required"`
}

func currentWeather(service *weather.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, err := parseLocationBody(c)
		if err != nil {
			return err
		}

		snapshot, err := service.Current(c.UserContext(), req.Location)
		if err != nil {
			return mapWeatherError(err)
		}
		return c.JSON(snapshot)
	}
}

func weeklyForecast(service *weather.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, err := parseLocationBody(c)
		if err != nil {
			return err
		}

		forecast, err := service.Forecast(c.UserContext(), req.Location)
		if err != nil {
			return mapWeatherError(err)
		}
		return c.JSON(forecast)
	}
}

func listRecords(records *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		all, err := records.GetAll(c.UserContext())
		if err != nil {
			return mapStoreError(err)
		}
		return c.JSON(fiber.Map{
			"success": true,
			"count":   len(all),
			"data":    all,
		})
	}
}

func filterRecords(records *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		location := c.Query("location")
		if location == "" {
			return fiber.NewError(fiber.StatusBadRequest, "location query parameter is required")
		}

		matched, err := records.GetByLocation(c.UserContext(), location)
		if err != nil {
			return mapStoreError(err)
		}
		if len(matched) == 0 {
			return fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("no records found for location %q", location))
		}
		return c.JSON(fiber.Map{
			"success": true,
			"count":   len(matched),
			"data":    matched,
		})
	}
}

func exportRecords(records *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := int64(c.QueryInt("id", 0))

		data, filename, ok, err := records.ExportCSV(c.UserContext(), id)
		if err != nil {
			return mapStoreError(err)
		}
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "no records found for export")
		}

		c.Set(fiber.HeaderContentType, "text/csv")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename=`+filename)
		return c.Send(data)
	}
}

func getRecord(records *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}

		rec, found, err := records.GetByID(c.UserContext(), id)
		if err != nil {
			return mapStoreError(err)
		}
		if !found {
			return recordNotFound(id)
		}
		return c.JSON(fiber.Map{
			"success": true,
			"data":    rec,
		})
	}
}

func saveRecord(records *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var fields store.RecordFields
		if err := c.BodyParser(&fields); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(fields); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		rec, err := records.Create(c.UserContext(), fields)
		if err != nil {
			return mapStoreError(err)
		}
		return c.JSON(fiber.Map{
			"success": true,
			"message": "Weather record created successfully",
			"data":    rec,
		})
	}
}

func updateRecord(records *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}

		var patch store.RecordPatch
		if err := c.BodyParser(&patch); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		rec, found, err := records.Update(c.UserContext(), id, patch)
		if err != nil {
			return mapStoreError(err)
		}
		if !found {
			return recordNotFound(id)
		}
		return c.JSON(fiber.Map{
			"success": true,
			"message": "Weather record updated successfully",
			"data":    rec,
		})
	}
}

func deleteRecord(records *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}

		found, err := records.Delete(c.UserContext(), id)
		if err != nil {
			return mapStoreError(err)
		}
		if !found {
			return recordNotFound(id)
		}
		return c.JSON(fiber.Map{
			"success": true,
			"message": fmt.Sprintf("Record ID %d deleted successfully", id),
		})
	}
}

func parseLocationBody(c *fiber.Ctx) (locationRequest, error) {
	var req locationRequest
	if err := c.BodyParser(&req); err != nil {
		return req, fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return req, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return req, nil
}

func parseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid record id")
	}
	return id, nil
}

func recordNotFound(id int64) error {
	return fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("Record with ID %d not found", id))
}

func mapWeatherError(err error) error {
	var upstream *weather.UpstreamError
	switch {
	case errors.Is(err, weather.ErrMissingAPIKey):
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	case errors.As(err, &upstream):
		return fiber.NewError(fiber.StatusBadRequest, upstream.Error())
	case errors.Is(err, weather.ErrMalformedPayload):
		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch weather data")
	}
}

func mapStoreError(err error) error {
	switch {
	case errors.Is(err, store.ErrInvalidInput):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}
