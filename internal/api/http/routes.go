package httpapi

import (
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/temperature-converter/internal/converter"
	"github.com/i474232898/temperature-converter/internal/store"
	"github.com/i474232898/temperature-converter/internal/temperature"
	"github.com/i474232898/temperature-converter/internal/usagelog"
	"github.com/i474232898/temperature-converter/internal/weather"
	"github.com/i474232898/temperature-converter/internal/weather/providers"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, conv *converter.Service, weatherSvc *weather.Service) {
	v1 := app.Group("/api/v1")

	v1.Get("/convert", func(c *fiber.Ctx) error {
		q := convertQuery{Temp: c.Query("temp")}
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "temp query parameter is required")
		}

		result, err := conv.Convert(c.UserContext(), usagelog.OriginHTTP, q.Temp)
		if err != nil {
			var perr *temperature.ParseError
			if errors.As(err, &perr) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error":   true,
					"kind":    perr.Kind.String(),
					"message": perr.Error(),
				})
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		return c.JSON(result)
	})

	v1.Get("/weather/current", func(c *fiber.Ctx) error {
		q, err := parseZipQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		report, err := conv.Lookup(c.UserContext(), usagelog.OriginHTTP, q.Zip)
		if err != nil {
			return fiber.NewError(lookupStatus(err), err.Error())
		}

		return c.JSON(report)
	})

	v1.Get("/weather/latest", func(c *fiber.Ctx) error {
		q, err := parseZipQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		obs, err := weatherSvc.Latest(q.Zip)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no weather data for requested zip code")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch weather data")
		}

		return c.JSON(obs)
	})

	v1.Get("/weather/history", func(c *fiber.Ctx) error {
		var req historyQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		observations, err := weatherSvc.Range(req.Zip.Zip, req.From, req.To)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no weather history for requested range")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch weather history")
		}

		return c.JSON(fiber.Map{
			"zip":          weather.NormalizeZip(req.Zip.Zip),
			"from":         req.From,
			"to":           req.To,
			"observations": observations,
		})
	})

	v1.Get("/usage", func(c *fiber.Ctx) error {
		text, err := conv.History(c.UserContext(), usagelog.OriginHTTP)
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return c.Type("txt", "utf-8").SendString(text)
	})
}

// lookupStatus maps a zip lookup failure to a response code. Only upstream
// trouble (transport errors, 5xx, rate limiting, an open circuit) is a 502.
func lookupStatus(err error) int {
	switch {
	case errors.Is(err, weather.ErrEmptyZip):
		return fiber.StatusBadRequest
	case providers.IsLocationNotFound(err):
		return fiber.StatusNotFound
	default:
		return fiber.StatusBadGateway
	}
}

type convertQuery struct {
	Temp string `validate:"required"`
}

// zipQuery holds the query parameter identifying a postal/zip code.
type zipQuery struct {
	Zip string `validate:"required,max=32"`
}

func parseZipQuery(c *fiber.Ctx) (zipQuery, error) {
	q := zipQuery{Zip: weather.NormalizeZip(c.Query("zip"))}
	if err := validate.Struct(q); err != nil {
		return q, err
	}
	return q, nil
}

// historyQuery holds query parameters for the history endpoint.
type historyQuery struct {
	Zip  zipQuery
	From time.Time `validate:"required"`
	To   time.Time `validate:"required,gtefield=From"`
}

func (h *historyQuery) bind(c *fiber.Ctx) error {
	zip, err := parseZipQuery(c)
	if err != nil {
		return err
	}
	h.Zip = zip

	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" || toStr == "" {
		return errors.New("from and to query parameters are required")
	}

	from, err := parseTime(fromStr)
	if err != nil {
		return err
	}
	to, err := parseTime(toStr)
	if err != nil {
		return err
	}

	h.From = from
	h.To = to
	return nil
}

// parseTime tries to parse either RFC3339 or Unix seconds.
func parseTime(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	if unix, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(unix, 0).UTC(), nil
	}
	return time.Time{}, errors.New("invalid time format; use RFC3339 or unix seconds")
}
