// Package server exposes the project over a small JSON API for the
// settings GUI and scripted clients. It consumes the core's return values
// as opaque JSON-serializable objects.
package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/fathomdata/larder/pkg/larder"
	"github.com/fathomdata/larder/pkg/types"
)

// New builds the echo instance with all routes registered. The caller owns
// starting and shutting it down.
func New(project *larder.Project) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	e.GET("/api/health", healthHandler())
	e.GET("/api/config", configHandler(project))
	e.GET("/api/catalog", catalogHandler(project))
	e.GET("/api/data", dataRecordsHandler(project))
	e.GET("/api/data/load", loadHandler(project))
	e.GET("/api/data/verify", verifyHandler(project))
	e.GET("/api/cache", cacheRecordsHandler(project))
	e.DELETE("/api/cache/:name", cachePurgeHandler(project))

	return e
}

func healthHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "version": larder.Version})
	}
}

// configHandler returns the project settings with key material redacted:
// only the env var name leaves the process, never its value.
func configHandler(project *larder.Project) echo.HandlerFunc {
	return func(c echo.Context) error {
		cfg := project.Config()
		return c.JSON(http.StatusOK, map[string]any{
			"project_root":    cfg.ProjectRoot,
			"store":           cfg.StorePath,
			"cache_dir":       cfg.CacheDir,
			"cache_ttl_hours": cfg.CacheTTLHours,
			"key_env":         cfg.Key(),
		})
	}
}

func catalogHandler(project *larder.Project) echo.HandlerFunc {
	return func(c echo.Context) error {
		entries, err := project.Entries()
		if err != nil {
			return statusFor(err)
		}
		return c.JSON(http.StatusOK, entries)
	}
}

func dataRecordsHandler(project *larder.Project) echo.HandlerFunc {
	return func(c echo.Context) error {
		records, err := project.DataRecords()
		if err != nil {
			return statusFor(err)
		}
		return c.JSON(http.StatusOK, records)
	}
}

// loadHandler loads a catalog entry and serializes the parsed value. The
// cached variant goes through the load-or-cache composite.
func loadHandler(project *larder.Project) echo.HandlerFunc {
	return func(c echo.Context) error {
		name := c.QueryParam("name")
		if name == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "name query parameter required")
		}

		var (
			value any
			err   error
		)
		if c.QueryParam("cached") == "true" {
			value, err = project.LoadCached(name)
		} else {
			value, err = project.Load(name)
		}
		if err != nil {
			return statusFor(err)
		}
		return c.JSON(http.StatusOK, map[string]any{"name": name, "value": value})
	}
}

func verifyHandler(project *larder.Project) echo.HandlerFunc {
	return func(c echo.Context) error {
		if name := c.QueryParam("name"); name != "" {
			res, err := project.Verify(name)
			if err != nil {
				return statusFor(err)
			}
			return c.JSON(http.StatusOK, res)
		}
		results, err := project.VerifyAll()
		if err != nil {
			return statusFor(err)
		}
		return c.JSON(http.StatusOK, results)
	}
}

func cacheRecordsHandler(project *larder.Project) echo.HandlerFunc {
	return func(c echo.Context) error {
		records, err := project.CacheRecords()
		if err != nil {
			return statusFor(err)
		}
		return c.JSON(http.StatusOK, records)
	}
}

func cachePurgeHandler(project *larder.Project) echo.HandlerFunc {
	return func(c echo.Context) error {
		name := c.Param("name")
		if err := project.CacheInvalidate(name); err != nil {
			return statusFor(err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

// statusFor maps core errors onto HTTP statuses.
func statusFor(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, types.ErrEntryNotFound), errors.Is(err, types.ErrFileNotFound), errors.Is(err, types.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, types.ErrIntegrityViolation):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, types.ErrUnsupportedFormat), errors.Is(err, types.ErrInvalidName), errors.Is(err, types.ErrInvalidDelimiter):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, types.ErrMissingEncryptionKey):
		return echo.NewHTTPError(http.StatusPreconditionFailed, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
