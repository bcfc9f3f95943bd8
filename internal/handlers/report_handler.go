package handlers

import (
	"context"
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/vacatio/backend/internal/models"
	"github.com/vacatio/backend/internal/repositories"
	"github.com/vacatio/backend/pkg/cache"
)

const (
	reportCacheKey = "vacations:report"
	reportCacheTTL = 5 * time.Minute
)

// ReportHandler serves the follower report, as JSON and as a CSV download.
// The report projection is cached in Redis when available; every vacation
// and follow mutation invalidates it so counts always reflect the live
// edge set.
type ReportHandler struct {
	vacationRepository repositories.VacationRepository
	cache              *cache.Cache
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(vacationRepo repositories.VacationRepository, cch *cache.Cache) *ReportHandler {
	return &ReportHandler{
		vacationRepository: vacationRepo,
		cache:              cch,
	}
}

// RegisterReportRoutes registers report routes on the admin group
func (h *ReportHandler) RegisterReportRoutes(admin *echo.Group) {
	admin.GET("/report", h.GetReport)
	admin.GET("/csv", h.DownloadCSV)
}

// Invalidate drops the cached report. Called after every mutation that can
// change a follower count or the vacation set.
func (h *ReportHandler) Invalidate(ctx context.Context) {
	if err := h.cache.Delete(ctx, reportCacheKey); err != nil {
		logrus.WithError(err).Warn("Failed to invalidate report cache")
	}
}

func (h *ReportHandler) report(ctx context.Context) ([]models.ReportRow, error) {
	var rows []models.ReportRow
	if hit, err := h.cache.Get(ctx, reportCacheKey, &rows); err == nil && hit {
		return rows, nil
	}

	rows, err := h.vacationRepository.Report()
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []models.ReportRow{}
	}
	if err := h.cache.Set(ctx, reportCacheKey, rows, reportCacheTTL); err != nil {
		logrus.WithError(err).Warn("Failed to cache report")
	}
	return rows, nil
}

// GetReport returns follower counts per vacation, ordered by destination
func (h *ReportHandler) GetReport(c echo.Context) error {
	rows, err := h.report(c.Request().Context())
	if err != nil {
		logrus.WithError(err).Error("Failed to build report")
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error generating report")
	}
	return c.JSON(http.StatusOK, rows)
}

// DownloadCSV returns the report as a CSV attachment
func (h *ReportHandler) DownloadCSV(c echo.Context) error {
	rows, err := h.report(c.Request().Context())
	if err != nil {
		logrus.WithError(err).Error("Failed to build report")
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error downloading CSV")
	}

	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename=vacation-followers.csv`)
	c.Response().WriteHeader(http.StatusOK)

	w := csv.NewWriter(c.Response())
	if err := w.Write([]string{"Destination", "Followers"}); err != nil {
		return err
	}
	for _, row := range rows {
		if err := w.Write([]string{row.Destination, strconv.FormatInt(row.FollowersCount, 10)}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
