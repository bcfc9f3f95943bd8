package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/vacatio/backend/internal/live"
	"github.com/vacatio/backend/internal/repositories"
	"gorm.io/gorm"
)

// FollowHandler handles follow/unfollow HTTP requests
type FollowHandler struct {
	followerRepository repositories.FollowerRepository
	vacationRepository repositories.VacationRepository
	hub                *live.Hub
	reports            *ReportHandler
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followerRepo repositories.FollowerRepository, vacationRepo repositories.VacationRepository, hub *live.Hub, reports *ReportHandler) *FollowHandler {
	return &FollowHandler{
		followerRepository: followerRepo,
		vacationRepository: vacationRepo,
		hub:                hub,
		reports:            reports,
	}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/:id/follow", h.FollowVacation)
	g.DELETE("/:id/follow", h.UnfollowVacation)
}

// FollowVacation creates a follow edge for the calling user
func (h *FollowHandler) FollowVacation(c echo.Context) error {
	claims := getClaimsFromContext(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "No token provided")
	}
	vacationID := c.Param("id")

	if _, err := h.vacationRepository.GetRawVacation(vacationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Vacation not found")
		}
		logrus.WithError(err).Error("Failed to fetch vacation")
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error following vacation")
	}

	isFollowing, err := h.followerRepository.IsFollowing(claims.UserID, vacationID)
	if err != nil {
		logrus.WithError(err).Error("Failed to check follow state")
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error following vacation")
	}
	if isFollowing {
		return echo.NewHTTPError(http.StatusConflict, "Already following this vacation")
	}

	if err := h.followerRepository.CreateFollower(claims.UserID, vacationID); err != nil {
		// A racing duplicate loses on the primary key
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return echo.NewHTTPError(http.StatusConflict, "Already following this vacation")
		}
		logrus.WithError(err).Error("Failed to create follow edge")
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error following vacation")
	}

	h.reports.Invalidate(c.Request().Context())
	h.hub.Publish(vacationID, live.ActionFollow)

	return c.JSON(http.StatusCreated, echo.Map{"message": "Vacation followed successfully"})
}

// UnfollowVacation removes the calling user's follow edge
func (h *FollowHandler) UnfollowVacation(c echo.Context) error {
	claims := getClaimsFromContext(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "No token provided")
	}
	vacationID := c.Param("id")

	if err := h.followerRepository.DeleteFollower(claims.UserID, vacationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Not following this vacation")
		}
		logrus.WithError(err).Error("Failed to delete follow edge")
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error unfollowing vacation")
	}

	h.reports.Invalidate(c.Request().Context())
	h.hub.Publish(vacationID, live.ActionUnfollow)

	return c.JSON(http.StatusOK, echo.Map{"message": "Vacation unfollowed successfully"})
}
