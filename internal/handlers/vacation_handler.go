package handlers

import (
	"errors"
	"math"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/vacatio/backend/internal/live"
	"github.com/vacatio/backend/internal/models"
	"github.com/vacatio/backend/internal/repositories"
	"github.com/vacatio/backend/internal/storage"
	"gorm.io/gorm"
)

// VacationHandler handles vacation CRUD and listing HTTP requests
type VacationHandler struct {
	vacationRepository repositories.VacationRepository
	imageStore         *storage.ImageStore
	hub                *live.Hub
	reports            *ReportHandler
}

// NewVacationHandler creates a new VacationHandler
func NewVacationHandler(vacationRepo repositories.VacationRepository, imageStore *storage.ImageStore, hub *live.Hub, reports *ReportHandler) *VacationHandler {
	return &VacationHandler{
		vacationRepository: vacationRepo,
		imageStore:         imageStore,
		hub:                hub,
		reports:            reports,
	}
}

// RegisterVacationRoutes registers read routes on the authenticated group
// and mutation routes on the admin group
func (h *VacationHandler) RegisterVacationRoutes(g, admin *echo.Group) {
	g.GET("", h.ListVacations)
	g.GET("/:id", h.GetVacation)
	admin.POST("", h.CreateVacation)
	admin.PUT("/:id", h.UpdateVacation)
	admin.DELETE("/:id", h.DeleteVacation)
}

// ListVacations returns one page of vacations with derived fields
func (h *VacationHandler) ListVacations(c echo.Context) error {
	claims := getClaimsFromContext(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "No token provided")
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	filter := repositories.ListFilter{
		Page:       page,
		Following:  c.QueryParam("following") == "true",
		NotStarted: c.QueryParam("notStarted") == "true",
		Active:     c.QueryParam("active") == "true",
	}

	today := time.Now().Format(models.DateLayout)
	vacations, total, err := h.vacationRepository.ListVacations(claims.UserID, today, filter)
	if err != nil {
		logrus.WithError(err).Error("Failed to list vacations")
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error fetching vacations")
	}
	if vacations == nil {
		vacations = []models.VacationView{}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"vacations":  vacations,
		"total":      total,
		"page":       page,
		"totalPages": int(math.Ceil(float64(total) / float64(repositories.PageSize))),
	})
}

// GetVacation returns a single vacation with derived fields
func (h *VacationHandler) GetVacation(c echo.Context) error {
	claims := getClaimsFromContext(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "No token provided")
	}

	vacation, err := h.vacationRepository.GetVacationByID(c.Param("id"), claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Vacation not found")
		}
		logrus.WithError(err).Error("Failed to fetch vacation")
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error fetching vacation")
	}

	return c.JSON(http.StatusOK, vacation)
}

// CreateVacation creates a vacation from a multipart form with an optional
// image part. The image is written before the record so a storage failure
// never leaves a half-created vacation.
func (h *VacationHandler) CreateVacation(c echo.Context) error {
	req, err := h.bindVacationRequest(c)
	if err != nil {
		return err
	}

	today := time.Now().Format(models.DateLayout)
	if req.StartDate < today {
		return echo.NewHTTPError(http.StatusBadRequest, "Start date cannot be in the past")
	}

	imageFileName, err := h.saveImageIfPresent(c)
	if err != nil {
		return err
	}

	vacation := &models.Vacation{
		Destination:   req.Destination,
		Description:   req.Description,
		StartDate:     models.DateOnly(req.StartDate),
		EndDate:       models.DateOnly(req.EndDate),
		Price:         req.Price,
		ImageFileName: imageFileName,
	}

	if err := h.vacationRepository.CreateVacation(vacation); err != nil {
		h.imageStore.Remove(imageFileName)
		logrus.WithError(err).Error("Failed to create vacation")
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error creating vacation")
	}

	h.reports.Invalidate(c.Request().Context())
	h.hub.Publish(vacation.ID, live.ActionCreate)

	return c.JSON(http.StatusCreated, vacation)
}

// UpdateVacation replaces all fields of an existing vacation. A new image
// replaces and deletes the previous file; with no image part the existing
// reference is retained.
func (h *VacationHandler) UpdateVacation(c echo.Context) error {
	vacation, err := h.vacationRepository.GetRawVacation(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Vacation not found")
		}
		logrus.WithError(err).Error("Failed to fetch vacation")
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error updating vacation")
	}

	req, err := h.bindVacationRequest(c)
	if err != nil {
		return err
	}

	newImage, err := h.saveImageIfPresent(c)
	if err != nil {
		return err
	}
	previousImage := vacation.ImageFileName
	if newImage != "" {
		vacation.ImageFileName = newImage
	}

	vacation.Destination = req.Destination
	vacation.Description = req.Description
	vacation.StartDate = models.DateOnly(req.StartDate)
	vacation.EndDate = models.DateOnly(req.EndDate)
	vacation.Price = req.Price

	if err := h.vacationRepository.UpdateVacation(vacation); err != nil {
		h.imageStore.Remove(newImage)
		logrus.WithError(err).Error("Failed to update vacation")
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error updating vacation")
	}
	if newImage != "" && previousImage != "" {
		h.imageStore.Remove(previousImage)
	}

	h.reports.Invalidate(c.Request().Context())
	h.hub.Publish(vacation.ID, live.ActionUpdate)

	return c.JSON(http.StatusOK, vacation)
}

// DeleteVacation removes a vacation together with its image file
func (h *VacationHandler) DeleteVacation(c echo.Context) error {
	vacation, err := h.vacationRepository.GetRawVacation(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Vacation not found")
		}
		logrus.WithError(err).Error("Failed to fetch vacation")
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error deleting vacation")
	}

	if err := h.vacationRepository.DeleteVacation(vacation.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Vacation not found")
		}
		logrus.WithError(err).Error("Failed to delete vacation")
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error deleting vacation")
	}

	h.imageStore.Remove(vacation.ImageFileName)
	h.reports.Invalidate(c.Request().Context())
	h.hub.Publish(vacation.ID, live.ActionDelete)

	return c.JSON(http.StatusOK, echo.Map{"message": "Vacation deleted successfully"})
}

// bindVacationRequest binds and validates the multipart form fields shared
// by create and update
func (h *VacationHandler) bindVacationRequest(c echo.Context) (*models.VacationRequest, error) {
	var req models.VacationRequest
	if err := c.Bind(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return nil, err
	}
	if req.EndDate <= req.StartDate {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "End date must be after start date")
	}
	return &req, nil
}

// saveImageIfPresent stores the optional "image" form part, translating
// validation failures to 400 before anything hits disk
func (h *VacationHandler) saveImageIfPresent(c echo.Context) (string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return "", nil
		}
		return "", echo.NewHTTPError(http.StatusBadRequest, "Invalid image upload")
	}
	return h.storeImage(file)
}

func (h *VacationHandler) storeImage(file *multipart.FileHeader) (string, error) {
	name, err := h.imageStore.Save(file)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrInvalidType):
			return "", echo.NewHTTPError(http.StatusBadRequest, "Invalid file type. Only JPEG, PNG, and WEBP images are allowed")
		case errors.Is(err, storage.ErrTooLarge):
			return "", echo.NewHTTPError(http.StatusBadRequest, "File size too large. Maximum size is 20MB")
		default:
			logrus.WithError(err).Error("Failed to store image")
			return "", echo.NewHTTPError(http.StatusInternalServerError, "Server error storing image")
		}
	}
	return name, nil
}
