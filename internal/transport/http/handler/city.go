package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/askarovb/auth-service/internal/domain"
	"github.com/askarovb/auth-service/internal/usecase"
	"github.com/gin-gonic/gin"
)

type cityUsecaser interface {
	CreateCity(ctx context.Context, input usecase.CityInput) (*domain.City, error)
	ListCities(ctx context.Context) ([]*domain.City, error)
	GetCity(ctx context.Context, id string) (*domain.City, error)
	UpdateCity(ctx context.Context, id string, input usecase.CityInput) (*domain.City, error)
	DeleteCity(ctx context.Context, id string) error
}

type CityHandler struct {
	cityUsecase cityUsecaser
	logger      *slog.Logger
}

func NewCityHandler(cityUsecase cityUsecaser, logger *slog.Logger) *CityHandler {
	return &CityHandler{cityUsecase: cityUsecase, logger: logger.With("component", "city_handler")}
}

type cityRequest struct {
	Name       string `json:"name"       binding:"required,max=256"`
	Population int64  `json:"population" binding:"min=0"`
}

type cityResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Population int64  `json:"population"`
}

func toCityResponse(c *domain.City) cityResponse {
	return cityResponse{ID: c.ID, Name: c.Name, Population: c.Population}
}

func (h *CityHandler) Create(ctx *gin.Context) {
	var req cityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	city, err := h.cityUsecase.CreateCity(ctx.Request.Context(), usecase.CityInput{
		Name:       req.Name,
		Population: req.Population,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("create city", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	ctx.JSON(http.StatusCreated, toCityResponse(city))
}

func (h *CityHandler) List(ctx *gin.Context) {
	cities, err := h.cityUsecase.ListCities(ctx.Request.Context())
	if err != nil {
		h.logger.Error("list cities", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	items := make([]cityResponse, len(cities))
	for i, c := range cities {
		items[i] = toCityResponse(c)
	}
	ctx.JSON(http.StatusOK, gin.H{"cities": items})
}

func (h *CityHandler) GetByID(ctx *gin.Context) {
	id := ctx.Param("id")

	city, err := h.cityUsecase.GetCity(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrCityNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": errCityNotFound})
			return
		}
		h.logger.Error("get city", "city_id", id, "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	ctx.JSON(http.StatusOK, toCityResponse(city))
}

func (h *CityHandler) Update(ctx *gin.Context) {
	id := ctx.Param("id")

	var req cityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	city, err := h.cityUsecase.UpdateCity(ctx.Request.Context(), id, usecase.CityInput{
		Name:       req.Name,
		Population: req.Population,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCityNotFound):
			ctx.JSON(http.StatusNotFound, gin.H{"error": errCityNotFound})
		case errors.Is(err, domain.ErrInvalidInput):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.logger.Error("update city", "city_id", id, "error", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		}
		return
	}

	ctx.JSON(http.StatusOK, toCityResponse(city))
}

func (h *CityHandler) Delete(ctx *gin.Context) {
	id := ctx.Param("id")

	if err := h.cityUsecase.DeleteCity(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, domain.ErrCityNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": errCityNotFound})
			return
		}
		h.logger.Error("delete city", "city_id", id, "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	ctx.Status(http.StatusNoContent)
}
