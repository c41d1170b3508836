package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/overdrive-dev/garage16-visit-scheduler/internal/config"
	"github.com/overdrive-dev/garage16-visit-scheduler/internal/core/domain"
	"github.com/overdrive-dev/garage16-visit-scheduler/internal/core/ports/in"
)

type ListingController struct {
	useCase in.ListingUseCase
	cfg     *config.Config
}

func NewListingController(useCase in.ListingUseCase, cfg *config.Config) *ListingController {
	return &ListingController{
		useCase: useCase,
		cfg:     cfg,
	}
}

func (c *ListingController) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1")
	api.Use(basicAuth(c.cfg))
	{
		api.POST("/listings", c.createListing)
		api.GET("/listings/:id", c.getListing)
		api.GET("/sellers/:sellerId/listings", c.sellerListings)
		api.PUT("/listings/:id", c.updateListing)
		api.POST("/listings/:id/status", c.changeStatus)
	}
}

type ListingRequest struct {
	SellerID   string `json:"sellerId" binding:"required"`
	Title      string `json:"title" binding:"required"`
	Brand      string `json:"brand" binding:"required"`
	Model      string `json:"model" binding:"required"`
	Year       int    `json:"year" binding:"required,gte=1900"`
	PriceCents int64  `json:"priceCents" binding:"required,gt=0"`
}

type ChangeListingStatusRequest struct {
	Status domain.ListingStatus `json:"status" binding:"required,oneof=draft published paused sold"`
}

func (c *ListingController) createListing(ctx *gin.Context) {
	var req ListingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	listing, err := c.useCase.CreateListing(ctx.Request.Context(), &domain.VehicleListing{
		SellerID:   req.SellerID,
		Title:      req.Title,
		Brand:      req.Brand,
		Model:      req.Model,
		Year:       req.Year,
		PriceCents: req.PriceCents,
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, listing)
}

func (c *ListingController) getListing(ctx *gin.Context) {
	listingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid listing ID format"})
		return
	}

	listing, err := c.useCase.GetListing(ctx.Request.Context(), listingID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, listing)
}

func (c *ListingController) sellerListings(ctx *gin.Context) {
	listings, err := c.useCase.SellerListings(ctx.Request.Context(), ctx.Param("sellerId"))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"listings": listings})
}

func (c *ListingController) updateListing(ctx *gin.Context) {
	listingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid listing ID format"})
		return
	}

	var req ListingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	listing, err := c.useCase.UpdateListing(ctx.Request.Context(), &domain.VehicleListing{
		ID:         listingID,
		SellerID:   req.SellerID,
		Title:      req.Title,
		Brand:      req.Brand,
		Model:      req.Model,
		Year:       req.Year,
		PriceCents: req.PriceCents,
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, listing)
}

func (c *ListingController) changeStatus(ctx *gin.Context) {
	listingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid listing ID format"})
		return
	}

	var req ChangeListingStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	listing, err := c.useCase.ChangeListingStatus(ctx.Request.Context(), listingID, req.Status)
	if err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, listing)
}
