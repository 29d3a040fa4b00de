// File: internal/listing/handler.go
package listing

import (
	"errors"

	"craftmarket_backend/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for listing handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new listing handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes sets up the public and seller-facing listing routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	listingGroup := router.Group("/listings")
	{
		listingGroup.GET("", h.searchListings)
		listingGroup.GET("/:id", h.getListingByID)

		authedGroup := listingGroup.Group("")
		authedGroup.Use(authMW)
		{
			authedGroup.POST("", h.createListing)
			authedGroup.DELETE("/:id", h.deleteListing)
		}
	}
}

// RegisterAdminRoutes sets up the moderation routes under the admin group.
func (h *Handler) RegisterAdminRoutes(adminGroup *gin.RouterGroup) {
	adminGroup.GET("/listings", h.adminSearchListings)
	adminGroup.PATCH("/listings/:id/status", h.adminUpdateStatus)
}

func (h *Handler) searchListings(c *gin.Context) {
	var query ListingSearchQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid query parameters: "+err.Error()))
		return
	}
	query.Page, query.PageSize = common.GetPaginationParams(c)

	listings, pagination, err := h.service.SearchListings(c.Request.Context(), query)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	responses := make([]ListingResponse, len(listings))
	for i := range listings {
		responses[i] = ToListingResponse(&listings[i])
	}
	common.RespondPaginated(c, "Listings retrieved successfully.", responses, pagination)
}

func (h *Handler) getListingByID(c *gin.Context) {
	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid listing ID format."))
		return
	}

	l, err := h.service.GetListingByID(c.Request.Context(), listingID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Listing retrieved successfully.", ToListingResponse(l))
}

func (h *Handler) createListing(c *gin.Context) {
	var req CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Create listing: invalid request body", zap.Error(err))
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	l, err := h.service.CreateListing(c.Request.Context(), common.GetPrincipalFromContext(c), req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Listing created successfully.", ToListingResponse(l))
}

func (h *Handler) deleteListing(c *gin.Context) {
	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid listing ID format."))
		return
	}

	if err := h.service.DeleteListing(c.Request.Context(), common.GetPrincipalFromContext(c), listingID); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondNoContent(c)
}

// --- Admin Handlers ---

func (h *Handler) adminSearchListings(c *gin.Context) {
	var query ListingSearchQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid query parameters: "+err.Error()))
		return
	}
	query.Page, query.PageSize = common.GetPaginationParams(c)

	summaries, pagination, err := h.service.AdminSearchListings(c.Request.Context(), common.GetPrincipalFromContext(c), query)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondPaginated(c, "Listings retrieved for moderation.", summaries, pagination)
}

func (h *Handler) adminUpdateStatus(c *gin.Context) {
	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid listing ID format."))
		return
	}

	var req AdminStatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Admin status update: invalid request body", zap.Error(err), zap.String("listingID", listingID.String()))
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	l, err := h.service.AdminSetActive(c.Request.Context(), common.GetPrincipalFromContext(c), listingID, *req.IsActive)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Listing status updated successfully.", ToListingResponse(l))
}
