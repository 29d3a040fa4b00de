// File: internal/favorite/handler.go
package favorite

import (
	"craftmarket_backend/internal/common"
	"craftmarket_backend/internal/listing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for favorites.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new favorite handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes sets up the routes for favorite operations. All routes
// require authentication; the service enforces ownership.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	favorites := router.Group("/favorites")
	favorites.Use(authMiddleware)
	{
		favorites.GET("", h.listFavorites)
		favorites.POST("/:listingID", h.addFavorite)
		favorites.DELETE("/:listingID", h.removeFavorite)
	}
}

func (h *Handler) listFavorites(c *gin.Context) {
	principal := common.GetPrincipalFromContext(c)
	if principal.UserID == uuid.Nil {
		common.RespondWithError(c, common.ErrUnauthorized)
		return
	}

	page, pageSize := common.GetPaginationParams(c)
	listings, pagination, err := h.service.ListFavorites(c.Request.Context(), principal, principal.UserID, page, pageSize)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	responses := make([]listing.ListingResponse, 0, len(listings))
	for i := range listings {
		responses = append(responses, listing.ToListingResponse(&listings[i]))
	}
	common.RespondPaginated(c, "Favorites retrieved successfully.", responses, pagination)
}

func (h *Handler) addFavorite(c *gin.Context) {
	principal := common.GetPrincipalFromContext(c)
	if principal.UserID == uuid.Nil {
		common.RespondWithError(c, common.ErrUnauthorized)
		return
	}

	listingID, err := uuid.Parse(c.Param("listingID"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid listing ID format."))
		return
	}

	if err := h.service.AddFavorite(c.Request.Context(), principal, principal.UserID, listingID); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Listing added to favorites.", gin.H{"listing_id": listingID})
}

func (h *Handler) removeFavorite(c *gin.Context) {
	principal := common.GetPrincipalFromContext(c)
	if principal.UserID == uuid.Nil {
		common.RespondWithError(c, common.ErrUnauthorized)
		return
	}

	listingID, err := uuid.Parse(c.Param("listingID"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid listing ID format."))
		return
	}

	if err := h.service.RemoveFavorite(c.Request.Context(), principal, principal.UserID, listingID); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondNoContent(c)
}
