package listing

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ulavalmarket/marketplace-api/internal/auth"
	"github.com/ulavalmarket/marketplace-api/internal/httputil"
	"github.com/ulavalmarket/marketplace-api/internal/logging"
	"github.com/ulavalmarket/marketplace-api/internal/user"
)

// CreationRequest is the listing creation request body. The seller is
// the authenticated caller.
type CreationRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	Condition   string   `json:"condition"`
	Location    string   `json:"location"`
	CourseCode  string   `json:"course_code"`
	Images      []string `json:"images"`
}

// HealthResponse is the module health payload.
type HealthResponse struct {
	Status        string `json:"status"`
	Module        string `json:"module"`
	ListingsCount int    `json:"listings_count"`
}

// Handler contains the HTTP handlers for the /listings endpoints.
type Handler struct {
	service *Service
	users   user.Repository
}

func NewHandler(service *Service, users user.Repository) *Handler {
	return &Handler{service: service, users: users}
}

// callerID resolves the authenticated caller's storage user id from the
// email claim set by the auth middleware. The display integer id in the
// token is lossy and never used for ownership.
func (h *Handler) callerID(w http.ResponseWriter, r *http.Request, logger *logging.Logger) (string, bool) {
	email, ok := auth.UserEmailFromContext(r.Context())
	if !ok || email == "" {
		httputil.RespondError(w, httputil.CodeTokenInvalid, "authenticated user missing from request", http.StatusUnauthorized)
		return "", false
	}

	u, err := h.users.FindByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			httputil.RespondError(w, httputil.CodeUserNotFound, "authenticated user no longer exists", http.StatusUnauthorized)
			return "", false
		}
		logger.Error("failed to resolve caller", "error", err.Error())
		httputil.RespondDomainError(w, err)
		return "", false
	}

	return u.UserID, true
}

// Create handles listing creation
// @Summary      Create a listing
// @Tags         listings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreationRequest true "Listing data"
// @Success      201 {object} Response
// @Failure      400 {object} httputil.ErrorResponse "Invalid request or validation error"
// @Failure      401 {object} httputil.ErrorResponse "Missing or invalid token"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /listings [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req CreationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid listing creation body", "error", err.Error())
		httputil.RespondError(w, httputil.CodeInvalidRequest, "request body must be valid JSON", http.StatusBadRequest)
		return
	}

	if err := ValidateCreation(req); err != nil {
		logger.Warn("listing validation failed", "error", err.Error())
		httputil.RespondError(w, httputil.CodeValidationError, err.Error(), http.StatusBadRequest)
		return
	}

	sellerID, ok := h.callerID(w, r, logger)
	if !ok {
		return
	}

	resp, err := h.service.Create(r.Context(), CreationInput{
		SellerID:    sellerID,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Condition:   req.Condition,
		Location:    req.Location,
		CourseCode:  req.CourseCode,
		Images:      req.Images,
	})
	if err != nil {
		logger.Warn("listing creation failed", "error", err.Error())
		httputil.RespondDomainError(w, err)
		return
	}

	logger.Info("listing created", "listing_id", resp.ListingID, "seller_id", sellerID)
	httputil.RespondJSON(w, resp, http.StatusCreated)
}

// GetAll returns listings, optionally filtered
// @Summary      List listings
// @Description  Without parameters returns every listing, newest first. At most one filter applies; q wins over category, category over seller_id.
// @Tags         listings
// @Produce      json
// @Param        q         query string false "Text search on title and description"
// @Param        category  query string false "Filter by category"
// @Param        seller_id query string false "Filter by seller"
// @Success      200 {array} Response
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /listings [get]
func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var (
		listings []*Response
		err      error
	)
	params := r.URL.Query()
	switch {
	case params.Get("q") != "":
		listings, err = h.service.Search(r.Context(), params.Get("q"))
	case params.Get("category") != "":
		listings, err = h.service.GetByCategory(r.Context(), params.Get("category"))
	case params.Get("seller_id") != "":
		listings, err = h.service.GetBySeller(r.Context(), params.Get("seller_id"))
	default:
		listings, err = h.service.GetAll(r.Context())
	}
	if err != nil {
		logger.Error("failed to list listings", "error", err.Error())
		httputil.RespondDomainError(w, err)
		return
	}

	httputil.RespondJSON(w, listings, http.StatusOK)
}

// GetByID returns one listing
// @Summary      Get a listing
// @Tags         listings
// @Produce      json
// @Param        id path string true "Listing ID"
// @Success      200 {object} Response
// @Failure      404 {object} httputil.ErrorResponse "Listing not found"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /listings/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())
	listingID := chi.URLParam(r, "id")

	resp, err := h.service.GetByID(r.Context(), listingID)
	if err != nil {
		if errors.Is(err, ErrListingNotFound) {
			httputil.RespondError(w, httputil.CodeListingNotFound,
				fmt.Sprintf("no listing found with id %s", listingID), http.StatusNotFound)
			return
		}
		logger.Error("failed to get listing", "error", err.Error())
		httputil.RespondDomainError(w, err)
		return
	}

	httputil.RespondJSON(w, resp, http.StatusOK)
}

// Delete removes a listing
// @Summary      Delete a listing
// @Tags         listings
// @Security     BearerAuth
// @Param        id path string true "Listing ID"
// @Success      204 "No content"
// @Failure      401 {object} httputil.ErrorResponse "Missing or invalid token"
// @Failure      403 {object} httputil.ErrorResponse "Caller is not the seller"
// @Failure      404 {object} httputil.ErrorResponse "Listing not found"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /listings/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())
	listingID := chi.URLParam(r, "id")

	userID, ok := h.callerID(w, r, logger)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), listingID, userID); err != nil {
		if errors.Is(err, ErrListingNotFound) {
			httputil.RespondError(w, httputil.CodeListingNotFound,
				fmt.Sprintf("no listing found with id %s", listingID), http.StatusNotFound)
			return
		}
		logger.Warn("listing deletion failed", "listing_id", listingID, "error", err.Error())
		httputil.RespondDomainError(w, err)
		return
	}

	logger.Info("listing deleted", "listing_id", listingID)
	httputil.RespondNoContent(w)
}

// Health reports module status
// @Summary      Listings module health
// @Tags         health
// @Produce      json
// @Success      200 {object} HealthResponse
// @Router       /listings/health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.repo.Count(r.Context())
	if err != nil {
		count = 0
	}

	httputil.RespondJSON(w, HealthResponse{
		Status:        "healthy",
		Module:        "listings",
		ListingsCount: count,
	}, http.StatusOK)
}
