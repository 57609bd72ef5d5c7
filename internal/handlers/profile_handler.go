package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"PROFILEHUB_BACK-END/internal/dto"
	"PROFILEHUB_BACK-END/internal/mailcheck"
	"PROFILEHUB_BACK-END/internal/repository"
	"PROFILEHUB_BACK-END/internal/service"
	"PROFILEHUB_BACK-END/internal/utils"
)

// ProfileHandler handles profile CRUD requests
type ProfileHandler struct {
	svc *service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler instance
func NewProfileHandler(svc *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

// List godoc
// @Summary      List profiles
// @Description  Paginated profile list, newest first
// @Tags         profiles
// @Produce      json
// @Param        page   query     int  false  "Page number"    default(1)
// @Param        limit  query     int  false  "Page size"      default(10)
// @Success      200    {object}  dto.ProfileListResponse
// @Failure      500    {object}  dto.ErrorResponse
// @Router       /profiles [get]
func (h *ProfileHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	result, err := h.svc.List(r.Context(), page, limit)
	if err != nil {
		log.Printf("list profiles: %v", err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to fetch profiles", "")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.ProfileListResponse{
		Profiles:    result.Profiles,
		CurrentPage: result.CurrentPage,
		TotalPages:  result.TotalPages,
		Total:       result.Total,
		HasNext:     result.HasNext,
		HasPrev:     result.HasPrev,
	})
}

// GetByID godoc
// @Summary      Get profile by id
// @Tags         profiles
// @Produce      json
// @Param        id   path      int  true  "Profile ID"
// @Success      200  {object}  models.Profile
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /profiles/{id} [get]
func (h *ProfileHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := profileID(w, r)
	if !ok {
		return
	}

	profile, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err, "Failed to fetch profile")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, profile)
}

// GetRecent godoc
// @Summary      Get the most recently created profile
// @Description  Returns null when no profiles exist
// @Tags         profiles
// @Produce      json
// @Success      200  {object}  models.Profile
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /profiles/recent [get]
func (h *ProfileHandler) GetRecent(w http.ResponseWriter, r *http.Request) {
	profile, err := h.svc.Recent(r.Context())
	if err != nil {
		log.Printf("recent profile: %v", err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to fetch recent profile", "")
		return
	}
	if profile == nil {
		// Matches the API contract: an empty table is 200 with a null body.
		utils.WriteJSONResponse(w, http.StatusOK, nil)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, profile)
}

// Create godoc
// @Summary      Create a profile
// @Description  Validates all fields, verifies email deliverability, then persists
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Param        payload  body      dto.ProfileRequest  true  "Profile payload"
// @Success      201      {object}  dto.ProfileMutationResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      500      {object}  dto.ErrorResponse
// @Router       /profiles [post]
func (h *ProfileHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.ProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	profile, err := h.svc.Create(r.Context(), &req)
	if err != nil {
		h.writeServiceError(w, err, "Failed to save profile")
		return
	}

	utils.WriteJSONResponse(w, http.StatusCreated, dto.ProfileMutationResponse{
		Message: "Profile created successfully",
		Data:    *profile,
	})
}

// Update godoc
// @Summary      Update a profile
// @Description  Full replace of all mutable fields; same validation as create
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Param        id       path      int                 true  "Profile ID"
// @Param        payload  body      dto.ProfileRequest  true  "Profile payload"
// @Success      200      {object}  dto.ProfileMutationResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Failure      500      {object}  dto.ErrorResponse
// @Router       /profiles/{id} [put]
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := profileID(w, r)
	if !ok {
		return
	}

	var req dto.ProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	profile, err := h.svc.Update(r.Context(), id, &req)
	if err != nil {
		h.writeServiceError(w, err, "Failed to update profile")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.ProfileMutationResponse{
		Message: fmt.Sprintf("Profile updated successfully for ID %d", id),
		Data:    *profile,
	})
}

// Delete godoc
// @Summary      Delete a profile
// @Description  Hard delete; returns the removed row
// @Tags         profiles
// @Produce      json
// @Param        id   path      int  true  "Profile ID"
// @Success      200  {object}  dto.ProfileMutationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /profiles/{id} [delete]
func (h *ProfileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := profileID(w, r)
	if !ok {
		return
	}

	profile, err := h.svc.Delete(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err, "Failed to delete profile")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.ProfileMutationResponse{
		Message: fmt.Sprintf("Profile deleted successfully for ID %d", id),
		Data:    *profile,
	})
}

// profileID parses the {id} path segment; writes a 400 and returns false when
// it is not a positive integer.
func profileID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid profile ID", "")
		return 0, false
	}
	return id, true
}

// writeServiceError maps the error taxonomy onto HTTP statuses. Validation
// problems are client-correctable 400s; verification outages are 500s with a
// try-again message; everything else is a generic 500.
func (h *ProfileHandler) writeServiceError(w http.ResponseWriter, err error, fallback string) {
	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr):
		utils.WriteErrorResponse(w, http.StatusBadRequest, vErr.Message, "")
	case errors.Is(err, repository.ErrDuplicateEmail):
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Email already exists", "")
	case errors.Is(err, repository.ErrNotFound):
		utils.WriteErrorResponse(w, http.StatusNotFound, "Profile not found", "")
	case errors.Is(err, mailcheck.ErrNotConfigured):
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Email validation service not configured", "")
	case errors.Is(err, mailcheck.ErrServiceUnavailable):
		log.Printf("email verification unavailable: %v", err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError,
			"Email validation service is currently unavailable. Please try again later.", err.Error())
	default:
		log.Printf("profile request failed: %v", err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, fallback, "")
	}
}
