package controllers

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/leasingsys/leasing-service/internal/dtos"
	"github.com/leasingsys/leasing-service/internal/routes"
	"github.com/leasingsys/leasing-service/internal/services"
	"github.com/leasingsys/leasing-service/internal/utils"
)

var validate = validator.New()

type LeasingController struct {
	svc *services.LeasingService
}

func NewLeasingController(s *services.LeasingService) *LeasingController {
	return &LeasingController{svc: s}
}

// -----------------------------------------------------------------------------
// GET /api/leasingAPI
// -----------------------------------------------------------------------------
func (c *LeasingController) ListLeasings(w http.ResponseWriter, r *http.Request) {
	mt, appErr := utils.NegotiateMediaType(r)
	if appErr != nil {
		utils.HandleAppError(w, appErr)
		return
	}

	list, err := c.svc.List(r.Context())
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	utils.RespondWithMedia(w, mt, http.StatusOK, dtos.NewLeasingListResponse(list))
}

// -----------------------------------------------------------------------------
// GET /api/leasingAPI/{id}
// -----------------------------------------------------------------------------
func (c *LeasingController) GetLeasing(w http.ResponseWriter, r *http.Request) {
	mt, appErr := utils.NegotiateMediaType(r)
	if appErr != nil {
		utils.HandleAppError(w, appErr)
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	l, err := c.svc.Get(r.Context(), id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	utils.RespondWithMedia(w, mt, http.StatusOK, dtos.NewLeasingResponse(l))
}

// -----------------------------------------------------------------------------
// POST /api/leasingAPI
// -----------------------------------------------------------------------------
func (c *LeasingController) CreateLeasing(w http.ResponseWriter, r *http.Request) {
	mt, appErr := utils.NegotiateMediaType(r)
	if appErr != nil {
		utils.HandleAppError(w, appErr)
		return
	}

	req, ok := decodeLeasingRequest(w, r)
	if !ok {
		return
	}

	if err := validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation, "Invalid leasing payload",
			nil, err,
		)
		return
	}

	l, err := c.svc.Create(r.Context(), req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("%s/%d", routes.LeasingCollection, l.ID))
	utils.RespondWithMedia(w, mt, http.StatusCreated, dtos.NewLeasingResponse(l))
}

// -----------------------------------------------------------------------------
// DELETE /api/leasingAPI/{id}
// -----------------------------------------------------------------------------
func (c *LeasingController) DeleteLeasing(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := c.svc.Delete(r.Context(), id); err != nil {
		utils.HandleAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// -----------------------------------------------------------------------------
// PATCH /api/leasingAPI/{id}
// -----------------------------------------------------------------------------
func (c *LeasingController) PatchLeasing(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	switch requestMediaType(r) {
	case "", utils.MediaTypeJSON, utils.MediaTypeJSONPatch:
		// accepted
	default:
		utils.RespondErrorWithCode(
			w, http.StatusUnsupportedMediaType, utils.ErrCodeUnsupportedMediaType,
			"Patch documents must be JSON", nil,
		)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Could not read request body",
			nil, err,
		)
		return
	}

	if err := c.svc.ApplyPatch(r.Context(), id, body); err != nil {
		utils.HandleAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// -----------------------------------------------------------------------------
// shared helpers
// -----------------------------------------------------------------------------

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidID, "Id must be an integer",
			nil, err,
		)
		return 0, false
	}
	return id, true
}

func requestMediaType(r *http.Request) string {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return ct
	}
	return mt
}

// decodeLeasingRequest reads the create body as JSON (default) or XML.
// Anything else is rejected with 415.
func decodeLeasingRequest(w http.ResponseWriter, r *http.Request) (dtos.LeasingRequest, bool) {
	var req dtos.LeasingRequest

	switch requestMediaType(r) {
	case "", utils.MediaTypeJSON:
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondErrorWithCode(
				w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload",
				nil, err,
			)
			return req, false
		}
	case utils.MediaTypeXML, utils.MediaTypeTextXML:
		if err := xml.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondErrorWithCode(
				w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid XML payload",
				nil, err,
			)
			return req, false
		}
	default:
		utils.RespondErrorWithCode(
			w, http.StatusUnsupportedMediaType, utils.ErrCodeUnsupportedMediaType,
			"Unsupported request content type", nil,
		)
		return req, false
	}

	return req, true
}
