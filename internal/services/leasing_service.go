package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/go-playground/validator/v10"

	"github.com/leasingsys/leasing-service/internal/dtos"
	"github.com/leasingsys/leasing-service/internal/models"
	"github.com/leasingsys/leasing-service/internal/repositories"
	"github.com/leasingsys/leasing-service/internal/utils"
)

var validate = validator.New()

// LeasingService is the validation layer plus the patch resolver. Every
// client-facing failure is returned as a *utils.AppError so controllers can
// map it to a status code without inspecting internals.
type LeasingService struct {
	repo repositories.LeasingRepository
}

func NewLeasingService(repo repositories.LeasingRepository) *LeasingService {
	return &LeasingService{repo: repo}
}

// leasingSnapshot is the disposable staging copy of a record's mutable
// fields. Its json tags are the patch paths clients address; id and the
// timestamps are deliberately absent so no patch operation can reach them.
type leasingSnapshot struct {
	Name          string  `json:"name" validate:"required"`
	Details       string  `json:"details"`
	ImageURL      string  `json:"imageUrl"`
	Amenity       string  `json:"amenity"`
	Occupancy     int     `json:"occupancy"`
	SquareFootage int     `json:"squareFootage"`
	Rate          float64 `json:"rate"`
}

func snapshotOf(l *models.Leasing) leasingSnapshot {
	return leasingSnapshot{
		Name:          l.Name,
		Details:       l.Details,
		ImageURL:      l.ImageURL,
		Amenity:       l.Amenity,
		Occupancy:     l.Occupancy,
		SquareFootage: l.SquareFootage,
		Rate:          l.Rate,
	}
}

func (s leasingSnapshot) changeSet() models.LeasingChangeSet {
	return models.LeasingChangeSet{
		Name:          &s.Name,
		Details:       &s.Details,
		ImageURL:      &s.ImageURL,
		Amenity:       &s.Amenity,
		Occupancy:     &s.Occupancy,
		SquareFootage: &s.SquareFootage,
		Rate:          &s.Rate,
	}
}

/* ---------- reads ---------- */

func (s *LeasingService) List(ctx context.Context) ([]*models.Leasing, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, internalErr("Could not list leasings", err)
	}
	return list, nil
}

func (s *LeasingService) Get(ctx context.Context, id int64) (*models.Leasing, error) {
	if id <= 0 {
		return nil, invalidIDErr()
	}
	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internalErr("Could not load leasing", err)
	}
	if l == nil {
		return nil, notFoundErr()
	}
	return l, nil
}

/* ---------- create ---------- */

// Create enforces the identifier policy and name uniqueness before any
// store mutation.
func (s *LeasingService) Create(ctx context.Context, req dtos.LeasingRequest) (*models.Leasing, error) {
	if req.ID != 0 {
		return nil, &utils.AppError{
			StatusCode: http.StatusBadRequest,
			Code:       utils.ErrCodeInvalidID,
			Message:    "Id must not be set on create",
			Err:        utils.ErrInvalidID,
		}
	}

	existing, err := s.repo.FindByName(ctx, req.Name)
	if err != nil {
		return nil, internalErr("Could not check name uniqueness", err)
	}
	if existing != nil {
		return nil, &utils.AppError{
			StatusCode: http.StatusBadRequest,
			Code:       utils.ErrCodeValidation,
			Message:    "Name already exists",
			Details: []dtos.ValidationErrorDetail{{
				Field:   "name",
				Message: "Name already exists",
				Code:    "NameIsUnique",
			}},
			Err: utils.ErrNameExists,
		}
	}

	l := &models.Leasing{
		Name:          req.Name,
		Details:       req.Details,
		ImageURL:      req.ImageURL,
		Amenity:       req.Amenity,
		Occupancy:     req.Occupancy,
		SquareFootage: req.SquareFootage,
		Rate:          req.Rate,
	}
	if err := s.repo.Create(ctx, l); err != nil {
		return nil, internalErr("Could not create leasing", err)
	}
	return l, nil
}

/* ---------- delete ---------- */

func (s *LeasingService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return invalidIDErr()
	}
	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return internalErr("Could not load leasing", err)
	}
	if l == nil {
		return notFoundErr()
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, utils.ErrNoRowsDeleted) {
			return notFoundErr()
		}
		return internalErr("Could not delete leasing", err)
	}
	return nil
}

/* ---------- patch resolver ---------- */

// ApplyPatch applies an RFC 6902 document to the record with the given id.
// The operations run against a snapshot of the record's mutable fields; the
// snapshot is validated, and only then is the result committed. Either every
// operation applies and the result is valid, or no field of the canonical
// record changes.
func (s *LeasingService) ApplyPatch(ctx context.Context, id int64, patchBody []byte) error {
	if id <= 0 {
		return invalidIDErr()
	}
	if len(bytes.TrimSpace(patchBody)) == 0 {
		return &utils.AppError{
			StatusCode: http.StatusBadRequest,
			Code:       utils.ErrCodeInvalidPayload,
			Message:    "Patch document is missing",
			Err:        utils.ErrEmptyPatch,
		}
	}

	patch, err := jsonpatch.DecodePatch(patchBody)
	if err != nil {
		return patchErr("Malformed patch document", err)
	}
	if len(patch) == 0 {
		return patchErr("Patch document contains no operations", utils.ErrEmptyPatch)
	}

	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return internalErr("Could not load leasing", err)
	}
	if l == nil {
		return notFoundErr()
	}

	doc, err := json.Marshal(snapshotOf(l))
	if err != nil {
		return internalErr("Could not snapshot leasing", err)
	}

	patched, err := patch.Apply(doc)
	if err != nil {
		return patchErr("Patch could not be applied", err)
	}

	// Strict decode: an op that added a path outside the snapshot fails here.
	var next leasingSnapshot
	dec := json.NewDecoder(bytes.NewReader(patched))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&next); err != nil {
		return patchErr("Patch addresses an unknown field", err)
	}

	if err := validate.Struct(next); err != nil {
		return &utils.AppError{
			StatusCode: http.StatusBadRequest,
			Code:       utils.ErrCodeValidation,
			Message:    "Patched leasing is invalid",
			Details:    validationDetails(err),
			Err:        err,
		}
	}

	// Commit: full copy of the mutable fields, updated_at stamped by the
	// store. Id and created_at are never written.
	if err := s.repo.Update(ctx, id, next.changeSet()); err != nil {
		if errors.Is(err, utils.ErrNoRowsUpdated) {
			return notFoundErr()
		}
		return internalErr("Could not commit patch", err)
	}
	return nil
}

/* ---------- health ---------- */

func (s *LeasingService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

/* ---------- helpers ---------- */

func invalidIDErr() *utils.AppError {
	return &utils.AppError{
		StatusCode: http.StatusBadRequest,
		Code:       utils.ErrCodeInvalidID,
		Message:    "Id must be a positive integer",
		Err:        utils.ErrInvalidID,
	}
}

func notFoundErr() *utils.AppError {
	return &utils.AppError{
		StatusCode: http.StatusNotFound,
		Code:       utils.ErrCodeNotFound,
		Message:    "Leasing not found",
		Err:        utils.ErrNotFound,
	}
}

func patchErr(msg string, err error) *utils.AppError {
	return &utils.AppError{
		StatusCode: http.StatusBadRequest,
		Code:       utils.ErrCodeInvalidPayload,
		Message:    msg,
		Err:        err,
	}
}

func internalErr(msg string, err error) *utils.AppError {
	return &utils.AppError{
		StatusCode: http.StatusInternalServerError,
		Code:       utils.ErrCodeInternal,
		Message:    msg,
		Err:        err,
	}
}

// validationDetails flattens validator errors into the wire shape, with the
// field key matching its json tag casing.
func validationDetails(err error) []dtos.ValidationErrorDetail {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make([]dtos.ValidationErrorDetail, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		if field != "" {
			field = strings.ToLower(field[:1]) + field[1:]
		}
		out = append(out, dtos.ValidationErrorDetail{
			Field:   field,
			Message: "Failed validation: " + fe.Tag(),
			Code:    fe.Tag(),
		})
	}
	return out
}
