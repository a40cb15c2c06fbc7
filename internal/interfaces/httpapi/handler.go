package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/robharvey123/cricket-platform/internal/domain/club"
	"github.com/robharvey123/cricket-platform/internal/usecase"
)

type Handler struct {
	clubRepo           club.Repository
	formulaService     *usecase.FormulaService
	importService      *usecase.ImportService
	aggregationService *usecase.AggregationService
	recalcMaxWorkers   int
	logger             *slog.Logger
	validator          *validator.Validate
}

func NewHandler(
	clubRepo club.Repository,
	formulaService *usecase.FormulaService,
	importService *usecase.ImportService,
	aggregationService *usecase.AggregationService,
	recalcMaxWorkers int,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		clubRepo:           clubRepo,
		formulaService:     formulaService,
		importService:      importService,
		aggregationService: aggregationService,
		recalcMaxWorkers:   recalcMaxWorkers,
		logger:             logger,
		validator:          validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListClubs(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListClubs")
	defer span.End()

	clubs, err := h.clubRepo.ListClubs(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list clubs failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]clubDTO, 0, len(clubs))
	for _, c := range clubs {
		items = append(items, clubToDTO(c))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

// decodeRequest rejects unknown fields so typos in formula config keys fail
// loudly instead of silently zeroing a knob.
func decodeRequest(r *http.Request, target any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(target); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: request body is required", usecase.ErrInvalidInput)
		}
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

type clubDTO struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	AltNames       []string `json:"alt_names,omitempty"`
	ActiveSeasonID string   `json:"active_season_id,omitempty"`
}

func clubToDTO(c club.Club) clubDTO {
	return clubDTO{
		ID:             c.ID,
		Name:           c.Name,
		AltNames:       c.AltNames,
		ActiveSeasonID: c.ActiveSeasonID,
	}
}
