package httpapi

import (
	"net/http"
	"time"

	"github.com/robharvey123/cricket-platform/internal/domain/scoring"
)

type createFormulaRequest struct {
	Name     string                 `json:"name" validate:"required,max=100"`
	Active   bool                   `json:"active"`
	Batting  scoring.BattingConfig  `json:"batting"`
	Bowling  scoring.BowlingConfig  `json:"bowling"`
	Fielding scoring.FieldingConfig `json:"fielding"`
}

type formulaDTO struct {
	ID        string                 `json:"id"`
	ClubID    string                 `json:"club_id"`
	Name      string                 `json:"name"`
	Version   int                    `json:"version"`
	Active    bool                   `json:"active"`
	Batting   scoring.BattingConfig  `json:"batting"`
	Bowling   scoring.BowlingConfig  `json:"bowling"`
	Fielding  scoring.FieldingConfig `json:"fielding"`
	CreatedAt time.Time              `json:"created_at,omitzero"`
}

func formulaToDTO(f scoring.Formula) formulaDTO {
	return formulaDTO{
		ID:        f.ID,
		ClubID:    f.ClubID,
		Name:      f.Name,
		Version:   f.Version,
		Active:    f.Active,
		Batting:   f.Batting,
		Bowling:   f.Bowling,
		Fielding:  f.Fielding,
		CreatedAt: f.CreatedAt,
	}
}

func (h *Handler) ListFormulas(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFormulas")
	defer span.End()

	clubID := r.PathValue("clubID")
	formulas, err := h.formulaService.List(ctx, clubID)
	if err != nil {
		h.logger.WarnContext(ctx, "list formulas failed", "club_id", clubID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]formulaDTO, 0, len(formulas))
	for _, f := range formulas {
		items = append(items, formulaToDTO(f))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetActiveFormula(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetActiveFormula")
	defer span.End()

	clubID := r.PathValue("clubID")
	formula, err := h.formulaService.GetActive(ctx, clubID)
	if err != nil {
		h.logger.WarnContext(ctx, "get active formula failed", "club_id", clubID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, formulaToDTO(formula))
}

func (h *Handler) CreateFormula(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateFormula")
	defer span.End()

	clubID := r.PathValue("clubID")

	var req createFormulaRequest
	if err := decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.formulaService.Create(ctx, scoring.Formula{
		ClubID:   clubID,
		Name:     req.Name,
		Active:   req.Active,
		Batting:  req.Batting,
		Bowling:  req.Bowling,
		Fielding: req.Fielding,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create formula failed", "club_id", clubID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, formulaToDTO(created))
}

func (h *Handler) ActivateFormula(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ActivateFormula")
	defer span.End()

	clubID := r.PathValue("clubID")
	formulaID := r.PathValue("formulaID")

	if err := h.formulaService.Activate(ctx, clubID, formulaID); err != nil {
		h.logger.WarnContext(ctx, "activate formula failed", "club_id", clubID, "formula_id", formulaID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"formula_id": formulaID, "status": "active"})
}
