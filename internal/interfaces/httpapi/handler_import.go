package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/robharvey123/cricket-platform/internal/domain/match"
	"github.com/robharvey123/cricket-platform/internal/usecase"
)

type matchDTO struct {
	ID         string       `json:"id"`
	ClubID     string       `json:"club_id"`
	SeasonID   string       `json:"season_id,omitempty"`
	ExternalID int64        `json:"external_id,omitempty"`
	HomeTeam   string       `json:"home_team"`
	AwayTeam   string       `json:"away_team"`
	PlayedAt   time.Time    `json:"played_at,omitzero"`
	Published  bool         `json:"published"`
	Innings    []inningsDTO `json:"innings"`
}

type inningsDTO struct {
	Seq         int    `json:"seq"`
	BattingTeam string `json:"batting_team"`
	BattingRows int    `json:"batting_rows"`
	BowlingRows int    `json:"bowling_rows"`
}

func matchToDTO(m match.Match) matchDTO {
	innings := make([]inningsDTO, 0, len(m.Innings))
	for _, in := range m.Innings {
		innings = append(innings, inningsDTO{
			Seq:         in.Seq,
			BattingTeam: in.BattingTeam,
			BattingRows: len(in.Batting),
			BowlingRows: len(in.Bowling),
		})
	}
	return matchDTO{
		ID:         m.ID,
		ClubID:     m.ClubID,
		SeasonID:   m.SeasonID,
		ExternalID: m.ExternalID,
		HomeTeam:   m.HomeTeam,
		AwayTeam:   m.AwayTeam,
		PlayedAt:   m.PlayedAt,
		Published:  m.Published,
		Innings:    innings,
	}
}

func (h *Handler) ImportMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ImportMatch")
	defer span.End()

	clubID := r.PathValue("clubID")
	externalMatchID, err := strconv.ParseInt(r.PathValue("externalMatchID"), 10, 64)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: external match id must be numeric", usecase.ErrInvalidInput))
		return
	}

	imported, err := h.importService.ImportMatch(ctx, clubID, externalMatchID)
	if err != nil {
		h.logger.WarnContext(ctx, "import match failed", "club_id", clubID, "external_match_id", externalMatchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(imported))
}

func (h *Handler) ImportSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ImportSeason")
	defer span.End()

	clubID := r.PathValue("clubID")
	season := r.PathValue("season")

	summary, err := h.importService.ImportSeason(ctx, clubID, season)
	if err != nil {
		h.logger.WarnContext(ctx, "import season failed", "club_id", clubID, "season", season, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, summary)
}

func (h *Handler) PublishMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PublishMatch")
	defer span.End()

	clubID := r.PathValue("clubID")
	matchID := r.PathValue("matchID")

	if err := h.importService.PublishMatch(ctx, clubID, matchID); err != nil {
		h.logger.WarnContext(ctx, "publish match failed", "club_id", clubID, "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"match_id": matchID, "status": "published"})
}

func (h *Handler) UnpublishMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UnpublishMatch")
	defer span.End()

	clubID := r.PathValue("clubID")
	matchID := r.PathValue("matchID")

	if err := h.importService.UnpublishMatch(ctx, clubID, matchID); err != nil {
		h.logger.WarnContext(ctx, "unpublish match failed", "club_id", clubID, "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"match_id": matchID, "status": "unpublished"})
}
