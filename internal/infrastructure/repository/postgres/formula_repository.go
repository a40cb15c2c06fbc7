package postgres

import (
	"context"
	"fmt"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"

	"github.com/robharvey123/cricket-platform/internal/domain/scoring"
	"github.com/robharvey123/cricket-platform/internal/platform/id"
	qb "github.com/robharvey123/cricket-platform/internal/platform/querybuilder"
)

// FormulaRepository stores versioned scoring formulas. The discipline configs
// are persisted as JSON columns so new formula knobs never need a migration.
type FormulaRepository struct {
	db  *sqlx.DB
	ids id.Generator
}

func NewFormulaRepository(db *sqlx.DB, ids id.Generator) *FormulaRepository {
	return &FormulaRepository{db: db, ids: ids}
}

func (r *FormulaRepository) GetActiveFormula(ctx context.Context, clubID string) (scoring.Formula, bool, error) {
	query, args, err := qb.Select("*").
		From("scoring_formulas").
		Where(
			qb.Eq("club_public_id", clubID),
			qb.Eq("is_active", true),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return scoring.Formula{}, false, fmt.Errorf("build get active formula query: %w", err)
	}

	var row formulaTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return scoring.Formula{}, false, nil
		}
		return scoring.Formula{}, false, fmt.Errorf("get active formula: %w", err)
	}

	formula, err := formulaToDomain(row)
	if err != nil {
		return scoring.Formula{}, false, err
	}
	return formula, true, nil
}

func (r *FormulaRepository) GetFormula(ctx context.Context, formulaID string) (scoring.Formula, bool, error) {
	query, args, err := qb.Select("*").
		From("scoring_formulas").
		Where(
			qb.Eq("public_id", formulaID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return scoring.Formula{}, false, fmt.Errorf("build get formula query: %w", err)
	}

	var row formulaTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return scoring.Formula{}, false, nil
		}
		return scoring.Formula{}, false, fmt.Errorf("get formula: %w", err)
	}

	formula, err := formulaToDomain(row)
	if err != nil {
		return scoring.Formula{}, false, err
	}
	return formula, true, nil
}

func (r *FormulaRepository) ListFormulas(ctx context.Context, clubID string) ([]scoring.Formula, error) {
	query, args, err := qb.Select("*").
		From("scoring_formulas").
		Where(
			qb.Eq("club_public_id", clubID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("version").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list formulas query: %w", err)
	}

	var rows []formulaTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list formulas: %w", err)
	}

	out := make([]scoring.Formula, 0, len(rows))
	for _, row := range rows {
		formula, err := formulaToDomain(row)
		if err != nil {
			return nil, err
		}
		out = append(out, formula)
	}
	return out, nil
}

// CreateFormula assigns the next version number for the club inside one
// transaction; an active insert deactivates every prior version first.
func (r *FormulaRepository) CreateFormula(ctx context.Context, formula scoring.Formula) (scoring.Formula, error) {
	publicID, err := r.ids.NewID()
	if err != nil {
		return scoring.Formula{}, fmt.Errorf("generate formula id: %w", err)
	}

	battingJSON, bowlingJSON, fieldingJSON, err := marshalFormulaConfigs(formula)
	if err != nil {
		return scoring.Formula{}, err
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return scoring.Formula{}, fmt.Errorf("begin tx create formula: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	versionQuery, versionArgs, err := qb.Select("COALESCE(MAX(version), 0)").
		From("scoring_formulas").
		Where(
			qb.Eq("club_public_id", formula.ClubID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return scoring.Formula{}, fmt.Errorf("build max formula version query: %w", err)
	}
	var maxVersion int
	if err := tx.GetContext(ctx, &maxVersion, versionQuery, versionArgs...); err != nil {
		return scoring.Formula{}, fmt.Errorf("get max formula version: %w", err)
	}

	if formula.Active {
		if err := deactivateFormulasTx(ctx, tx, formula.ClubID); err != nil {
			return scoring.Formula{}, err
		}
	}

	now := time.Now()
	insertModel := formulaInsertModel{
		PublicID:       publicID,
		ClubID:         formula.ClubID,
		Name:           formula.Name,
		Version:        maxVersion + 1,
		IsActive:       formula.Active,
		BattingConfig:  battingJSON,
		BowlingConfig:  bowlingJSON,
		FieldingConfig: fieldingJSON,
		CreatedAt:      timeToUnix(now),
		UpdatedAt:      timeToUnix(now),
	}
	query, args, err := qb.InsertModel("scoring_formulas", insertModel, "")
	if err != nil {
		return scoring.Formula{}, fmt.Errorf("build create formula query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return scoring.Formula{}, fmt.Errorf("create formula: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return scoring.Formula{}, fmt.Errorf("commit create formula tx: %w", err)
	}

	formula.ID = publicID
	formula.Version = maxVersion + 1
	formula.CreatedAt = now.UTC()
	return formula, nil
}

func (r *FormulaRepository) ActivateFormula(ctx context.Context, clubID, formulaID string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx activate formula: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := deactivateFormulasTx(ctx, tx, clubID); err != nil {
		return err
	}

	query, args, err := qb.Update("scoring_formulas").
		Set("is_active", true).
		SetExpr("updated_at", "EXTRACT(EPOCH FROM NOW())::bigint").
		Where(
			qb.Eq("club_public_id", clubID),
			qb.Eq("public_id", formulaID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build activate formula query: %w", err)
	}
	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("activate formula: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("activate formula rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("activate formula %s: not found for club %s", formulaID, clubID)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit activate formula tx: %w", err)
	}
	return nil
}

func deactivateFormulasTx(ctx context.Context, tx *sqlx.Tx, clubID string) error {
	query, args, err := qb.Update("scoring_formulas").
		Set("is_active", false).
		SetExpr("updated_at", "EXTRACT(EPOCH FROM NOW())::bigint").
		Where(
			qb.Eq("club_public_id", clubID),
			qb.Eq("is_active", true),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build deactivate formulas query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("deactivate formulas: %w", err)
	}
	return nil
}

func marshalFormulaConfigs(formula scoring.Formula) (batting, bowling, fielding string, err error) {
	battingRaw, err := sonic.Marshal(formula.Batting)
	if err != nil {
		return "", "", "", fmt.Errorf("marshal batting config: %w", err)
	}
	bowlingRaw, err := sonic.Marshal(formula.Bowling)
	if err != nil {
		return "", "", "", fmt.Errorf("marshal bowling config: %w", err)
	}
	fieldingRaw, err := sonic.Marshal(formula.Fielding)
	if err != nil {
		return "", "", "", fmt.Errorf("marshal fielding config: %w", err)
	}
	return string(battingRaw), string(bowlingRaw), string(fieldingRaw), nil
}

func formulaToDomain(row formulaTableModel) (scoring.Formula, error) {
	formula := scoring.Formula{
		ID:        row.PublicID,
		ClubID:    row.ClubID,
		Name:      row.Name,
		Version:   row.Version,
		Active:    row.IsActive,
		CreatedAt: unixToTime(row.CreatedAt),
	}
	if err := sonic.Unmarshal([]byte(row.BattingConfig), &formula.Batting); err != nil {
		return scoring.Formula{}, fmt.Errorf("unmarshal batting config for formula %s: %w", row.PublicID, err)
	}
	if err := sonic.Unmarshal([]byte(row.BowlingConfig), &formula.Bowling); err != nil {
		return scoring.Formula{}, fmt.Errorf("unmarshal bowling config for formula %s: %w", row.PublicID, err)
	}
	if err := sonic.Unmarshal([]byte(row.FieldingConfig), &formula.Fielding); err != nil {
		return scoring.Formula{}, fmt.Errorf("unmarshal fielding config for formula %s: %w", row.PublicID, err)
	}
	return formula, nil
}
