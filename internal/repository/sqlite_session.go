package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/planvox/planvox/internal/db"
	"github.com/planvox/planvox/internal/domain"
)

// SQLiteSessionRepo implements SessionRepo using a SQLite database.
type SQLiteSessionRepo struct {
	db db.DBTX
}

// NewSQLiteSessionRepo creates a new SQLiteSessionRepo. Pass a *sql.Tx-backed
// DBTX for transactional writes.
func NewSQLiteSessionRepo(dbtx db.DBTX) *SQLiteSessionRepo {
	return &SQLiteSessionRepo{db: dbtx}
}

func (r *SQLiteSessionRepo) Save(ctx context.Context, s *domain.Session) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sessions (id, stage, created_at, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET stage = excluded.stage, updated_at = excluded.updated_at`,
		s.ID, string(s.Stage), s.CreatedAt.Format(time.RFC3339), s.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("upserting session: %w", err)
	}

	if s.Plan == nil {
		if _, err := r.db.ExecContext(ctx, `DELETE FROM plans WHERE session_id = ?`, s.ID); err != nil {
			return fmt.Errorf("clearing plan: %w", err)
		}
		if _, err := r.db.ExecContext(ctx, `DELETE FROM placements WHERE session_id = ?`, s.ID); err != nil {
			return fmt.Errorf("clearing placements: %w", err)
		}
		return nil
	}

	p := s.Plan
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO plans (session_id, campaign_id, client, budget, start_date, end_date,
			total_spend, remaining_budget, version, grouping_mode, strategy)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(session_id) DO UPDATE SET
			campaign_id = excluded.campaign_id,
			client = excluded.client,
			budget = excluded.budget,
			start_date = excluded.start_date,
			end_date = excluded.end_date,
			total_spend = excluded.total_spend,
			remaining_budget = excluded.remaining_budget,
			version = excluded.version,
			grouping_mode = excluded.grouping_mode,
			strategy = excluded.strategy`,
		s.ID, p.Campaign.ID, p.Campaign.Client, p.Campaign.Budget,
		p.Campaign.StartDate.Format(time.RFC3339), p.Campaign.EndDate.Format(time.RFC3339),
		p.TotalSpend, p.RemainingBudget, p.Version, string(p.GroupingMode), string(p.Strategy))
	if err != nil {
		return fmt.Errorf("upserting plan: %w", err)
	}

	// Placements are replaced wholesale; row order is the plan's line-item
	// order and must survive the round trip.
	if _, err := r.db.ExecContext(ctx, `DELETE FROM placements WHERE session_id = ?`, s.ID); err != nil {
		return fmt.Errorf("clearing placements: %w", err)
	}
	for i := range p.Campaign.Placements {
		item := &p.Campaign.Placements[i]
		var impressions, clicks, spend, revenue any
		if item.Performance != nil {
			impressions = item.Performance.Impressions
			clicks = item.Performance.Clicks
			spend = item.Performance.Spend
			revenue = item.Performance.Revenue
		}
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO placements (id, session_id, position, channel, vendor, ad_unit,
				cost_method, rate, quantity, total_cost, status, forecast_impressions,
				perf_impressions, perf_clicks, perf_spend, perf_revenue)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			item.ID, s.ID, i, string(item.Channel), item.Vendor, item.AdUnit,
			string(item.CostMethod), item.Rate, item.Quantity, item.TotalCost,
			string(item.Status), item.ForecastImpressions,
			impressions, clicks, spend, revenue)
		if err != nil {
			return fmt.Errorf("inserting placement %d: %w", i, err)
		}
	}
	return nil
}

func (r *SQLiteSessionRepo) AppendMessages(ctx context.Context, sessionID string, msgs []domain.Message) error {
	for _, m := range msgs {
		suggested, err := json.Marshal(m.SuggestedReplies)
		if err != nil {
			return fmt.Errorf("encoding suggested replies: %w", err)
		}
		var actionType, actionPayload any
		if m.Action != nil {
			actionType = string(m.Action.Type)
			if m.Action.Payload != nil {
				payload, err := json.Marshal(m.Action.Payload)
				if err != nil {
					return fmt.Errorf("encoding action payload: %w", err)
				}
				actionPayload = string(payload)
			}
		}
		_, err = r.db.ExecContext(ctx,
			`INSERT INTO messages (id, session_id, seq, role, text, created_at,
				suggested_replies, action_type, action_payload)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			m.ID, sessionID, m.Seq, string(m.Role), m.Text,
			m.Timestamp.Format(time.RFC3339), string(suggested), actionType, actionPayload)
		if err != nil {
			return fmt.Errorf("inserting message seq %d: %w", m.Seq, err)
		}
	}
	return nil
}

// GetByID accepts a full session ID or a unique prefix, so the truncated
// IDs shown by the sessions table resolve too.
func (r *SQLiteSessionRepo) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, stage, created_at, updated_at FROM sessions
		 WHERE id = ? OR id LIKE ? || '%'
		 ORDER BY (id = ?) DESC LIMIT 1`, id, id, id)
	s, err := scanSession(row)
	if err != nil {
		return nil, err
	}
	if err := r.loadPlan(ctx, s); err != nil {
		return nil, err
	}
	if err := r.loadMessages(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *SQLiteSessionRepo) Latest(ctx context.Context) (*domain.Session, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, stage, created_at, updated_at FROM sessions ORDER BY updated_at DESC, id LIMIT 1`)
	s, err := scanSession(row)
	if err != nil {
		return nil, err
	}
	if err := r.loadPlan(ctx, s); err != nil {
		return nil, err
	}
	if err := r.loadMessages(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *SQLiteSessionRepo) List(ctx context.Context) ([]SessionSummary, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT s.id, s.stage, s.updated_at,
			COALESCE(p.client, ''), COALESCE(p.budget, 0),
			(SELECT COUNT(*) FROM messages m WHERE m.session_id = s.id)
		 FROM sessions s
		 LEFT JOIN plans p ON p.session_id = s.id
		 ORDER BY s.updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionSummary
	for rows.Next() {
		var sm SessionSummary
		var stage, updatedAt string
		if err := rows.Scan(&sm.ID, &stage, &updatedAt, &sm.Client, &sm.Budget, &sm.MessageCount); err != nil {
			return nil, fmt.Errorf("scanning session summary: %w", err)
		}
		sm.Stage = domain.Stage(stage)
		sm.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		out = append(out, sm)
	}
	return out, rows.Err()
}

func (r *SQLiteSessionRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ? OR id LIKE ? || '%'`, id, id)
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("session %s: %w", id, ErrNotFound)
	}
	return nil
}

func scanSession(row *sql.Row) (*domain.Session, error) {
	var s domain.Session
	var stage, createdAt, updatedAt string
	err := row.Scan(&s.ID, &stage, &createdAt, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("session: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning session: %w", err)
	}
	s.Stage = domain.Stage(stage)
	if s.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing session created_at: %w", err)
	}
	if s.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return nil, fmt.Errorf("parsing session updated_at: %w", err)
	}
	return &s, nil
}

func (r *SQLiteSessionRepo) loadPlan(ctx context.Context, s *domain.Session) error {
	row := r.db.QueryRowContext(ctx,
		`SELECT campaign_id, client, budget, start_date, end_date,
			total_spend, remaining_budget, version, grouping_mode, strategy
		 FROM plans WHERE session_id = ?`, s.ID)

	var p domain.MediaPlan
	var startDate, endDate, groupingMode, strategy string
	err := row.Scan(&p.Campaign.ID, &p.Campaign.Client, &p.Campaign.Budget,
		&startDate, &endDate, &p.TotalSpend, &p.RemainingBudget,
		&p.Version, &groupingMode, &strategy)
	if err == sql.ErrNoRows {
		return nil // no plan yet (INIT)
	}
	if err != nil {
		return fmt.Errorf("scanning plan: %w", err)
	}
	p.GroupingMode = domain.GroupingMode(groupingMode)
	p.Strategy = domain.Strategy(strategy)
	if p.Campaign.StartDate, err = time.Parse(time.RFC3339, startDate); err != nil {
		return fmt.Errorf("parsing plan start_date: %w", err)
	}
	if p.Campaign.EndDate, err = time.Parse(time.RFC3339, endDate); err != nil {
		return fmt.Errorf("parsing plan end_date: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, channel, vendor, ad_unit, cost_method, rate, quantity, total_cost,
			status, forecast_impressions, perf_impressions, perf_clicks, perf_spend, perf_revenue
		 FROM placements WHERE session_id = ? ORDER BY position`, s.ID)
	if err != nil {
		return fmt.Errorf("listing placements: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.Placement
		var channel, costMethod, status string
		var impressions, clicks, spend, revenue sql.NullFloat64
		err := rows.Scan(&item.ID, &channel, &item.Vendor, &item.AdUnit, &costMethod,
			&item.Rate, &item.Quantity, &item.TotalCost, &status, &item.ForecastImpressions,
			&impressions, &clicks, &spend, &revenue)
		if err != nil {
			return fmt.Errorf("scanning placement: %w", err)
		}
		item.Channel = domain.Channel(channel)
		item.CostMethod = domain.CostMethod(costMethod)
		item.Status = domain.PlacementStatus(status)
		if impressions.Valid || spend.Valid {
			item.Performance = &domain.Performance{
				Impressions: impressions.Float64,
				Clicks:      clicks.Float64,
				Spend:       spend.Float64,
				Revenue:     revenue.Float64,
			}
		}
		p.Campaign.Placements = append(p.Campaign.Placements, item)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating placements: %w", err)
	}

	s.Plan = &p
	return nil
}

func (r *SQLiteSessionRepo) loadMessages(ctx context.Context, s *domain.Session) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, seq, role, text, created_at, suggested_replies, action_type, action_payload
		 FROM messages WHERE session_id = ? ORDER BY seq`, s.ID)
	if err != nil {
		return fmt.Errorf("listing messages: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m domain.Message
		var role, createdAt, suggested string
		var actionType, actionPayload sql.NullString
		if err := rows.Scan(&m.ID, &m.Seq, &role, &m.Text, &createdAt, &suggested, &actionType, &actionPayload); err != nil {
			return fmt.Errorf("scanning message: %w", err)
		}
		m.Role = domain.Role(role)
		if m.Timestamp, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return fmt.Errorf("parsing message created_at: %w", err)
		}
		if suggested != "" {
			if err := json.Unmarshal([]byte(suggested), &m.SuggestedReplies); err != nil {
				return fmt.Errorf("decoding suggested replies: %w", err)
			}
		}
		if actionType.Valid {
			m.Action = &domain.Action{Type: domain.ActionType(actionType.String)}
			if actionPayload.Valid && actionPayload.String != "" {
				if err := json.Unmarshal([]byte(actionPayload.String), &m.Action.Payload); err != nil {
					return fmt.Errorf("decoding action payload: %w", err)
				}
			}
		}
		s.History = append(s.History, m)
	}
	return rows.Err()
}
