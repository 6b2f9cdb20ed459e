package postgres

import (
	"context"

	"github.com/planfuse/planfuse/internal/planfuse/domain"
	"github.com/planfuse/planfuse/internal/planfuse/store"
)

type plansRepo struct {
	db dbtx
}

func (r *plansRepo) ListPlansByUser(ctx context.Context, userID string) ([]domain.Plan, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT user_id, name, last_modified
		 FROM plans WHERE user_id = $1 ORDER BY name`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []domain.Plan
	for rows.Next() {
		var p domain.Plan
		if err := rows.Scan(&p.UserID, &p.Name, &p.LastModified); err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

func (r *plansRepo) CreatePlan(ctx context.Context, p domain.Plan) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO plans (user_id, name, last_modified) VALUES ($1, $2, $3)`,
		p.UserID, p.Name, p.LastModified,
	)
	return mapConstraint(err)
}

func (r *plansRepo) DeletePlan(ctx context.Context, userID string, name string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM plans WHERE user_id = $1 AND name = $2`, userID, name)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
