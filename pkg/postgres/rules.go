package postgres

import (
	"context"
	"fmt"

	"github.com/huuphu310/rooms-management-sub000/pkg/core/model"
)

// GetRules retrieves all allocation rules, highest priority first.
func (db *DB) GetRules(ctx context.Context) ([]model.AllocationRule, error) {
	rows, err := db.pool.Query(ctx, `
		SELECT id, name, rule_type, priority, active, conditions, actions
		FROM allocation_rules
		ORDER BY priority DESC, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query allocation rules: %w", err)
	}
	defer rows.Close()

	var rulesList []model.AllocationRule
	for rows.Next() {
		var r model.AllocationRule
		var ruleType string
		if err := rows.Scan(&r.ID, &r.Name, &ruleType, &r.Priority, &r.Active,
			&r.Conditions, &r.Actions); err != nil {
			return nil, fmt.Errorf("failed to scan allocation rule: %w", err)
		}
		r.Type = model.RuleType(ruleType)
		rulesList = append(rulesList, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating allocation rules: %w", err)
	}
	return rulesList, nil
}

// GetActiveRules retrieves only the rules currently toggled on.
func (db *DB) GetActiveRules(ctx context.Context) ([]model.AllocationRule, error) {
	all, err := db.GetRules(ctx)
	if err != nil {
		return nil, err
	}
	active := all[:0]
	for _, r := range all {
		if r.Active {
			active = append(active, r)
		}
	}
	return active, nil
}

// InsertRule persists a new allocation rule. Callers validate the rule
// before insertion; invalid rules are never stored.
func (db *DB) InsertRule(ctx context.Context, r model.AllocationRule) error {
	_, err := db.pool.Exec(ctx, `
		INSERT INTO allocation_rules (id, name, rule_type, priority, active, conditions, actions)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, r.ID, r.Name, string(r.Type), r.Priority, r.Active, r.Conditions, r.Actions)
	if err != nil {
		return fmt.Errorf("failed to insert allocation rule: %w", err)
	}
	return nil
}

// SetRuleActive toggles a rule on or off.
func (db *DB) SetRuleActive(ctx context.Context, id string, active bool) error {
	tag, err := db.pool.Exec(ctx, `
		UPDATE allocation_rules SET active = $2 WHERE id = $1
	`, id, active)
	if err != nil {
		return fmt.Errorf("failed to toggle allocation rule %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("allocation rule %s not found", id)
	}
	return nil
}

// DeleteRule removes a rule permanently.
func (db *DB) DeleteRule(ctx context.Context, id string) error {
	tag, err := db.pool.Exec(ctx, `
		DELETE FROM allocation_rules WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("failed to delete allocation rule %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("allocation rule %s not found", id)
	}
	return nil
}
