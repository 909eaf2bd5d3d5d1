package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/huuphu310/rooms-management-sub000/pkg/core/model"
	"github.com/huuphu310/rooms-management-sub000/pkg/core/rules"
)

// RuleStore defines the database operations for allocation rules
type RuleStore interface {
	GetRules(ctx context.Context) ([]model.AllocationRule, error)
	InsertRule(ctx context.Context, r model.AllocationRule) error
	SetRuleActive(ctx context.Context, id string, active bool) error
	DeleteRule(ctx context.Context, id string) error
}

// CreateRule validates and persists an allocation rule. Rules failing
// validation are rejected and never stored.
func CreateRule(ctx context.Context, store RuleStore, logger *zap.Logger, r model.AllocationRule) (*model.AllocationRule, error) {
	if err := rules.Validate(r); err != nil {
		return nil, err
	}
	if r.ID == "" {
		r.ID = uuid.NewString()
	}

	if err := store.InsertRule(ctx, r); err != nil {
		return nil, err
	}
	logger.Info("Created allocation rule",
		zap.String("id", r.ID),
		zap.String("name", r.Name),
		zap.String("type", string(r.Type)),
		zap.Int("priority", r.Priority))
	return &r, nil
}

// ListRules returns all rules, highest priority first.
func ListRules(ctx context.Context, store RuleStore) ([]model.AllocationRule, error) {
	return store.GetRules(ctx)
}

// ToggleRule flips a rule's active flag.
func ToggleRule(ctx context.Context, store RuleStore, logger *zap.Logger, id string, active bool) error {
	if err := store.SetRuleActive(ctx, id, active); err != nil {
		return err
	}
	logger.Info("Toggled allocation rule", zap.String("id", id), zap.Bool("active", active))
	return nil
}

// DeleteRule removes a rule permanently.
func DeleteRule(ctx context.Context, store RuleStore, logger *zap.Logger, id string) error {
	if err := store.DeleteRule(ctx, id); err != nil {
		return err
	}
	logger.Info("Deleted allocation rule", zap.String("id", id))
	return nil
}
