package checklist

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"webstories/config"
	"webstories/types"
)

// Result is one evaluation of a story against the checklist.
type Result struct {
	StoryID     string    `json:"storyId"`
	Cards       []*Card   `json:"cards"`
	Count       int       `json:"count"`
	Violations  []string  `json:"violations"`
	EvaluatedAt time.Time `json:"evaluatedAt"`
}

// Checklist runs a fixed set of rules and records their outcomes.
type Checklist struct {
	rules    []Rule
	disabled map[string]bool
	now      func() time.Time
}

// New builds the default checklist from cfg. Checks named in cfg.Disabled are
// kept out of the registry.
func New(cfg config.ChecksConfig) *Checklist {
	rules := DefaultRules(cfg)
	var disabled []string
	for _, r := range rules {
		if cfg.IsDisabled(r.Name()) {
			disabled = append(disabled, r.Name())
		}
	}
	return NewWithRules(rules, disabled...)
}

// NewWithRules builds a checklist from an explicit rule set.
func NewWithRules(rules []Rule, disabled ...string) *Checklist {
	d := make(map[string]bool, len(disabled))
	for _, name := range disabled {
		d[strings.ToLower(strings.TrimSpace(name))] = true
	}
	return &Checklist{rules: rules, disabled: d, now: time.Now}
}

// Rules returns the configured rules in evaluation order.
func (c *Checklist) Rules() []Rule {
	return c.rules
}

// Evaluate runs every enabled rule on story, registers each outcome in reg and
// returns the rendered cards ordered by category.
func (c *Checklist) Evaluate(ctx context.Context, reg Registry, story *types.Story) (*Result, error) {
	res := &Result{Cards: []*Card{}, Violations: []string{}, EvaluatedAt: c.now()}
	if story != nil {
		res.StoryID = story.ID
	}

	for _, rule := range c.rules {
		if c.disabled[strings.ToLower(rule.Name())] {
			if err := reg.Unregister(ctx, rule.Name()); err != nil {
				return nil, fmt.Errorf("failed to unregister %s: %w", rule.Name(), err)
			}
			continue
		}
		card := rule.Evaluate(story)
		if err := reg.Register(ctx, rule.Name(), card != nil); err != nil {
			return nil, fmt.Errorf("failed to register %s: %w", rule.Name(), err)
		}
		if card != nil {
			res.Cards = append(res.Cards, card)
			res.Violations = append(res.Violations, rule.Name())
		}
	}

	sort.SliceStable(res.Cards, func(i, j int) bool {
		return categoryOrder[res.Cards[i].Category] < categoryOrder[res.Cards[j].Category]
	})

	count, err := reg.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count checks: %w", err)
	}
	res.Count = count
	return res, nil
}
