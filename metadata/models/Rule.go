package models

// Rule is one row of glpi_rules plus its ordered criteria and actions. Rules of a
// sub_type form an engine evaluated in ranking order.
type Rule struct {
	ID          int64      `db:"id" json:"id"`
	SubType     string     `db:"sub_type" json:"sub_type"`
	Ranking     int64      `db:"ranking" json:"ranking"`
	Name        NullString `db:"name" json:"name"`
	Description NullString `db:"description" json:"description"`
	Match       NullString `db:"match" json:"match"`
	IsActive    bool       `db:"is_active" json:"is_active"`
	UUID        NullString `db:"uuid" json:"uuid"`

	Criteria []RuleCriterion `db:"-" json:"criteria"`
	Actions  []RuleAction    `db:"-" json:"actions"`
}

// RuleCriterion is one row of glpi_rulecriterias.
type RuleCriterion struct {
	ID        int64      `db:"id" json:"id"`
	RulesID   int64      `db:"rules_id" json:"rules_id"`
	Criteria  NullString `db:"criteria" json:"criteria"`
	Condition int64      `db:"condition" json:"condition"`
	Pattern   NullString `db:"pattern" json:"pattern"`
}

// RuleAction is one row of glpi_ruleactions.
type RuleAction struct {
	ID         int64      `db:"id" json:"id"`
	RulesID    int64      `db:"rules_id" json:"rules_id"`
	ActionType NullString `db:"action_type" json:"action_type"`
	Field      NullString `db:"field" json:"field"`
	Value      NullString `db:"value" json:"value"`
}
