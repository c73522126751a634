package dao

import (
	"go.uber.org/zap"

	"github.com/marceloslacerda/glpigo/metadata/models"
)

// GetRules retrieves the rule engine of a sub_type (for example RuleTicket) in ranking
// order, each rule carrying its criteria and actions.
func (dao *DataAccessLayer) GetRules(subType string) ([]models.Rule, error) {
	var rules []models.Rule
	getRulesStatement := `select id, sub_type, ranking, name, description,
        ` + "`match`" + `, is_active, uuid
        from glpi_rules where sub_type = ? order by ranking, id`
	if err := dao.MetadataDB.Select(&rules, getRulesStatement, subType); err != nil {
		dao.GetLogger().Error("error in GetRules", zap.String("subType", subType), zap.Error(err))
		return nil, err
	}

	getCriteriaStatement := `select id, rules_id, criteria, ` + "`condition`" + `, pattern
        from glpi_rulecriterias where rules_id = ? order by id`
	getActionsStatement := `select id, rules_id, action_type, field, value
        from glpi_ruleactions where rules_id = ? order by id`

	for i := range rules {
		if err := dao.MetadataDB.Select(&rules[i].Criteria, getCriteriaStatement, rules[i].ID); err != nil {
			dao.GetLogger().Error("error loading rule criteria", zap.Int64("rule", rules[i].ID), zap.Error(err))
			return nil, err
		}
		if err := dao.MetadataDB.Select(&rules[i].Actions, getActionsStatement, rules[i].ID); err != nil {
			dao.GetLogger().Error("error loading rule actions", zap.Int64("rule", rules[i].ID), zap.Error(err))
			return nil, err
		}
	}
	return rules, nil
}
