package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"fintrack-server/src/core"
	"fintrack-server/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const categoryRuleColumns = `id, user_id, name, conditions, category_id, created_at, updated_at`

func scanCategoryRule(row pgx.Row) (*models.CategoryRule, error) {
	var r models.CategoryRule
	err := row.Scan(&r.ID, &r.UserID, &r.Name, &r.Conditions, &r.CategoryID, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func CreateCategoryRule(ctx context.Context, pool *pgxpool.Pool, rule *models.CategoryRule) (*models.CategoryRule, error) {
	query := `
		INSERT INTO category_rules (user_id, name, conditions, category_id)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + categoryRuleColumns
	return scanCategoryRule(pool.QueryRow(ctx, query, rule.UserID, rule.Name, rule.Conditions, rule.CategoryID))
}

func GetCategoryRuleByID(ctx context.Context, pool *pgxpool.Pool, userID, ruleID int64) (*models.CategoryRule, error) {
	query := `SELECT ` + categoryRuleColumns + ` FROM category_rules WHERE id = $1 AND user_id = $2`
	rule, err := scanCategoryRule(pool.QueryRow(ctx, query, ruleID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: category rule %d", core.ErrNotFound, ruleID)
		}
		return nil, err
	}
	return rule, nil
}

func GetAllCategoryRules(ctx context.Context, pool *pgxpool.Pool, userID int64) ([]models.CategoryRule, error) {
	query := `SELECT ` + categoryRuleColumns + ` FROM category_rules WHERE user_id = $1 ORDER BY id`
	rows, err := pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []models.CategoryRule
	for rows.Next() {
		rule, err := scanCategoryRule(rows)
		if err != nil {
			return nil, err
		}
		rules = append(rules, *rule)
	}
	return rules, rows.Err()
}

func UpdateCategoryRule(ctx context.Context, pool *pgxpool.Pool, rule *models.CategoryRule) (*models.CategoryRule, error) {
	query := `
		UPDATE category_rules
		SET name = $1, conditions = $2, category_id = $3, updated_at = NOW()
		WHERE id = $4 AND user_id = $5
		RETURNING ` + categoryRuleColumns
	updated, err := scanCategoryRule(pool.QueryRow(ctx, query, rule.Name, rule.Conditions, rule.CategoryID, rule.ID, rule.UserID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: category rule %d", core.ErrNotFound, rule.ID)
		}
		return nil, err
	}
	return updated, nil
}

func DeleteCategoryRule(ctx context.Context, pool *pgxpool.Pool, userID, ruleID int64) error {
	cmd, err := pool.Exec(ctx, `DELETE FROM category_rules WHERE id = $1 AND user_id = $2`, ruleID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: category rule %d", core.ErrNotFound, ruleID)
	}
	return nil
}

// ApplyCategoryRulesToUser recategorizes the user's transactions: for each
// transaction the first matching rule assigns its category. Only the weak
// category reference changes; amounts and balances are untouched.
func ApplyCategoryRulesToUser(ctx context.Context, pool *pgxpool.Pool, userID int64) error {
	rules, err := GetAllCategoryRules(ctx, pool, userID)
	if err != nil {
		return fmt.Errorf("failed to fetch category rules: %w", err)
	}
	if len(rules) == 0 {
		return nil
	}

	query := `
		SELECT t.id, COALESCE(t.description, ''), t.amount, a.name AS account_name, t.category_id
		FROM transactions t
		JOIN accounts a ON t.account_id = a.id
		WHERE t.user_id = $1
	`
	rows, err := pool.Query(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("failed to fetch transactions: %w", err)
	}
	defer rows.Close()

	var txns []ruleTxn
	for rows.Next() {
		var row ruleTxn
		if err := rows.Scan(&row.ID, &row.Description, &row.Amount, &row.AccountName, &row.CategoryID); err != nil {
			return fmt.Errorf("failed to scan transaction: %w", err)
		}
		txns = append(txns, row)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	adjusted := 0
	for _, txn := range txns {
		for _, rule := range rules {
			var cond models.Condition
			if err := json.Unmarshal(rule.Conditions, &cond); err != nil {
				continue // skip invalid rule
			}
			if evaluateCondition(cond, txn) {
				if txn.CategoryID == nil || *txn.CategoryID != rule.CategoryID {
					_, err := pool.Exec(ctx,
						`UPDATE transactions SET category_id = $1, updated_at = NOW() WHERE id = $2`,
						rule.CategoryID, txn.ID)
					if err != nil {
						return fmt.Errorf("failed to update transaction category: %w", err)
					}
					adjusted++
				}
				break // first matching rule wins
			}
		}
	}

	if adjusted > 0 {
		log.Printf("INFO: ApplyCategoryRulesToUser: %d transactions recategorized for user %d", adjusted, userID)
	} else {
		log.Printf("INFO: ApplyCategoryRulesToUser: no transactions matched rules for user %d", userID)
	}
	return nil
}

type ruleTxn struct {
	ID          int64
	Description string
	Amount      float64
	AccountName string
	CategoryID  *int64
}

func evaluateCondition(cond models.Condition, txn ruleTxn) bool {
	// Logical AND
	if len(cond.And) > 0 {
		for _, c := range cond.And {
			if !evaluateCondition(c, txn) {
				return false
			}
		}
		return true
	}
	// Logical OR
	if len(cond.Or) > 0 {
		for _, c := range cond.Or {
			if evaluateCondition(c, txn) {
				return true
			}
		}
		return false
	}
	// Leaf node: evaluate field/op/value
	var fieldValue interface{}
	switch cond.Field {
	case "description":
		fieldValue = txn.Description
	case "amount":
		fieldValue = txn.Amount
	case "account":
		fieldValue = txn.AccountName
	default:
		return false
	}
	switch cond.Op {
	case "equals":
		switch v := fieldValue.(type) {
		case string:
			val, ok := cond.Value.(string)
			return ok && strings.EqualFold(v, val)
		case float64:
			val, ok := cond.Value.(float64)
			return ok && v == val
		default:
			return false
		}
	case "contains":
		s, ok := fieldValue.(string)
		val, ok2 := cond.Value.(string)
		return ok && ok2 && strings.Contains(strings.ToLower(s), strings.ToLower(val))
	case "gte":
		f, ok := fieldValue.(float64)
		val, ok2 := cond.Value.(float64)
		return ok && ok2 && f >= val
	case "lte":
		f, ok := fieldValue.(float64)
		val, ok2 := cond.Value.(float64)
		return ok && ok2 && f <= val
	case "gt":
		f, ok := fieldValue.(float64)
		val, ok2 := cond.Value.(float64)
		return ok && ok2 && f > val
	case "lt":
		f, ok := fieldValue.(float64)
		val, ok2 := cond.Value.(float64)
		return ok && ok2 && f < val
	case "in":
		s, ok := fieldValue.(string)
		arr, ok2 := cond.Value.([]interface{})
		if ok && ok2 {
			for _, v := range arr {
				if str, ok := v.(string); ok && strings.EqualFold(s, str) {
					return true
				}
			}
		}
		return false
	default:
		return false
	}
}
