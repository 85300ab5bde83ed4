package treasury

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// DefaultCategory is assigned when no rule matches.
const DefaultCategory = "uncategorized"

// Rule assigns a category to transactions whose description contains the
// match string (case-insensitive). First matching rule wins.
type Rule struct {
	Match    string `yaml:"match"`
	Category string `yaml:"category"`
}

type Rules struct {
	Categories []Rule `yaml:"categories"`
}

// LoadRules reads the category rule file. An empty path yields empty rules
// (everything lands in DefaultCategory).
func LoadRules(path string) (Rules, error) {
	if path == "" {
		return Rules{}, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("read treasury rules: %w", err)
	}
	var rules Rules
	if err := yaml.Unmarshal(raw, &rules); err != nil {
		return Rules{}, fmt.Errorf("parse treasury rules: %w", err)
	}
	return rules, nil
}

// Categorize returns the category for a description: an explicit category on
// the row wins, then the first matching rule, then DefaultCategory.
func (r Rules) Categorize(description, explicit string) string {
	if c := strings.TrimSpace(explicit); c != "" {
		return strings.ToLower(c)
	}
	lower := strings.ToLower(description)
	for _, rule := range r.Categories {
		if rule.Match != "" && strings.Contains(lower, strings.ToLower(rule.Match)) {
			return rule.Category
		}
	}
	return DefaultCategory
}

// Normalize converts submitted rows into transactions. Rows with no parsable
// amount or an empty description are dropped rather than failing the batch.
func Normalize(rows []RawRow, rules Rules, actorEmail string, now time.Time) []Transaction {
	transactions := make([]Transaction, 0, len(rows))
	for _, row := range rows {
		description := strings.TrimSpace(row.Description)
		if description == "" {
			continue
		}
		cents, err := ParseAmount(row.Amount)
		if err != nil {
			continue
		}
		transactions = append(transactions, Transaction{
			ID:          uuid.New().String(),
			Date:        strings.TrimSpace(row.Date),
			Description: description,
			AmountCents: cents,
			Category:    rules.Categorize(description, row.Category),
			Source:      actorEmail,
			CreatedAt:   now.UTC(),
		})
	}
	return transactions
}

// ParseAmount converts bank-export amount strings to integer cents.
// Accepted forms: "12.34", "$1,234.56", "-45", "(45.00)" for negatives.
func ParseAmount(amount string) (int64, error) {
	s := strings.TrimSpace(amount)
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimPrefix(s, "$")
	if strings.HasPrefix(s, "-") {
		negative = !negative
		s = s[1:]
	}
	s = strings.TrimPrefix(s, "$")

	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("unparsable amount %q: %w", amount, err)
	}

	cents := int64(value*100 + 0.5)
	if negative {
		cents = -cents
	}
	return cents, nil
}
