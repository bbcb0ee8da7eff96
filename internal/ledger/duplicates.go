package ledger

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	apperrors "github.com/Yns1000/haybank/internal/errors"
	"github.com/Yns1000/haybank/internal/models"
)

// AccountPolicy selects which account fields must be unique per user.
type AccountPolicy string

const (
	AccountByDescriptionAndBank AccountPolicy = "description_bank"
	AccountByDescription        AccountPolicy = "description"
)

// ParseAccountPolicy validates a configured account policy.
func ParseAccountPolicy(raw string) (AccountPolicy, error) {
	switch p := AccountPolicy(strings.TrimSpace(raw)); p {
	case AccountByDescriptionAndBank, AccountByDescription:
		return p, nil
	}
	return "", fmt.Errorf("unknown account uniqueness policy %q", raw)
}

// SubCategoryPolicy selects the scope in which sub-category names are unique.
type SubCategoryPolicy string

const (
	SubCategoryGlobal      SubCategoryPolicy = "global"
	SubCategoryPerCategory SubCategoryPolicy = "category"
)

// ParseSubCategoryPolicy validates a configured sub-category policy.
func ParseSubCategoryPolicy(raw string) (SubCategoryPolicy, error) {
	switch p := SubCategoryPolicy(strings.TrimSpace(raw)); p {
	case SubCategoryGlobal, SubCategoryPerCategory:
		return p, nil
	}
	return "", fmt.Errorf("unknown sub-category uniqueness policy %q", raw)
}

// Finder reports whether a row of model matches every column in where,
// ignoring the row whose primary key is excludeID (zero excludes nothing).
type Finder interface {
	Exists(ctx context.Context, model interface{}, where map[string]interface{}, excludeID uint) (bool, error)
}

// Checker enforces the uniqueness rules of named records.
type Checker struct {
	finder        Finder
	accounts      AccountPolicy
	subCategories SubCategoryPolicy
}

// NewChecker creates a Checker with the given policies.
func NewChecker(finder Finder, accounts AccountPolicy, subCategories SubCategoryPolicy) *Checker {
	return &Checker{finder: finder, accounts: accounts, subCategories: subCategories}
}

func (c *Checker) check(ctx context.Context, model interface{}, where map[string]interface{}, excludeID uint, conflict *apperrors.AppError) error {
	exists, err := c.finder.Exists(ctx, model, where, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return conflict
	}
	return nil
}

// Account rejects a second account of the same user with the same
// description (and bank, depending on the policy).
func (c *Checker) Account(ctx context.Context, userID, excludeID uint, description, bankName string) error {
	where := map[string]interface{}{
		"user_id":     userID,
		"description": description,
	}
	conflict := apperrors.WithMessage(apperrors.ErrDuplicateAccount, "An account with this description already exists")
	if c.accounts != AccountByDescription {
		where["bank_name"] = bankName
		conflict = apperrors.ErrDuplicateAccount
	}
	return c.check(ctx, &models.Account{}, where, excludeID, conflict)
}

// Category rejects a second category with the same name.
func (c *Checker) Category(ctx context.Context, excludeID uint, name string) error {
	return c.check(ctx, &models.Category{}, map[string]interface{}{"name": name}, excludeID, apperrors.ErrDuplicateCategory)
}

// SubCategory rejects a duplicate sub-category name, either anywhere or
// within the same parent depending on the policy.
func (c *Checker) SubCategory(ctx context.Context, excludeID uint, name string, categoryID uint) error {
	where := map[string]interface{}{"name": name}
	if c.subCategories == SubCategoryPerCategory {
		where["category_id"] = categoryID
	}
	return c.check(ctx, &models.SubCategory{}, where, excludeID, apperrors.ErrDuplicateSubCategory)
}

// Counterparty rejects a second counterparty of the same user with the
// same name.
func (c *Checker) Counterparty(ctx context.Context, userID, excludeID uint, name string) error {
	where := map[string]interface{}{"user_id": userID, "name": name}
	return c.check(ctx, &models.Counterparty{}, where, excludeID, apperrors.ErrDuplicateCounterparty)
}

// Changes returns the entries of proposed whose value differs from current.
// It fails with ErrNotModified when nothing differs, so callers can stop
// before any uniqueness scan or write.
func Changes(current, proposed map[string]interface{}) (map[string]interface{}, error) {
	changed := make(map[string]interface{})
	for key, next := range proposed {
		if !sameValue(current[key], next) {
			changed[key] = next
		}
	}
	if len(changed) == 0 {
		return nil, apperrors.ErrNotModified
	}
	return changed, nil
}

func sameValue(a, b interface{}) bool {
	switch av := a.(type) {
	case decimal.Decimal:
		bv, ok := b.(decimal.Decimal)
		return ok && av.Equal(bv)
	case time.Time:
		bv, ok := b.(time.Time)
		return ok && av.Equal(bv)
	case string:
		bv, ok := b.(string)
		return ok && strings.TrimSpace(av) == strings.TrimSpace(bv)
	}
	return reflect.DeepEqual(a, b)
}
