package folioscout

import (
	"log"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money is a display value for reports. All engine arithmetic stays in plain
// float64, Money only enters the picture when an amount is rendered for a
// human in the reporting currency.
type Money struct {
	value *money.Money
}

// NewMoney creates a new Money instance from a decimal.Decimal.
func NewMoney(amount decimal.Decimal, currency string) Money {
	cur := money.GetCurrency(currency)
	if cur == nil {
		return Money{}
	}

	factor, _ := decimal.NewFromInt(10).PowInt32(int32(cur.Fraction))
	amount = amount.Mul(factor)
	return Money{money.New(amount.Round(0).IntPart(), currency)}
}

func NewMoneyFromFloat(amount float64, currency string) Money {
	return NewMoney(decimal.NewFromFloat(amount), currency)
}

// String returns the string representation of the money value.
func (m Money) String() string {
	if m.value == nil {
		return ""
	}
	return m.value.Display()
}

// SignedString returns the money value with an explicit sign, and "-" for zero.
func (m Money) SignedString() string {
	if m.value == nil || m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.value.Display()
	}
	return m.value.Display()
}

func (m Money) Equal(other Money) bool {
	if m.value == nil || other.value == nil {
		return m.value == other.value
	}
	eq, err := m.value.Equals(other.value)
	return err == nil && eq
}

func (m Money) IsZero() bool     { return m.value == nil || m.value.IsZero() }
func (m Money) IsNegative() bool { return m.value != nil && m.value.IsNegative() }

func (m Money) Sub(n Money) Money {
	if m.value == nil || n.value == nil {
		return Money{}
	}
	r, err := m.value.Subtract(n.value)
	if err != nil {
		log.Fatalf("invalid money operation: %v", err)
	}
	return Money{r}
}
