package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	SettingTaxRate        = "tax_rate"
	SettingDiscountRate   = "discount_rate"
	SettingRestaurantName = "restaurant_name"
	SettingRestaurantLogo = "restaurant_logo"
)

// Settings are the global pricing settings passed into checkout.
type Settings struct {
	TaxRate        decimal.Decimal `json:"taxRate"`
	DiscountRate   decimal.Decimal `json:"discountRate"`
	RestaurantName string          `json:"restaurantName"`
	RestaurantLogo string          `json:"restaurantLogo,omitempty"`
}

// SettingsFromMap parses the backend's string map. Missing or malformed rates
// read as zero, like the dashboard did.
func SettingsFromMap(m map[string]string) Settings {
	return Settings{
		TaxRate:        parseRate(m[SettingTaxRate]),
		DiscountRate:   parseRate(m[SettingDiscountRate]),
		RestaurantName: m[SettingRestaurantName],
		RestaurantLogo: m[SettingRestaurantLogo],
	}
}

func parseRate(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Validate checks both rates are percentages.
func (s Settings) Validate() error {
	if s.TaxRate.IsNegative() || s.TaxRate.GreaterThan(Hundred) {
		return fmt.Errorf("tax rate must be between 0 and 100, got %s", s.TaxRate)
	}
	if s.DiscountRate.IsNegative() || s.DiscountRate.GreaterThan(Hundred) {
		return fmt.Errorf("discount rate must be between 0 and 100, got %s", s.DiscountRate)
	}
	return nil
}
