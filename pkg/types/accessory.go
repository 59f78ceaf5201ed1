package types

// AccessoryRule decides whether a product is sold under the minimum
// quantity rule. The cart owns the actual policy; the catalog only needs
// the answer to compute reference prices for sorting.
type AccessoryRule interface {
	IsMinQuantityAccessory(p *Product) bool
}

// AccessoryRuleFunc adapts a plain function to an AccessoryRule.
type AccessoryRuleFunc func(p *Product) bool

func (f AccessoryRuleFunc) IsMinQuantityAccessory(p *Product) bool {
	return f(p)
}
