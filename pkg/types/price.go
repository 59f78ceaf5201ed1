package types

// ParsePrice extracts the integer amount from a raw sheet price cell.
// The cells mix currency symbols and thousands separators freely
// ("$12.500", "12500", "U$D 1.200"), so everything except digits is
// dropped. A cell with no digits parses to zero.
func ParsePrice(raw string) int {
	amount := 0
	for _, r := range raw {
		if r < '0' || r > '9' {
			continue
		}
		amount = amount*10 + int(r-'0')
	}
	return amount
}
