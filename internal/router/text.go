package router

import (
	"fmt"
	"strings"

	"github.com/planvox/planvox/internal/domain"
)

func lowerText(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func money(v float64) string {
	return domain.FormatMoney(v)
}

// count pluralizes a noun ("1 placement", "3 placements").
func count(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
