package sources

import (
	"net/url"
	"strings"
)

// ScientificSuppliers lists the domains of recognized laboratory suppliers.
var ScientificSuppliers = []string{
	"thermofisher.com", "fishersci.com", "vwr.com", "corning.com",
	"sigmaaldrich.com", "thomassci.com", "coleparmer.com",
	"usascientific.com", "eppendorf.com", "greiner.com",
	"neb.com", "qiagen.com", "promega.com", "tci.com",
	"bdbiosciences.com", "cytiva.com",
}

// IsSupplierURL reports whether raw points at a host on one of the
// recognized supplier domains or a subdomain of one.
func IsSupplierURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return false
	}
	for _, d := range ScientificSuppliers {
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}
