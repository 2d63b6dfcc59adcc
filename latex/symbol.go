package latex

import (
	"strings"
	"unicode"
)

var greek = map[string]bool{
	"alpha": true, "beta": true, "gamma": true, "delta": true,
	"epsilon": true, "zeta": true, "eta": true, "theta": true,
	"iota": true, "kappa": true, "lambda": true, "mu": true,
	"nu": true, "xi": true, "pi": true, "rho": true,
	"sigma": true, "tau": true, "upsilon": true, "phi": true,
	"chi": true, "psi": true, "omega": true, "varepsilon": true,
	"vartheta": true, "varphi": true,
	"Gamma": true, "Delta": true, "Theta": true, "Lambda": true,
	"Xi": true, "Pi": true, "Sigma": true, "Upsilon": true,
	"Phi": true, "Psi": true, "Omega": true,
}

// IsGreek reports whether name is the spelled-out name of a Greek letter.
func IsGreek(name string) bool { return greek[name] }

// Greek prefixes name with a backslash when it is a Greek letter.
func Greek(name string) string {
	if greek[name] {
		return `\` + name
	}

	return name
}

// Rewrite returns the braced form of a name with exactly one separator:
// "f_c" becomes "f_{c}" and "E__s" becomes "E__{s}". Double separators are
// checked first. Other names are returned unchanged.
func Rewrite(name string) string {
	if strings.Count(name, "__") == 1 {
		base, sub, _ := strings.Cut(name, "__")
		if base != "" && sub != "" && !strings.Contains(sub, "_") {
			return base + "__{" + sub + "}"
		}
	}

	if strings.Count(name, "_") == 1 {
		base, sub, _ := strings.Cut(name, "_")
		if base != "" && sub != "" {
			return base + "_{" + sub + "}"
		}
	}

	return name
}

// Symbol typesets an identifier:
//
//	alpha     \alpha
//	f_c       f_{c}
//	sigma_max \sigma_{max}
//	E__s      E^{s}
//	a_b_c     a_{b c}
//	x1        x_{1}
func Symbol(name string) string {
	if base, sup, ok := strings.Cut(name, "__"); ok && base != "" && sup != "" {
		return Symbol(base) + "^{" + subscript(strings.Split(sup, "_")) + "}"
	}

	parts := strings.Split(name, "_")
	if parts[0] == "" {
		return strings.ReplaceAll(name, "_", `\_`)
	}

	base := parts[0]

	if len(parts) == 1 {
		i := strings.LastIndexFunc(base, func(r rune) bool { return !unicode.IsDigit(r) })
		if i >= 0 && i < len(base)-1 {
			return Greek(base[:i+1]) + "_{" + base[i+1:] + "}"
		}

		return Greek(base)
	}

	return Greek(base) + "_{" + subscript(parts[1:]) + "}"
}

func subscript(parts []string) string {
	out := make([]string, 0, len(parts))

	for _, p := range parts {
		if p != "" {
			out = append(out, Greek(p))
		}
	}

	return strings.Join(out, " ")
}
