package errx

import "strings"

// Kind is one tier of an error taxonomy.
//
// A kind records its lowercase name, a link to its parent tier and the
// default fields every error of this kind starts with. Kinds are immutable
// once declared and safe to share.
type Kind struct {
	name     string
	parent   *Kind
	defaults Fields
}

// Root is the top of every taxonomy. It never appears in a chain.
var Root = &Kind{name: "e"}

// NewKind declares a kind below parent. A nil parent means Root.
// Defaults are merged in order; later maps win on duplicate keys.
func NewKind(name string, parent *Kind, defaults ...Fields) *Kind {
	if parent == nil {
		parent = Root
	}
	k := &Kind{
		name:   strings.ToLower(name),
		parent: parent,
	}
	for _, d := range defaults {
		if len(d) == 0 {
			continue
		}
		if k.defaults == nil {
			k.defaults = make(Fields, len(d))
		}
		for key, value := range d {
			k.defaults[key] = value
		}
	}
	return k
}

// Name returns the lowercase tier name.
func (k *Kind) Name() string {
	if k == nil {
		return ""
	}
	return k.name
}

// Parent returns the parent tier, or nil for Root.
func (k *Kind) Parent() *Kind {
	if k == nil {
		return nil
	}
	return k.parent
}

// Defaults returns a copy of the fields declared on this tier only.
func (k *Kind) Defaults() Fields {
	if k == nil {
		return nil
	}
	return k.defaults.clone()
}

// Chain walks from k up to Root and returns the tier names root-most first.
// The walk stops without adding a tier when it reaches Root, a missing
// parent, or an anonymous tier.
func (k *Kind) Chain() []string {
	chain := []string{}
	for tier := k; tier != nil && tier != Root && tier.name != ""; tier = tier.parent {
		chain = append(chain, "")
		copy(chain[1:], chain)
		chain[0] = tier.name
	}
	return chain
}

// Echain returns the chain joined by ".".
func (k *Kind) Echain() string {
	return strings.Join(k.Chain(), ".")
}

// Depth returns the number of tiers in the chain.
func (k *Kind) Depth() int {
	return len(k.Chain())
}

// IsA reports whether k is ancestor or descends from it. Every kind is a Root.
func (k *Kind) IsA(ancestor *Kind) bool {
	if ancestor == nil {
		return false
	}
	if ancestor == Root {
		return true
	}
	for tier := k; tier != nil; tier = tier.parent {
		if tier == ancestor {
			return true
		}
	}
	return false
}

// Error makes a kind usable as an errors.Is target.
func (k *Kind) Error() string {
	if k == nil {
		return ""
	}
	if echain := k.Echain(); echain != "" {
		return echain
	}
	return k.name
}

// lineage returns every tier from the root-most one down to k, including
// anonymous tiers, so defaults are inherited across the whole hierarchy.
func (k *Kind) lineage() []*Kind {
	var tiers []*Kind
	for tier := k; tier != nil; tier = tier.parent {
		tiers = append(tiers, tier)
	}
	for i, j := 0, len(tiers)-1; i < j; i, j = i+1, j-1 {
		tiers[i], tiers[j] = tiers[j], tiers[i]
	}
	return tiers
}
