package models

import (
	"sort"
	"strings"
)

type SortOrder string

const (
	SortNone     SortOrder = ""
	SortName     SortOrder = "name"
	SortDiscount SortOrder = "discount"
)

func ParseSortOrder(s string) SortOrder {
	switch SortOrder(strings.ToLower(s)) {
	case SortName:
		return SortName
	case SortDiscount:
		return SortDiscount
	default:
		return SortNone
	}
}

// SortedGlobalKeywords returns a sorted copy for display. Entries with an
// empty keyword or the keyword named by editing are kept at the end in
// their stored order, so a row being typed into does not jump around.
func SortedGlobalKeywords(g GlobalKeywords, order SortOrder, editing string) GlobalKeywords {
	if order == SortNone {
		return g.Clone()
	}
	settled := make(GlobalKeywords, 0, len(g))
	var pending GlobalKeywords
	for _, kw := range g {
		if kw.Keyword == "" || (editing != "" && kw.Keyword == editing) {
			pending = append(pending, kw)
			continue
		}
		settled = append(settled, kw)
	}
	sort.SliceStable(settled, func(i, j int) bool {
		if order == SortDiscount {
			return settled[i].Discount > settled[j].Discount
		}
		return strings.ToLower(settled[i].Keyword) < strings.ToLower(settled[j].Keyword)
	})
	return append(settled, pending...)
}

// SortedChannelKeywords returns every channel with its keyword rows sorted
// for display. Channel order itself is kept.
func SortedChannelKeywords(c ChannelKeywords, order SortOrder) ChannelKeywords {
	out := c.Clone()
	if order == SortNone {
		return out
	}
	for _, e := range out {
		kws := e.Keywords
		sort.SliceStable(kws, func(i, j int) bool {
			if order == SortDiscount {
				return kws[i].Discount > kws[j].Discount
			}
			return strings.ToLower(kws[i].Keyword) < strings.ToLower(kws[j].Keyword)
		})
	}
	return out
}
