package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	"jobradar/internal/repository"
)

type listCacheKeyInput struct {
	Search   string `json:"search"`
	Location string `json:"location"`
	Source   string `json:"source"`
	Limit    int    `json:"limit"`
	Offset   int    `json:"offset"`
}

func normalizeFilterValue(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return strings.Join(strings.Fields(s), " ")
}

func listCacheKey(f repository.ListingFilter) string {
	in := listCacheKeyInput{
		Search:   normalizeFilterValue(f.Search),
		Location: normalizeFilterValue(f.Location),
		Source:   normalizeFilterValue(f.Source),
		Limit:    f.Limit,
		Offset:   f.Offset,
	}

	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	return "listings:list:" + hex.EncodeToString(sum[:])
}
