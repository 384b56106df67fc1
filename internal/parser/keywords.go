package parser

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

// Keyword tables are data, not code: keywords.json carries one table set per
// locale so new locales can be added without touching classification logic.
// All locales are merged at load time; matching is substring-based over the
// lowercased line.

//go:embed keywords.json
var keywordData []byte

type localeKeywords struct {
	Garbage  []string `json:"garbage"`
	Tax      []string `json:"tax"`
	Service  []string `json:"service"`
	Discount []string `json:"discount"`
	Payment  []string `json:"payment"`
	Footer   []string `json:"footer"`
	Subtotal []string `json:"subtotal"`
	Total    []string `json:"total"`
}

type keywordFile struct {
	Locales map[string]localeKeywords `json:"locales"`
}

// keywords holds the merged tables for every bundled locale.
var keywords localeKeywords

func init() {
	var kf keywordFile
	if err := json.Unmarshal(keywordData, &kf); err != nil {
		panic(fmt.Sprintf("parser: invalid keywords.json: %v", err))
	}
	for _, lk := range kf.Locales {
		keywords.Garbage = append(keywords.Garbage, lk.Garbage...)
		keywords.Tax = append(keywords.Tax, lk.Tax...)
		keywords.Service = append(keywords.Service, lk.Service...)
		keywords.Discount = append(keywords.Discount, lk.Discount...)
		keywords.Payment = append(keywords.Payment, lk.Payment...)
		keywords.Footer = append(keywords.Footer, lk.Footer...)
		keywords.Subtotal = append(keywords.Subtotal, lk.Subtotal...)
		keywords.Total = append(keywords.Total, lk.Total...)
	}
}
