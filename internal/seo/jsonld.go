package seo

import (
	"encoding/json"
)

// JSON marshals v to a compact JSON string. It returns an empty string on error.
func JSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// ContactPoint is a reachable channel of an organization.
type ContactPoint struct {
	Email     string
	Telephone string
	Languages []string
}

// Organization returns an Organization schema.
func Organization(name, url, logoURL string, contact ContactPoint, sameAs []string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "Organization",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	if logoURL != "" {
		m["logo"] = logoURL
	}
	if contact.Email != "" || contact.Telephone != "" {
		cp := map[string]any{"@type": "ContactPoint", "contactType": "customer service"}
		if contact.Email != "" {
			cp["email"] = contact.Email
		}
		if contact.Telephone != "" {
			cp["telephone"] = contact.Telephone
		}
		if len(contact.Languages) > 0 {
			cp["availableLanguage"] = contact.Languages
		}
		m["contactPoint"] = cp
	}
	var links []string
	for _, s := range sameAs {
		if len(s) > 4 && s[:4] == "http" {
			links = append(links, s)
		}
	}
	if len(links) > 0 {
		m["sameAs"] = links
	}
	return m
}

// WebSite returns a WebSite schema.
func WebSite(name, url, lang string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	if lang != "" {
		m["inLanguage"] = lang
	}
	return m
}

// Work is a portfolio entry.
type Work struct {
	Name        string
	Description string
	Image       string
	Keywords    []string
}

// Portfolio returns an ItemList of CreativeWork entries.
func Portfolio(works []Work) map[string]any {
	el := make([]map[string]any, 0, len(works))
	for i, w := range works {
		item := map[string]any{
			"@type": "CreativeWork",
			"name":  w.Name,
		}
		if w.Description != "" {
			item["description"] = w.Description
		}
		if w.Image != "" {
			item["image"] = w.Image
		}
		if len(w.Keywords) > 0 {
			item["keywords"] = w.Keywords
		}
		el = append(el, map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"item":     item,
		})
	}
	return map[string]any{
		"@context":        "https://schema.org",
		"@type":           "ItemList",
		"itemListElement": el,
	}
}
