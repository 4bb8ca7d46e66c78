// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "slices"

// Constituencies of Nyeri County, in display order.
var Constituencies = []string{
	"Nyeri Town",
	"Othaya",
	"Mukurwe-ini",
	"Tetu",
	"Kieni East",
	"Kieni West",
}

// Wards per constituency.
var Wards = map[string][]string{
	"Nyeri Town":  {"Kiganjo/Mathari", "Ruring'u", "Gatitu/Muruguru", "Rware", "Kamakwa/Mukaro"},
	"Othaya":      {"Karima", "Mahiga", "Iria-ini", "Chinga"},
	"Mukurwe-ini": {"Rugi", "Gikondi", "Mukurwe-ini West", "Mukurwe-ini Central"},
	"Tetu":        {"Dedan Kimathi", "Wamagana", "Aguthi-Gaaki"},
	"Kieni East":  {"Gatarakwa", "Thegu River", "Mweiga", "Naromoru/Kiamathaga"},
	"Kieni West":  {"Mugunda", "Kabaru", "Gakawa", "Mwiyogo/Endarasha"},
}

// WardInConstituency reports whether ward belongs to constituency.
func WardInConstituency(constituency, ward string) bool {
	return slices.Contains(Wards[constituency], ward)
}
