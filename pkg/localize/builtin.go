package localize

// defaultBuiltinConfigs seeds the in-memory built-in table consulted before
// any configured YAML directory. "us/ny" reproduces the canonical doctest
// from the original implementation: apply_localization("MTA", "us/ny") ==
// "metropolitan transportation authority".
func defaultBuiltinConfigs() map[string]Config {
	us := Config{
		Jurisdiction: "us",
		AgencyNames: map[string]string{
			"usd": "unified school district",
		},
		StopWords: map[string]bool{},
	}

	usNY := Config{
		Jurisdiction: "us/ny",
		Parent:       "us",
		AgencyNames: map[string]string{
			"mta": "metropolitan transportation authority",
		},
		StopWords: map[string]bool{},
	}

	return map[string]Config{
		"us":    us,
		"us/ny": usNY,
	}
}
