package detect

import (
	"fmt"
	"strings"
)

// Method pairs a detection function with its display metadata.
type Method struct {
	Name        string
	Description string
	Detect      Func
}

// Catalog returns the seven detection methods in report order. Renderers
// and the orchestrator rely on this exact ordering; it must not be
// re-sorted.
func Catalog() []Method {
	return []Method{
		{
			Name:        "IQR",
			Description: fmt.Sprintf("Flags values beyond %.1f×IQR from the quartiles", IQRFenceMultiplier),
			Detect:      IQR,
		},
		{
			Name:        "Z-Score",
			Description: fmt.Sprintf("Flags values more than %.1f standard deviations from the mean", ZScoreThreshold),
			Detect:      ZScore,
		},
		{
			Name:        "Modified Z-Score",
			Description: fmt.Sprintf("MAD-based robust z-score with threshold %.1f", ModifiedZThreshold),
			Detect:      ModifiedZScore,
		},
		{
			Name:        "Grubbs' Test",
			Description: fmt.Sprintf("Single-outlier test against fixed critical value %.1f", GrubbsCritical),
			Detect:      Grubbs,
		},
		{
			Name:        "Generalized ESD",
			Description: fmt.Sprintf("Iterative extreme studentized deviate removal, cutoff %.1f", ESDCritical),
			Detect:      ESD,
		},
		{
			Name:        "Dixon's Q Test",
			Description: "Gap-to-range ratio against tabulated critical values (3 ≤ n ≤ 30)",
			Detect:      DixonQ,
		},
		{
			Name:        "Peirce's Criterion",
			Description: fmt.Sprintf("Approximate Peirce criterion via modified z-score, threshold %.1f", PeirceThreshold),
			Detect:      Peirce,
		},
	}
}

// MethodByName acts as a factory for a single method, matching names
// case-insensitively. Returns nil for unknown names.
func MethodByName(name string) *Method {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for _, m := range Catalog() {
		if strings.ToLower(m.Name) == normalized {
			method := m
			return &method
		}
	}
	return nil
}
