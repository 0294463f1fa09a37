package detect

// detect_const.go
//
// Centralizes the fixed decision thresholds for the seven detection
// methods. Several of these are deliberate simplifications: the report
// output was validated against these exact constants, so they are named
// values here rather than quantities derived from sample size or a
// confidence level.

const (
	// IQRFenceMultiplier: Tukey fence width. Values beyond
	// q1 - k*iqr or q3 + k*iqr are flagged.
	IQRFenceMultiplier = 1.5

	// ZScoreThreshold: |x - mean| / stddev above this flags a point.
	ZScoreThreshold = 3.0

	// ModifiedZThreshold: cutoff on the MAD-based modified z-score.
	ModifiedZThreshold = 3.5

	// ModifiedZScale: 0.6745 is the 0.75 quantile of the standard normal;
	// it rescales MAD so the modified z-score is comparable to a z-score.
	ModifiedZScale = 0.6745

	// PeirceThreshold: modified z-score cutoff standing in for a full
	// Peirce criterion computation. An approximation, not the real table.
	PeirceThreshold = 4.0

	// GrubbsCritical: fixed critical value for the single-outlier Grubbs
	// test. A rigorous test would derive this from n and a t-distribution.
	GrubbsCritical = 2.0

	// GrubbsMinSample: Grubbs is undefined below three observations.
	GrubbsMinSample = 3

	// ESDCritical: fixed studentized-deviate cutoff for each removal round.
	ESDCritical = 2.5

	// ESDMaxOutlierFraction: at most floor(n * fraction) points may be
	// removed from a column of size n.
	ESDMaxOutlierFraction = 0.1

	// ESDMinSample: columns smaller than this are not tested at all.
	ESDMinSample = 5

	// ESDMinRemaining: iteration stops once fewer points than this remain.
	ESDMinRemaining = 3

	// Dixon's Q is tabulated for sample sizes 3 through 30.
	DixonMinSample = 3
	DixonMaxSample = 30
)

// dixonBracket pairs a sample-size bracket with its tabulated critical
// value (95% confidence, two-tailed).
type dixonBracket struct {
	size  int
	qCrit float64
}

// dixonTable is ordered ascending by bracket size. Selection takes the
// largest bracket size <= n, defaulting to the n=3 bracket.
var dixonTable = []dixonBracket{
	{3, 0.970},
	{4, 0.829},
	{5, 0.710},
	{6, 0.625},
	{7, 0.568},
	{8, 0.526},
	{9, 0.493},
	{10, 0.466},
	{15, 0.338},
	{20, 0.298},
	{30, 0.239},
}

// dixonCritical returns the critical value for a sample of size n.
func dixonCritical(n int) float64 {
	qCrit := dixonTable[0].qCrit
	for _, b := range dixonTable {
		if b.size > n {
			break
		}
		qCrit = b.qCrit
	}
	return qCrit
}
