package analytics

import (
	"SentiPnL/internal/domain/models"
	"SentiPnL/pkg/util"
)

// Bucket thresholds on the 0-100 index.
const (
	extremeFearBelow = 25
	fearBelow        = 50
	greedBelow       = 75
)

// Classify maps an index value to its sentiment bucket.
func Classify(v float64) models.Bucket {
	switch {
	case v < extremeFearBelow:
		return models.BucketExtremeFear
	case v < fearBelow:
		return models.BucketFear
	case v < greedBelow:
		return models.BucketGreed
	default:
		return models.BucketExtremeGreed
	}
}

// ClassifyString is Classify for a raw cell; unparsable input is Unknown.
func ClassifyString(s string) models.Bucket {
	v, ok := util.ParseNumber(s)
	if !ok {
		return models.BucketUnknown
	}
	return Classify(v)
}
