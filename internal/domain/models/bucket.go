package models

// Bucket is a sentiment zone derived from the index value.
type Bucket string

const (
	BucketExtremeFear  Bucket = "Extreme Fear"
	BucketFear         Bucket = "Fear"
	BucketGreed        Bucket = "Greed"
	BucketExtremeGreed Bucket = "Extreme Greed"
	BucketUnknown      Bucket = "Unknown"
)

// BucketOrder is the display order used by reports and charts. Unknown is never shown.
var BucketOrder = []Bucket{BucketExtremeFear, BucketFear, BucketGreed, BucketExtremeGreed}
