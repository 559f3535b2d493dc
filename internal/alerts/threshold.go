package alerts

// DefaultThreshold applies when neither the product nor its category
// define a low-stock threshold.
const DefaultThreshold int32 = 10

// EffectiveThreshold resolves the low-stock trigger point for a product:
// product override, then category default, then the global default.
// Zero is a real override; only nil falls through to the next tier.
func EffectiveThreshold(productOverride, categoryDefault *int32) int32 {
	if productOverride != nil {
		return *productOverride
	}
	if categoryDefault != nil {
		return *categoryDefault
	}
	return DefaultThreshold
}
