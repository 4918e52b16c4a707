package optcfg

// accumulatingKeys lists, per driver identity, the option names whose values
// merge into ordered sequences across sources instead of overwriting.
var accumulatingKeys = map[string]map[string]struct{}{
	"mo-quantize": {
		"tensor_name":     {},
		"scale":           {},
		"zero_point":      {},
		"src_tensor_name": {},
		"dst_tensor_name": {},
	},
}

// Accumulates reports whether key follows accumulation semantics for the
// given driver. Every other (driver, key) pair overwrites once.
func Accumulates(driver, key string) bool {
	keys, ok := accumulatingKeys[driver]
	if !ok {
		return false
	}
	_, ok = keys[key]
	return ok
}
