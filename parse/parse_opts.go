package parse

type loadOpts struct {
	maxDepth      int
	rejectUnknown bool
}

func newLoadOpts() *loadOpts {
	return &loadOpts{maxDepth: 16}
}

type LoadOption func(*loadOpts)

// MaxCategoryDepth caps category nesting. Opening a subcategory past
// the cap is a hard structural error for that branch: the branch is
// diagnosed and its contents are dropped.
func MaxCategoryDepth(n int) LoadOption {
	return func(o *loadOpts) {
		if n >= 1 {
			o.maxDepth = n
		}
	}
}

// RejectUnknownTypes controls the policy for unrecognized declared-type
// tokens. The default keeps the node usable: it falls back to tacit
// string ascription and emits invalid_declared_type. With rejection on,
// the node is additionally marked locally invalid, contaminating its
// owners.
func RejectUnknownTypes(v bool) LoadOption {
	return func(o *loadOpts) {
		o.rejectUnknown = v
	}
}
