// Package sumton holds three interchangeable ways of summing the integers 1..n.
// Negative n sums to zero in every variant; int64 overflow is not detected.
package sumton

// ClosedForm uses Gauss' formula n(n+1)/2, halving the even factor first so
// it stays exact for every n whose sum fits in an int64.
func ClosedForm(n int64) int64 {
	if n <= 0 {
		return 0
	}
	if n%2 == 0 {
		return n / 2 * (n + 1)
	}
	return (n + 1) / 2 * n
}

// Recursive adds n to the sum of everything below it.
// Depth grows linearly with n, so keep n modest.
func Recursive(n int64) int64 {
	if n <= 0 {
		return 0
	}
	return n + Recursive(n-1)
}

// Iterative accumulates 1..n in a loop.
func Iterative(n int64) int64 {
	var sum int64
	for i := int64(1); i <= n; i++ {
		sum += i
	}
	return sum
}

// Func is the shared signature of all implementations.
type Func func(n int64) int64

// Implementation pairs a stable name with its function.
type Implementation struct {
	Name string
	Fn   Func
}

// Implementations lists every variant in a fixed order.
func Implementations() []Implementation {
	return []Implementation{
		{Name: "closed_form", Fn: ClosedForm},
		{Name: "recursive", Fn: Recursive},
		{Name: "iterative", Fn: Iterative},
	}
}

// Lookup returns the implementation registered under name.
func Lookup(name string) (Implementation, bool) {
	for _, impl := range Implementations() {
		if impl.Name == name {
			return impl, true
		}
	}
	return Implementation{}, false
}
