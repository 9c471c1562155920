package utils

// Map returns f applied to every element of s.
func Map[I any, O any](s []I, f func(I) O) []O {
	result := make([]O, len(s))
	for i, v := range s {
		result[i] = f(v)
	}
	return result
}

// FoldR folds s from the last element to the first. The middleware chain is
// built with it so that the first middleware ends up outermost.
func FoldR[I any, O any](s []I, init O, f func(O, I) O) O {
	acc := init
	for i := len(s) - 1; i >= 0; i-- {
		acc = f(acc, s[i])
	}
	return acc
}
