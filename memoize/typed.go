package memoize

// MemoizeI1 memoizes a fallible one-argument function.
func MemoizeI1[I1, O any](
	fn func(I1) (O, error),
	opts ...Option[O],
) (func(I1) (O, error), error) {
	cache, err := New(func(args ...any) (O, error) {
		return fn(argAs[I1](args[0]))
	}, opts...)
	if err != nil {
		return nil, err
	}
	return func(i1 I1) (O, error) {
		return cache.Invoke(i1)
	}, nil
}

func MemoizeI2[I1, I2, O any](
	fn func(I1, I2) (O, error),
	opts ...Option[O],
) (func(I1, I2) (O, error), error) {
	cache, err := New(func(args ...any) (O, error) {
		return fn(argAs[I1](args[0]), argAs[I2](args[1]))
	}, opts...)
	if err != nil {
		return nil, err
	}
	return func(i1 I1, i2 I2) (O, error) {
		return cache.Invoke(i1, i2)
	}, nil
}

func MemoizeI3[I1, I2, I3, O any](
	fn func(I1, I2, I3) (O, error),
	opts ...Option[O],
) (func(I1, I2, I3) (O, error), error) {
	cache, err := New(func(args ...any) (O, error) {
		return fn(argAs[I1](args[0]), argAs[I2](args[1]), argAs[I3](args[2]))
	}, opts...)
	if err != nil {
		return nil, err
	}
	return func(i1 I1, i2 I2, i3 I3) (O, error) {
		return cache.Invoke(i1, i2, i3)
	}, nil
}

func MemoizeI4[I1, I2, I3, I4, O any](
	fn func(I1, I2, I3, I4) (O, error),
	opts ...Option[O],
) (func(I1, I2, I3, I4) (O, error), error) {
	cache, err := New(func(args ...any) (O, error) {
		return fn(argAs[I1](args[0]), argAs[I2](args[1]), argAs[I3](args[2]), argAs[I4](args[3]))
	}, opts...)
	if err != nil {
		return nil, err
	}
	return func(i1 I1, i2 I2, i3 I3, i4 I4) (O, error) {
		return cache.Invoke(i1, i2, i3, i4)
	}, nil
}

// MemoizeI1O1 memoizes an infallible one-argument function.
func MemoizeI1O1[I1, O1 any](
	fn func(I1) O1,
	opts ...Option[O1],
) (func(I1) O1, error) {
	memoized, err := MemoizeI1(func(i1 I1) (O1, error) {
		return fn(i1), nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	return func(i1 I1) O1 {
		o1, _ := memoized(i1)
		return o1
	}, nil
}

func MemoizeI2O1[I1, I2, O1 any](
	fn func(I1, I2) O1,
	opts ...Option[O1],
) (func(I1, I2) O1, error) {
	memoized, err := MemoizeI2(func(i1 I1, i2 I2) (O1, error) {
		return fn(i1, i2), nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	return func(i1 I1, i2 I2) O1 {
		o1, _ := memoized(i1, i2)
		return o1
	}, nil
}

// Must panics if err is non-nil. It is meant for package-level memoizers
// whose configuration is a constant.
func Must[F any](fn F, err error) F {
	if err != nil {
		panic(err)
	}
	return fn
}

// argAs recovers a typed argument. A nil interface maps to the zero value,
// which matters when the parameter type is itself an interface.
func argAs[T any](arg any) T {
	if arg == nil {
		var zero T
		return zero
	}
	return arg.(T)
}
