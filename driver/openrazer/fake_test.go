package openrazer

type fakeBroker struct {
	calls  []fakeCall
	err    error
	closed bool
}

type fakeCall struct {
	method string
	args   []any
}

func (f *fakeBroker) Call(method string, args ...any) error {
	f.calls = append(f.calls, fakeCall{method: method, args: args})
	return f.err
}

func (f *fakeBroker) Close() error {
	f.closed = true
	return nil
}
