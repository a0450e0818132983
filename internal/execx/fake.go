package execx

import (
	"context"
	"os/exec"
	"strings"
	"sync"
)

// FakeCall records one invocation of Fake.Run.
type FakeCall struct {
	Name string
	Args []string
}

// String renders the call as a single command line.
func (c FakeCall) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Fake is an in-memory Runner for tests. Stub responses are keyed by
// command-line prefix; the longest matching stub wins. Unstubbed commands
// exit 127 with a "not stubbed" stderr so tests fail loudly on assertions
// rather than panicking.
type Fake struct {
	mu    sync.Mutex
	calls []FakeCall

	results map[string]Result
	errs    map[string]error
	paths   map[string]string
}

// NewFake creates an empty Fake runner.
func NewFake() *Fake {
	return &Fake{
		results: make(map[string]Result),
		errs:    make(map[string]error),
		paths:   make(map[string]string),
	}
}

// Stub registers a Result for any command line starting with prefix.
func (f *Fake) Stub(prefix string, res Result) *Fake {
	f.results[prefix] = res
	return f
}

// StubErr registers a transport error for any command line starting with prefix.
func (f *Fake) StubErr(prefix string, err error) *Fake {
	f.errs[prefix] = err
	return f
}

// AddPath makes the named commands resolvable via LookPath.
func (f *Fake) AddPath(names ...string) *Fake {
	for _, name := range names {
		f.paths[name] = "/usr/bin/" + name
	}
	return f
}

// Calls returns all recorded invocations in order.
func (f *Fake) Calls() []FakeCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]FakeCall, len(f.calls))
	copy(out, f.calls)
	return out
}

// CallLines returns the recorded invocations rendered as command lines.
func (f *Fake) CallLines() []string {
	calls := f.Calls()
	lines := make([]string, len(calls))
	for i, c := range calls {
		lines[i] = c.String()
	}
	return lines
}

// Run implements Runner.
func (f *Fake) Run(_ context.Context, name string, args ...string) (Result, error) {
	call := FakeCall{Name: name, Args: args}

	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()

	line := call.String()

	var bestKey string
	found := false
	for key := range f.errs {
		if strings.HasPrefix(line, key) && len(key) >= len(bestKey) {
			bestKey = key
			found = true
		}
	}
	if found {
		return Result{ExitCode: -1}, f.errs[bestKey]
	}

	bestKey = ""
	for key := range f.results {
		if strings.HasPrefix(line, key) && (len(key) >= len(bestKey)) {
			bestKey = key
			found = true
		}
	}
	if found {
		return f.results[bestKey], nil
	}

	return Result{ExitCode: 127, Stderr: "not stubbed: " + line}, nil
}

// LookPath implements Runner.
func (f *Fake) LookPath(name string) (string, error) {
	if path, ok := f.paths[name]; ok {
		return path, nil
	}
	return "", &exec.Error{Name: name, Err: exec.ErrNotFound}
}
