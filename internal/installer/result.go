package installer

// Outcome is the terminal state of one install invocation.
type Outcome int

const (
	// OutcomeSkipped means nothing was done: the target is already
	// installed or the platform is unsupported. Not a failure.
	OutcomeSkipped Outcome = iota

	// OutcomeInstalled means a channel executed and verification passed.
	OutcomeInstalled

	// OutcomeFailed means every declared channel failed.
	OutcomeFailed
)

// String returns the lowercase outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeSkipped:
		return "skipped"
	case OutcomeInstalled:
		return "installed"
	case OutcomeFailed:
		return "failed"
	}
	return "unknown"
}

// FailureKind tags a failed result with its root cause, because the
// remediation differs per cause.
type FailureKind int

const (
	// KindNone is the zero value for non-failed results.
	KindNone FailureKind = iota

	// KindMissingPrerequisite means the channel's prerequisite (usually
	// the package manager binary) is not present.
	KindMissingPrerequisite

	// KindExecutionFailure means the spawned install command exited
	// non-zero or could not be spawned.
	KindExecutionFailure

	// KindVerificationFailure means the install command reported success
	// but the post-install probe found nothing.
	KindVerificationFailure
)

// String returns the failure kind name.
func (k FailureKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindMissingPrerequisite:
		return "missing-prerequisite"
	case KindExecutionFailure:
		return "execution-failure"
	case KindVerificationFailure:
		return "verification-failure"
	}
	return "unknown"
}

// MarshalJSON renders the outcome as its string name.
func (o Outcome) MarshalJSON() ([]byte, error) {
	return []byte(`"` + o.String() + `"`), nil
}

// MarshalYAML renders the outcome as its string name.
func (o Outcome) MarshalYAML() (any, error) {
	return o.String(), nil
}

// MarshalJSON renders the failure kind as its string name.
func (k FailureKind) MarshalJSON() ([]byte, error) {
	return []byte(`"` + k.String() + `"`), nil
}

// MarshalYAML renders the failure kind as its string name.
func (k FailureKind) MarshalYAML() (any, error) {
	return k.String(), nil
}

// EnvDelta is an environment change a channel wants the caller to apply
// to its own process state. The core never mutates the ambient process
// environment; it returns the delta and lets the caller decide.
type EnvDelta struct {
	// PathPrepend lists directories to prepend to PATH.
	PathPrepend []string `json:"path_prepend,omitempty" yaml:"path_prepend,omitempty"`
}

// Empty reports whether the delta changes nothing.
func (d EnvDelta) Empty() bool {
	return len(d.PathPrepend) == 0
}

// Result is the returned value of one install invocation. It is never
// persisted, and a failure is always reported here rather than as an
// error from Install.
type Result struct {
	// Outcome is the terminal protocol state.
	Outcome Outcome `json:"outcome" yaml:"outcome"`

	// Kind tags failed outcomes with their root cause.
	Kind FailureKind `json:"kind,omitempty" yaml:"kind,omitempty"`

	// Message is a human-readable description of what happened.
	Message string `json:"message" yaml:"message"`

	// Remediation is an ordered list of suggested follow-up commands.
	Remediation []string `json:"remediation,omitempty" yaml:"remediation,omitempty"`

	// EnvDelta holds environment changes the caller may apply.
	EnvDelta EnvDelta `json:"env_delta,omitempty" yaml:"env_delta,omitempty"`
}

// skipped builds a Skipped result.
func skipped(msg string) Result {
	return Result{Outcome: OutcomeSkipped, Message: msg}
}

// installed builds an Installed result.
func installed(msg string, delta EnvDelta) Result {
	return Result{Outcome: OutcomeInstalled, Message: msg, EnvDelta: delta}
}

// failed builds a Failed result.
func failed(kind FailureKind, msg string, remediation ...string) Result {
	return Result{Outcome: OutcomeFailed, Kind: kind, Message: msg, Remediation: remediation}
}
