package audit

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/aevon-lab/inspektr/internal/core/statistic"
)

// errUnspecifiedFailure stands in for a Failure outcome created without an error.
var errUnspecifiedFailure = errors.New("operation failed")

// Call identifies an intercepted operation. It is opaque to this package and
// handed through to resolvers untouched.
type Call struct {
	Operation string
	Args      []any
}

// Outcome is the result of an intercepted operation: either a returned value or an error.
type Outcome struct {
	value any
	err   error
}

// Success wraps a normal return value.
func Success(value any) Outcome {
	return Outcome{value: value}
}

// Failure wraps the error an operation raised.
func Failure(err error) Outcome {
	if err == nil {
		err = errUnspecifiedFailure
	}
	return Outcome{err: err}
}

// OutcomeOf builds the Outcome for a (value, error) pair as returned by Go functions.
func OutcomeOf(value any, err error) Outcome {
	if err != nil {
		return Failure(err)
	}
	return Success(value)
}

func (o Outcome) IsFailure() bool { return o.err != nil }
func (o Outcome) Value() any      { return o.value }
func (o Outcome) Err() error      { return o.err }

// Metadata is the static description of an audited action.
type Metadata struct {
	Action          string
	ApplicationCode string
	Precisions      statistic.PrecisionSet
	// ResourceHint names the call argument ResourceResolver reads: a positional index
	// ("0") or a key of an object argument ("service").
	ResourceHint string
}

// ActionResolver produces the action label recorded for an intercepted operation.
// Implementations switch on outcome.IsFailure() to label successes and failures differently.
type ActionResolver interface {
	ResolveFrom(call Call, outcome Outcome, meta Metadata) (string, error)
}

// ResolverFunc adapts an ordinary function to ActionResolver.
type ResolverFunc func(call Call, outcome Outcome, meta Metadata) (string, error)

func (f ResolverFunc) ResolveFrom(call Call, outcome Outcome, meta Metadata) (string, error) {
	return f(call, outcome, meta)
}

// DefaultResolver returns the static action name regardless of call or outcome.
type DefaultResolver struct{}

func (DefaultResolver) ResolveFrom(_ Call, _ Outcome, meta Metadata) (string, error) {
	return meta.Action, nil
}

const (
	DefaultSuccessSuffix = "_SUCCESS"
	DefaultFailureSuffix = "_FAILED"
)

// SuffixResolver appends an outcome-specific suffix to the static action name,
// e.g. LOGIN_SUCCESS and LOGIN_FAILED.
type SuffixResolver struct {
	SuccessSuffix string
	FailureSuffix string
}

// NewSuffixResolver returns a SuffixResolver using the default suffixes.
func NewSuffixResolver() SuffixResolver {
	return SuffixResolver{SuccessSuffix: DefaultSuccessSuffix, FailureSuffix: DefaultFailureSuffix}
}

func (r SuffixResolver) ResolveFrom(_ Call, outcome Outcome, meta Metadata) (string, error) {
	if outcome.IsFailure() {
		return meta.Action + r.FailureSuffix, nil
	}
	return meta.Action + r.SuccessSuffix, nil
}

// ResourceResolver labels an action with the resource the call acted on, e.g.
// SERVICE_TICKET:https://app.example.org. The resource is the call argument named by
// meta.ResourceHint.
type ResourceResolver struct{}

func (ResourceResolver) ResolveFrom(call Call, _ Outcome, meta Metadata) (string, error) {
	resource, err := hintedArgument(call.Args, meta.ResourceHint)
	if err != nil {
		return "", err
	}
	return meta.Action + ":" + resource, nil
}

func hintedArgument(args []any, hint string) (string, error) {
	hint = strings.TrimSpace(hint)
	if hint == "" {
		return "", errors.New("no resource hint")
	}

	var value any
	if i, err := strconv.Atoi(hint); err == nil {
		if i < 0 || i >= len(args) {
			return "", fmt.Errorf("resource argument %d out of range (%d args)", i, len(args))
		}
		value = args[i]
	} else {
		found := false
		for _, arg := range args {
			obj, ok := arg.(map[string]any)
			if !ok {
				continue
			}
			if value, found = obj[hint]; found {
				break
			}
		}
		if !found {
			return "", fmt.Errorf("no argument carries %q", hint)
		}
	}

	if value == nil {
		return "", fmt.Errorf("resource %q is null", hint)
	}
	resource := strings.TrimSpace(fmt.Sprint(value))
	if resource == "" {
		return "", fmt.Errorf("resource %q is empty", hint)
	}
	return resource, nil
}

// Resolve runs r and classifies any failure, including an empty label, as
// statistic.ErrResolutionFailure.
func Resolve(r ActionResolver, call Call, outcome Outcome, meta Metadata) (string, error) {
	if r == nil {
		r = DefaultResolver{}
	}
	label, err := r.ResolveFrom(call, outcome, meta)
	if err != nil {
		return "", fmt.Errorf("%w: action %q: %w", statistic.ErrResolutionFailure, meta.Action, err)
	}
	if strings.TrimSpace(label) == "" {
		return "", fmt.Errorf("%w: action %q: resolver returned an empty label", statistic.ErrResolutionFailure, meta.Action)
	}
	return label, nil
}

// Resolver names accepted in action definitions.
const (
	ResolverDefault  = "default"
	ResolverSuffix   = "suffix"
	ResolverResource = "resource"
)

// ResolverByName returns the built-in resolver registered under name.
func ResolverByName(name string) (ActionResolver, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", ResolverDefault:
		return DefaultResolver{}, nil
	case ResolverSuffix:
		return NewSuffixResolver(), nil
	case ResolverResource:
		return ResourceResolver{}, nil
	default:
		return nil, fmt.Errorf("unknown resolver %q", name)
	}
}
