package shape

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/fogleman/ease"
)

// ErrUnknownEasing is returned by EasingByName for names with no strategy.
var ErrUnknownEasing = errors.New("unknown easing")

// An Easing maps normalised time to eased progress. Both are nominally in
// [0, 1]; strategies that overshoot are allowed.
type Easing interface {
	Ease(t float64) float64
}

// EasingFunc adapts a plain function to the Easing interface.
type EasingFunc func(t float64) float64

// Ease calls f(t).
func (f EasingFunc) Ease(t float64) float64 {
	return f(t)
}

var (
	// Linear progress, ease(t) = t.
	Linear Easing = EasingFunc(ease.Linear)

	// InOutQuart is 8t⁴ below t = 0.5 and 1 - (-2t+2)⁴/2 above.
	InOutQuart Easing = EasingFunc(ease.InOutQuart)

	// InOutQuint is 16t⁵ below t = 0.5 and 1 - (-2t+2)⁵/2 above.
	InOutQuint Easing = EasingFunc(ease.InOutQuint)
)

var easings = map[string]Easing{
	"linear":     Linear,
	"inoutquad":  EasingFunc(ease.InOutQuad),
	"inoutcubic": EasingFunc(ease.InOutCubic),
	"inoutquart": InOutQuart,
	"inoutquint": InOutQuint,
	"inoutsine":  EasingFunc(ease.InOutSine),
	"outback":    EasingFunc(ease.OutBack),
	"outbounce":  EasingFunc(ease.OutBounce),
}

// EasingByName looks up a strategy by its configuration name. Matching
// ignores case, dashes and underscores, so "InOutQuint" and "in-out-quint"
// are the same strategy.
func EasingByName(name string) (Easing, error) {
	key := strings.ToLower(name)
	key = strings.NewReplacer("-", "", "_", "", " ", "").Replace(key)
	e, ok := easings[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEasing, name)
	}
	return e, nil
}

// EasingNames lists the names EasingByName accepts.
func EasingNames() []string {
	names := make([]string, 0, len(easings))
	for name := range easings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
