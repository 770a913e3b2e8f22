package physics

import (
	"fmt"
	"strings"

	"github.com/jakecoffman/cp"
)

// BodyType is the motion classification of a body.
type BodyType int

const (
	BodyTypeDynamic BodyType = iota
	BodyTypeKinematic
	BodyTypeStatic
)

func (t BodyType) String() string {
	switch t {
	case BodyTypeDynamic:
		return "dynamic"
	case BodyTypeKinematic:
		return "kinematic"
	case BodyTypeStatic:
		return "static"
	default:
		return fmt.Sprintf("BodyType(%d)", int(t))
	}
}

// UnmarshalText lets specs spell body types by name.
func (t *BodyType) UnmarshalText(text []byte) error {
	parsed, err := ParseBodyType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarshalText is the inverse of UnmarshalText.
func (t BodyType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// ParseBodyType converts a body type name. An empty name means dynamic.
func ParseBodyType(s string) (BodyType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "dynamic":
		return BodyTypeDynamic, nil
	case "kinematic":
		return BodyTypeKinematic, nil
	case "static":
		return BodyTypeStatic, nil
	default:
		return BodyTypeDynamic, fmt.Errorf("physics: unknown body type %q", s)
	}
}

func (t BodyType) cpType() int {
	switch t {
	case BodyTypeKinematic:
		return cp.BODY_KINEMATIC
	case BodyTypeStatic:
		return cp.BODY_STATIC
	default:
		return cp.BODY_DYNAMIC
	}
}

func bodyTypeFromCP(typ int) BodyType {
	switch typ {
	case cp.BODY_KINEMATIC:
		return BodyTypeKinematic
	case cp.BODY_STATIC:
		return BodyTypeStatic
	default:
		return BodyTypeDynamic
	}
}
