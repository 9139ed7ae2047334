package entity

import (
	"database/sql/driver"
	"fmt"
)

// Limit is a plan dimension that is either unlimited or capped at N.
// Stored as a nullable integer: NULL means unlimited. Kept as a tagged
// value in Go so comparison code never special-cases a -1 sentinel.
type Limit struct {
	Unlimited bool
	N         int
}

func Limited(n int) Limit {
	return Limit{N: n}
}

func Unlimited() Limit {
	return Limit{Unlimited: true}
}

// Allows reports whether an action is permitted when `current` units are
// already consumed.
func (l Limit) Allows(current int) bool {
	return l.Unlimited || current < l.N
}

func (l Limit) String() string {
	if l.Unlimited {
		return "unlimited"
	}
	return fmt.Sprintf("%d", l.N)
}

func (l Limit) Value() (driver.Value, error) {
	if l.Unlimited {
		return nil, nil
	}
	return int64(l.N), nil
}

func (l *Limit) Scan(value any) error {
	if value == nil {
		*l = Limit{Unlimited: true}
		return nil
	}
	switch v := value.(type) {
	case int64:
		*l = Limit{N: int(v)}
	case []byte:
		var n int
		if _, err := fmt.Sscanf(string(v), "%d", &n); err != nil {
			return fmt.Errorf("limit: cannot scan %q", v)
		}
		*l = Limit{N: n}
	default:
		return fmt.Errorf("limit: unsupported scan type %T", value)
	}
	return nil
}

// MarshalJSON renders unlimited as null so API clients see the same shape
// the database stores.
func (l Limit) MarshalJSON() ([]byte, error) {
	if l.Unlimited {
		return []byte("null"), nil
	}
	return []byte(fmt.Sprintf("%d", l.N)), nil
}

func (l *Limit) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*l = Limit{Unlimited: true}
		return nil
	}
	var n int
	if _, err := fmt.Sscanf(string(data), "%d", &n); err != nil {
		return fmt.Errorf("limit: cannot unmarshal %q", data)
	}
	*l = Limit{N: n}
	return nil
}
