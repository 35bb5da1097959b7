package discord

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Snowflake is the platform's 64-bit unsigned identifier. It travels as a
// JSON string but numeric literals are accepted when decoding.
type Snowflake uint64

// ParseSnowflake parses a decimal snowflake.
func ParseSnowflake(s string) (Snowflake, error) {
	u, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid snowflake %q: %w", s, err)
	}
	return Snowflake(u), nil
}

func (s Snowflake) String() string {
	return strconv.FormatUint(uint64(s), 10)
}

// MarshalJSON implements json.Marshaler.
func (s Snowflake) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Snowflake) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		parsed, err := ParseSnowflake(str)
		if err != nil {
			return err
		}
		*s = parsed
		return nil
	}

	var num uint64
	if err := json.Unmarshal(data, &num); err == nil {
		*s = Snowflake(num)
		return nil
	}

	return fmt.Errorf("snowflake must be a string or unsigned number, got: %s", string(data))
}
