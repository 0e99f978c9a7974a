package primitives

// RequireBool checks that each key holds a bool.
func RequireBool(keys ...string) PayloadCheck {
	return func(evt Event) error {
		for _, k := range keys {
			if _, err := evt.Bool(k); err != nil {
				return err
			}
		}
		return nil
	}
}

// RequireString checks that each key holds a string.
func RequireString(keys ...string) PayloadCheck {
	return func(evt Event) error {
		for _, k := range keys {
			if _, err := evt.Str(k); err != nil {
				return err
			}
		}
		return nil
	}
}

// RequireNumber checks that each key holds a number.
func RequireNumber(keys ...string) PayloadCheck {
	return func(evt Event) error {
		for _, k := range keys {
			if _, err := evt.Float(k); err != nil {
				return err
			}
		}
		return nil
	}
}

// RequireIndex checks that each key holds a non-negative integer.
func RequireIndex(keys ...string) PayloadCheck {
	return func(evt Event) error {
		for _, k := range keys {
			n, err := evt.Int(k)
			if err != nil {
				return err
			}
			if n < 0 {
				return NewError("event "+evt.Type, KindInvalidPayload, "field %q: negative index %d", k, n)
			}
		}
		return nil
	}
}

// RequireStrings checks that key holds a string sequence.
func RequireStrings(key string) PayloadCheck {
	return func(evt Event) error {
		_, err := evt.Strings(key)
		return err
	}
}

// RequireFloats checks that key holds a number sequence.
func RequireFloats(key string) PayloadCheck {
	return func(evt Event) error {
		_, err := evt.Floats(key)
		return err
	}
}

// OptionalBool checks key only when present.
func OptionalBool(key string) PayloadCheck {
	return func(evt Event) error {
		_, err := evt.OptBool(key, false)
		return err
	}
}

// OptionalIndex checks key only when present.
func OptionalIndex(key string) PayloadCheck {
	return func(evt Event) error {
		if !evt.Has(key) {
			return nil
		}
		return RequireIndex(key)(evt)
	}
}

// AllOf runs checks in order and returns the first failure.
func AllOf(checks ...PayloadCheck) PayloadCheck {
	return func(evt Event) error {
		for _, c := range checks {
			if err := c(evt); err != nil {
				return err
			}
		}
		return nil
	}
}
