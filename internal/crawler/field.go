package crawler

// Field is the result of one isolated field extraction: either a present
// value or an explicit absence. It replaces nil-on-panic style extraction
// so the degrade-gracefully contract is visible at the type level.
type Field struct {
	value   string
	present bool
}

// Present wraps an extracted value.
func Present(value string) Field {
	return Field{value: value, present: true}
}

// Absent marks a field whose extraction failed.
func Absent() Field {
	return Field{}
}

// Get returns the value and whether it is present.
func (f Field) Get() (string, bool) {
	return f.value, f.present
}

// Ptr returns the value as a nullable pointer, nil when absent.
func (f Field) Ptr() *string {
	if !f.present {
		return nil
	}
	v := f.value
	return &v
}
