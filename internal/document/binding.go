package document

// BindingDescriptor is the binding a widget may declare inside its own
// configuration, pointing at a value object in the system tree.
type BindingDescriptor struct {
	ValueID   int64
	ValueName string
}

// Binding extracts the embedded descriptor from a widget configuration.
// valueId is tried before targetId; either may be a number or a numeric string.
func (d Document) Binding() (BindingDescriptor, bool) {
	b := d.Object("binding")
	id, ok := b.Int("valueId", "targetId")
	if !ok {
		return BindingDescriptor{}, false
	}
	return BindingDescriptor{ValueID: id, ValueName: b.Text("valueName")}, true
}
