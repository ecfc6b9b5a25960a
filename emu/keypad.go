package emu

// KeyCount is the number of keys on the hexadecimal keypad.
const KeyCount = 16

// Keypad holds the current state of the 16-key hex keypad.
// The input collaborator replaces the whole set once per frame.
type Keypad struct {
	keys [KeyCount]bool
}

// Set replaces the key state with the given set.
func (k *Keypad) Set(keys [KeyCount]bool) {
	k.keys = keys
}

// Pressed reports whether the given key (0x0-0xF) is currently down.
func (k *Keypad) Pressed(key uint8) bool {
	return k.keys[key&0xF]
}

// Keys returns the current key set.
func (k *Keypad) Keys() [KeyCount]bool {
	return k.keys
}
