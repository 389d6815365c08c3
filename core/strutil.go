package core

// utoa converts an unsigned integer to a string without using fmt,
// which is too heavy for the firmware image.
func utoa(n uint32) string {
	if n == 0 {
		return "0"
	}

	var buf [10]byte
	pos := len(buf)
	for n > 0 {
		pos--
		buf[pos] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[pos:])
}

// twoDigits formats a counter value as it appears on the display
func twoDigits(n uint8) string {
	return string([]byte{'0' + n/10%10, '0' + n%10})
}
