package secrets

// Mask hides a secret for display. Values of 12 characters or fewer are fully
// masked; longer ones keep the first 8 and last 4 characters.
func Mask(value string) string {
	r := []rune(value)
	if len(r) <= 12 {
		return "********"
	}
	return string(r[:8]) + "..." + string(r[len(r)-4:])
}
